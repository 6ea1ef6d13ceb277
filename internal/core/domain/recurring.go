package domain

import "github.com/shopspring/decimal"

// RecurringTransaction is a monthly template expanded into drafts.
type RecurringTransaction struct {
	RecurringID  string          `json:"recurringID"`
	UserID       string          `json:"userID"`
	Description  string          `json:"description"`
	Amount       decimal.Decimal `json:"amount"`
	Type         TransactionType `json:"type"`
	CategoryID   *string         `json:"categoryID,omitempty"`
	AccountID    string          `json:"accountID"`
	ToAccountID  *string         `json:"toAccountID,omitempty"`
	DayOfMonth   int             `json:"dayOfMonth"` // 1..31, clamped to the month length
	Active       bool            `json:"active"`
	IsMaaserable *bool           `json:"isMaaserable,omitempty"`
	IsDeductible *bool           `json:"isDeductible,omitempty"`
	// LastGeneratedMonth is the most recent YYYY-MM drafts were posted for.
	LastGeneratedMonth *string `json:"lastGeneratedMonth,omitempty"`
	AuditFields
}

// GeneratedFor reports whether the template was already expanded for month
// or a later one.
func (r RecurringTransaction) GeneratedFor(month MonthYear) bool {
	if r.LastGeneratedMonth == nil {
		return false
	}
	last, err := ParseMonthYear(*r.LastGeneratedMonth)
	if err != nil {
		return false
	}
	return !last.Before(month)
}
