package domain

import "github.com/shopspring/decimal"

// DefaultAlertThreshold is the percentage of the limit at which a budget alerts.
const DefaultAlertThreshold = 80

// Budget caps the spending of one category for one month.
type Budget struct {
	BudgetID       string          `json:"budgetID"`
	UserID         string          `json:"userID"`
	CategoryID     string          `json:"categoryID"`
	MonthYear      string          `json:"monthYear"` // YYYY-MM
	LimitAmount    decimal.Decimal `json:"limitAmount"`
	AlertThreshold int             `json:"alertThreshold"` // percent
	AuditFields
}

// BudgetStatus is derived from a budget and the expenses of its month.
type BudgetStatus struct {
	Budget    Budget          `json:"budget"`
	Spent     decimal.Decimal `json:"spent"`
	Remaining decimal.Decimal `json:"remaining"`
	// Percentage is nil when the budget has no limit to measure against.
	Percentage  *decimal.Decimal `json:"percentage"`
	IsExceeded  bool             `json:"isExceeded"`
	ShouldAlert bool             `json:"shouldAlert"`
}
