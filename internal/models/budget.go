package models

import "github.com/shopspring/decimal"

// Budget is a row of the budgets table.
type Budget struct {
	BudgetID       string          `db:"budget_id"`
	UserID         string          `db:"user_id"`
	CategoryID     string          `db:"category_id"`
	MonthYear      string          `db:"month_year"`
	LimitAmount    decimal.Decimal `db:"limit_amount"`
	AlertThreshold int             `db:"alert_threshold"`
	AuditFields
}

// RecurringTransaction is a row of the recurring_transactions table.
type RecurringTransaction struct {
	RecurringID        string          `db:"recurring_id"`
	UserID             string          `db:"user_id"`
	Description        string          `db:"description"`
	Amount             decimal.Decimal `db:"amount"`
	TransactionType    string          `db:"transaction_type"`
	CategoryID         *string         `db:"category_id"`
	AccountID          string          `db:"account_id"`
	ToAccountID        *string         `db:"to_account_id"`
	DayOfMonth         int             `db:"day_of_month"`
	IsActive           bool            `db:"is_active"`
	IsMaaserable       *bool           `db:"is_maaserable"`
	IsDeductible       *bool           `db:"is_deductible"`
	LastGeneratedMonth *string         `db:"last_generated_month"`
	AuditFields
}
