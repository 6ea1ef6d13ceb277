package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Account is a row of the accounts table.
type Account struct {
	AccountID                string           `db:"account_id"`
	UserID                   string           `db:"user_id"`
	Name                     string           `db:"name"`
	AccountType              string           `db:"account_type"`
	CurrencyCode             string           `db:"currency_code"`
	InitialBalance           decimal.Decimal  `db:"initial_balance"`
	Balance                  decimal.Decimal  `db:"balance"` // cached current balance
	DefaultIncomeMaaserable  *bool            `db:"default_income_maaserable"`
	DefaultExpenseDeductible *bool            `db:"default_expense_deductible"`
	TargetAmount             *decimal.Decimal `db:"target_amount"`
	Deadline                 *time.Time       `db:"deadline"`
	IsActive                 bool             `db:"is_active"`
	AuditFields
}
