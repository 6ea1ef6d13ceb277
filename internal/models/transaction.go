package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table. Nullable columns are pointers.
type Transaction struct {
	TransactionID        string          `db:"transaction_id"`
	UserID               string          `db:"user_id"`
	TransactionDate      time.Time       `db:"transaction_date"`
	Amount               decimal.Decimal `db:"amount"`
	Description          string          `db:"description"`
	TransactionType      string          `db:"transaction_type"`
	AccountID            string          `db:"account_id"`
	ToAccountID          *string         `db:"to_account_id"`
	CategoryID           *string         `db:"category_id"`
	SubcategoryID        *string         `db:"subcategory_id"`
	Status               string          `db:"status"`
	Cardholder           *string         `db:"cardholder"`
	IsMaaserable         *bool           `db:"is_maaserable"`
	IsDeductible         *bool           `db:"is_deductible"`
	IsSystemGenerated    bool            `db:"is_system_generated"`
	RelatedTransactionID *string         `db:"related_transaction_id"`
	AuditFields
}
