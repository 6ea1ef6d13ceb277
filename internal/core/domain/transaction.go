package domain

import (
	"strings"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/shopspring/decimal"
)

// TransactionType indicates how a ledger row moves money.
type TransactionType string

const (
	Income   TransactionType = "INCOME"
	Expense  TransactionType = "EXPENSE"
	Transfer TransactionType = "TRANSFER"
)

// IsValid reports whether t is one of the known transaction types.
func (t TransactionType) IsValid() bool {
	return t == Income || t == Expense || t == Transfer
}

// TransactionStatus tracks whether a row has cleared the bank.
type TransactionStatus string

const (
	Pending TransactionStatus = "PENDING"
	Cleared TransactionStatus = "CLEARED"
)

// IsValid reports whether s is one of the known statuses.
func (s TransactionStatus) IsValid() bool {
	return s == Pending || s == Cleared
}

// Transaction is a single persisted ledger row.
type Transaction struct {
	TransactionID string            `json:"transactionID"`
	UserID        string            `json:"userID"`
	Date          time.Time         `json:"date"`
	Amount        decimal.Decimal   `json:"amount"` // always positive
	Description   string            `json:"description"`
	Type          TransactionType   `json:"type"`
	AccountID     string            `json:"accountID"`
	ToAccountID   *string           `json:"toAccountID,omitempty"` // set iff Type == TRANSFER
	CategoryID    *string           `json:"categoryID,omitempty"`
	SubcategoryID *string           `json:"subcategoryID,omitempty"`
	Status        TransactionStatus `json:"status"`
	Cardholder    *string           `json:"cardholder,omitempty"`
	IsMaaserable  *bool             `json:"isMaaserable,omitempty"` // income only
	IsDeductible  *bool             `json:"isDeductible,omitempty"` // expense only
	// IsSystemGenerated marks rows emitted by the ledger calculator. Such rows
	// always point at their parent through RelatedTransactionID.
	IsSystemGenerated    bool    `json:"isSystemGenerated"`
	RelatedTransactionID *string `json:"relatedTransactionID,omitempty"`
	AuditFields
}

// Draft returns the user-editable part of the row, keeping its id.
func (t Transaction) Draft() TransactionDraft {
	return TransactionDraft{
		TransactionID:        t.TransactionID,
		Date:                 t.Date,
		Amount:               t.Amount,
		Description:          t.Description,
		Type:                 t.Type,
		AccountID:            t.AccountID,
		ToAccountID:          t.ToAccountID,
		CategoryID:           t.CategoryID,
		SubcategoryID:        t.SubcategoryID,
		Status:               t.Status,
		Cardholder:           t.Cardholder,
		IsMaaserable:         t.IsMaaserable,
		IsDeductible:         t.IsDeductible,
		IsSystemGenerated:    t.IsSystemGenerated,
		RelatedTransactionID: t.RelatedTransactionID,
	}
}

// TransactionDraft is a transaction that has not been posted yet.
// An empty TransactionID is replaced with a fresh UUID at post time.
type TransactionDraft struct {
	TransactionID        string
	Date                 time.Time
	Amount               decimal.Decimal
	Description          string
	Type                 TransactionType
	AccountID            string
	ToAccountID          *string
	CategoryID           *string
	SubcategoryID        *string
	Status               TransactionStatus
	Cardholder           *string
	IsMaaserable         *bool
	IsDeductible         *bool
	IsSystemGenerated    bool
	RelatedTransactionID *string
}

// AccountIDs lists the accounts the draft touches directly.
func (d TransactionDraft) AccountIDs() []string {
	ids := []string{d.AccountID}
	if d.Type == Transfer && d.ToAccountID != nil {
		ids = append(ids, *d.ToAccountID)
	}
	return ids
}

// Validate checks the invariants a draft must satisfy before posting.
func (d TransactionDraft) Validate() error {
	if strings.TrimSpace(d.AccountID) == "" {
		return apperrors.NewValidationError("accountID is required")
	}
	if !d.Type.IsValid() {
		return apperrors.NewValidationError("invalid transaction type %q", d.Type)
	}
	if !d.Amount.IsPositive() {
		return apperrors.NewValidationError("amount must be positive, got %s", d.Amount.String())
	}
	if !d.Amount.Equal(d.Amount.Round(2)) {
		return apperrors.NewValidationError("amount must have at most 2 decimal places, got %s", d.Amount.String())
	}
	if d.Date.IsZero() {
		return apperrors.NewValidationError("date is required")
	}
	if d.Status != "" && !d.Status.IsValid() {
		return apperrors.NewValidationError("invalid status %q", d.Status)
	}
	switch d.Type {
	case Transfer:
		if d.ToAccountID == nil || strings.TrimSpace(*d.ToAccountID) == "" {
			return apperrors.NewValidationError("toAccountID is required for transfers")
		}
		if *d.ToAccountID == d.AccountID {
			return apperrors.NewValidationError("transfer source and destination must differ")
		}
	default:
		if d.ToAccountID != nil {
			return apperrors.NewValidationError("toAccountID is only allowed for transfers")
		}
	}
	if d.IsSystemGenerated && d.RelatedTransactionID == nil {
		return apperrors.NewValidationError("system-generated rows need a related transaction")
	}
	return nil
}
