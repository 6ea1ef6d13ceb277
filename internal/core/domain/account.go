package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// AccountType classifies a bolsa. It carries no accounting sign, every
// account is a plain balance holder.
type AccountType string

const (
	Personal    AccountType = "PERSONAL"
	Business    AccountType = "BUSINESS"
	Investment  AccountType = "INVESTMENT"
	Wallet      AccountType = "WALLET"
	SavingsGoal AccountType = "SAVINGS_GOAL"
	Other       AccountType = "OTHER"
)

// IsValid reports whether t is one of the known account types.
func (t AccountType) IsValid() bool {
	switch t {
	case Personal, Business, Investment, Wallet, SavingsGoal, Other:
		return true
	}
	return false
}

// Account represents a money container ("bolsa") owned by a user.
type Account struct {
	AccountID      string          `json:"accountID"`
	UserID         string          `json:"userID"`
	Name           string          `json:"name"`
	AccountType    AccountType     `json:"accountType"`
	CurrencyCode   string          `json:"currencyCode"`
	InitialBalance decimal.Decimal `json:"initialBalance"`
	// CurrentBalance is a cache of InitialBalance plus the signed effect of
	// every transaction row referencing the account.
	CurrentBalance           decimal.Decimal  `json:"currentBalance"`
	DefaultIncomeMaaserable  *bool            `json:"defaultIncomeMaaserable,omitempty"`
	DefaultExpenseDeductible *bool            `json:"defaultExpenseDeductible,omitempty"`
	TargetAmount             *decimal.Decimal `json:"targetAmount,omitempty"`
	Deadline                 *time.Time       `json:"deadline,omitempty"`
	IsActive                 bool             `json:"isActive"`
	AuditFields
}

// Context returns the posting defaults the ledger calculator needs.
func (a Account) Context() AccountContext {
	return AccountContext{
		DefaultIncomeMaaserable:  a.DefaultIncomeMaaserable,
		DefaultExpenseDeductible: a.DefaultExpenseDeductible,
	}
}

// AccountContext is the subset of an account consulted when a transaction
// leaves its Maaser flags unset.
type AccountContext struct {
	DefaultIncomeMaaserable  *bool
	DefaultExpenseDeductible *bool
}

// AccountRef identifies an account without carrying its state.
type AccountRef struct {
	AccountID string
}

// Reconciliation compares the cached balance of an account with the balance
// derived from its ledger rows.
type Reconciliation struct {
	AccountID     string          `json:"accountID"`
	CachedBalance decimal.Decimal `json:"cachedBalance"`
	LedgerBalance decimal.Decimal `json:"ledgerBalance"`
	Difference    decimal.Decimal `json:"difference"`
	Repaired      bool            `json:"repaired"`
}

// InSync reports whether the cached balance matches the ledger.
func (r Reconciliation) InSync() bool {
	return r.Difference.IsZero()
}
