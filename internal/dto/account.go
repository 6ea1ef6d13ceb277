package dto

import (
	"time"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	Name                     string             `json:"name" binding:"required,max=100"`
	AccountType              domain.AccountType `json:"accountType" binding:"required,oneof=PERSONAL BUSINESS INVESTMENT WALLET SAVINGS_GOAL OTHER"`
	CurrencyCode             string             `json:"currencyCode" binding:"omitempty,len=3"` // Optional, defaults to the configured currency
	InitialBalance           decimal.Decimal    `json:"initialBalance"`
	DefaultIncomeMaaserable  *bool              `json:"defaultIncomeMaaserable"`
	DefaultExpenseDeductible *bool              `json:"defaultExpenseDeductible"`
	TargetAmount             *decimal.Decimal   `json:"targetAmount"`
	Deadline                 *time.Time         `json:"deadline"`
}

// UpdateAccountRequest defines the data allowed for updating an account.
// Use pointers to distinguish between zero-value updates and fields not provided.
type UpdateAccountRequest struct {
	Name                     *string          `json:"name" binding:"omitempty,max=100"`
	DefaultIncomeMaaserable  *bool            `json:"defaultIncomeMaaserable"`
	DefaultExpenseDeductible *bool            `json:"defaultExpenseDeductible"`
	TargetAmount             *decimal.Decimal `json:"targetAmount"`
	Deadline                 *time.Time       `json:"deadline"`
	IsActive                 *bool            `json:"isActive"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID                string             `json:"accountID"`
	Name                     string             `json:"name"`
	AccountType              domain.AccountType `json:"accountType"`
	CurrencyCode             string             `json:"currencyCode"`
	InitialBalance           decimal.Decimal    `json:"initialBalance"`
	CurrentBalance           decimal.Decimal    `json:"currentBalance"`
	DefaultIncomeMaaserable  *bool              `json:"defaultIncomeMaaserable,omitempty"`
	DefaultExpenseDeductible *bool              `json:"defaultExpenseDeductible,omitempty"`
	TargetAmount             *decimal.Decimal   `json:"targetAmount,omitempty"`
	Deadline                 *time.Time         `json:"deadline,omitempty"`
	IsActive                 bool               `json:"isActive"`
	CreatedAt                time.Time          `json:"createdAt"`
	CreatedBy                string             `json:"createdBy"`
	LastUpdatedAt            time.Time          `json:"lastUpdatedAt"`
	LastUpdatedBy            string             `json:"lastUpdatedBy"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:                acc.AccountID,
		Name:                     acc.Name,
		AccountType:              acc.AccountType,
		CurrencyCode:             acc.CurrencyCode,
		InitialBalance:           acc.InitialBalance,
		CurrentBalance:           acc.CurrentBalance,
		DefaultIncomeMaaserable:  acc.DefaultIncomeMaaserable,
		DefaultExpenseDeductible: acc.DefaultExpenseDeductible,
		TargetAmount:             acc.TargetAmount,
		Deadline:                 acc.Deadline,
		IsActive:                 acc.IsActive,
		CreatedAt:                acc.CreatedAt,
		CreatedBy:                acc.CreatedBy,
		LastUpdatedAt:            acc.LastUpdatedAt,
		LastUpdatedBy:            acc.LastUpdatedBy,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	Limit  int `form:"limit,default=20" binding:"min=1,max=100"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// ListAccountsResponse wraps a page of accounts.
type ListAccountsResponse struct {
	Accounts []AccountResponse `json:"accounts"`
}

// ReconcileAccountParams toggles whether a drifted balance is rewritten.
type ReconcileAccountParams struct {
	Repair bool `form:"repair"`
}

// ReconciliationResponse reports the cached balance next to the ledger.
type ReconciliationResponse struct {
	AccountID     string          `json:"accountID"`
	CachedBalance decimal.Decimal `json:"cachedBalance"`
	LedgerBalance decimal.Decimal `json:"ledgerBalance"`
	Difference    decimal.Decimal `json:"difference"`
	InSync        bool            `json:"inSync"`
	Repaired      bool            `json:"repaired"`
}

// ToReconciliationResponse converts a domain.Reconciliation to its DTO.
func ToReconciliationResponse(r *domain.Reconciliation) ReconciliationResponse {
	return ReconciliationResponse{
		AccountID:     r.AccountID,
		CachedBalance: r.CachedBalance,
		LedgerBalance: r.LedgerBalance,
		Difference:    r.Difference,
		InSync:        r.InSync(),
		Repaired:      r.Repaired,
	}
}
