package dto

import (
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateRecurringRequest defines a monthly template.
type CreateRecurringRequest struct {
	Description  string                 `json:"description" binding:"required,max=500"`
	Amount       decimal.Decimal        `json:"amount"`
	Type         domain.TransactionType `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	CategoryID   *string                `json:"categoryID"`
	AccountID    string                 `json:"accountID" binding:"required"`
	ToAccountID  *string                `json:"toAccountID"`
	DayOfMonth   int                    `json:"dayOfMonth" binding:"required,min=1,max=31"`
	Active       *bool                  `json:"active"` // defaults to true
	IsMaaserable *bool                  `json:"isMaaserable"`
	IsDeductible *bool                  `json:"isDeductible"`
}

// RecurringResponse defines the data returned for a template.
type RecurringResponse struct {
	RecurringID        string                 `json:"recurringID"`
	Description        string                 `json:"description"`
	Amount             decimal.Decimal        `json:"amount"`
	Type               domain.TransactionType `json:"type"`
	CategoryID         *string                `json:"categoryID,omitempty"`
	AccountID          string                 `json:"accountID"`
	ToAccountID        *string                `json:"toAccountID,omitempty"`
	DayOfMonth         int                    `json:"dayOfMonth"`
	Active             bool                   `json:"active"`
	IsMaaserable       *bool                  `json:"isMaaserable,omitempty"`
	IsDeductible       *bool                  `json:"isDeductible,omitempty"`
	LastGeneratedMonth *string                `json:"lastGeneratedMonth,omitempty"`
}

// ToRecurringResponse converts a template to its DTO.
func ToRecurringResponse(r *domain.RecurringTransaction) RecurringResponse {
	return RecurringResponse{
		RecurringID:        r.RecurringID,
		Description:        r.Description,
		Amount:             r.Amount,
		Type:               r.Type,
		CategoryID:         r.CategoryID,
		AccountID:          r.AccountID,
		ToAccountID:        r.ToAccountID,
		DayOfMonth:         r.DayOfMonth,
		Active:             r.Active,
		IsMaaserable:       r.IsMaaserable,
		IsDeductible:       r.IsDeductible,
		LastGeneratedMonth: r.LastGeneratedMonth,
	}
}

// ToRecurringResponses converts a slice of templates.
func ToRecurringResponses(rs []domain.RecurringTransaction) []RecurringResponse {
	res := make([]RecurringResponse, len(rs))
	for i := range rs {
		res[i] = ToRecurringResponse(&rs[i])
	}
	return res
}

// GenerateRecurringResponse lists the rows created for a month.
type GenerateRecurringResponse struct {
	Month        string                `json:"month"`
	Transactions []TransactionResponse `json:"transactions"`
}
