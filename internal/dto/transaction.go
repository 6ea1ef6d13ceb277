package dto

import (
	"time"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionDraftRequest is one transaction entered by the user or an importer.
type TransactionDraftRequest struct {
	TransactionID string                   `json:"transactionID" binding:"omitempty,uuid"` // Optional, generated when empty
	Date          time.Time                `json:"date" binding:"required"`
	Amount        decimal.Decimal          `json:"amount"`
	Description   string                   `json:"description" binding:"max=500"`
	Type          domain.TransactionType   `json:"type" binding:"required,oneof=INCOME EXPENSE TRANSFER"`
	AccountID     string                   `json:"accountID" binding:"required"`
	ToAccountID   *string                  `json:"toAccountID"`
	CategoryID    *string                  `json:"categoryID"`
	SubcategoryID *string                  `json:"subcategoryID"`
	Status        domain.TransactionStatus `json:"status" binding:"omitempty,oneof=PENDING CLEARED"`
	Cardholder    *string                  `json:"cardholder"`
	IsMaaserable  *bool                    `json:"isMaaserable"`
	IsDeductible  *bool                    `json:"isDeductible"`
}

// ToDraft converts the request into a domain draft.
func (r TransactionDraftRequest) ToDraft() domain.TransactionDraft {
	return domain.TransactionDraft{
		TransactionID: r.TransactionID,
		Date:          r.Date,
		Amount:        r.Amount,
		Description:   r.Description,
		Type:          r.Type,
		AccountID:     r.AccountID,
		ToAccountID:   r.ToAccountID,
		CategoryID:    r.CategoryID,
		SubcategoryID: r.SubcategoryID,
		Status:        r.Status,
		Cardholder:    r.Cardholder,
		IsMaaserable:  r.IsMaaserable,
		IsDeductible:  r.IsDeductible,
	}
}

// ToDrafts converts a batch of requests.
func ToDrafts(reqs []TransactionDraftRequest) []domain.TransactionDraft {
	drafts := make([]domain.TransactionDraft, len(reqs))
	for i, r := range reqs {
		drafts[i] = r.ToDraft()
	}
	return drafts
}

// PostTransactionsRequest carries a batch of drafts posted together.
type PostTransactionsRequest struct {
	Transactions []TransactionDraftRequest `json:"transactions" binding:"required,min=1,max=500,dive"`
}

// UpdateTransactionRequest defines the fields a user may change on a posted
// transaction. Nil fields keep their stored value.
type UpdateTransactionRequest struct {
	Date          *time.Time                `json:"date"`
	Amount        *decimal.Decimal          `json:"amount"`
	Description   *string                   `json:"description" binding:"omitempty,max=500"`
	Type          *domain.TransactionType   `json:"type" binding:"omitempty,oneof=INCOME EXPENSE TRANSFER"`
	AccountID     *string                   `json:"accountID"`
	ToAccountID   *string                   `json:"toAccountID"`
	CategoryID    *string                   `json:"categoryID"`
	SubcategoryID *string                   `json:"subcategoryID"`
	Status        *domain.TransactionStatus `json:"status" binding:"omitempty,oneof=PENDING CLEARED"`
	Cardholder    *string                   `json:"cardholder"`
	IsMaaserable  *bool                     `json:"isMaaserable"`
	IsDeductible  *bool                     `json:"isDeductible"`
}

// IsEmpty reports whether the request changes nothing.
func (r UpdateTransactionRequest) IsEmpty() bool {
	return r.Date == nil && r.Amount == nil && r.Description == nil && r.Type == nil &&
		r.AccountID == nil && r.ToAccountID == nil && r.CategoryID == nil && r.SubcategoryID == nil &&
		r.Status == nil && r.Cardholder == nil && r.IsMaaserable == nil && r.IsDeductible == nil
}

// Apply patches txn with the non-nil fields of the request. A destination
// account only survives on transfers, and a Maaser flag only on the type it
// belongs to.
func (r UpdateTransactionRequest) Apply(txn domain.Transaction) domain.Transaction {
	if r.Date != nil {
		txn.Date = *r.Date
	}
	if r.Amount != nil {
		txn.Amount = *r.Amount
	}
	if r.Description != nil {
		txn.Description = *r.Description
	}
	if r.Type != nil {
		txn.Type = *r.Type
	}
	if r.AccountID != nil {
		txn.AccountID = *r.AccountID
	}
	if r.ToAccountID != nil {
		txn.ToAccountID = r.ToAccountID
	}
	if r.CategoryID != nil {
		txn.CategoryID = r.CategoryID
	}
	if r.SubcategoryID != nil {
		txn.SubcategoryID = r.SubcategoryID
	}
	if r.Status != nil {
		txn.Status = *r.Status
	}
	if r.Cardholder != nil {
		txn.Cardholder = r.Cardholder
	}
	if r.IsMaaserable != nil {
		txn.IsMaaserable = r.IsMaaserable
	}
	if r.IsDeductible != nil {
		txn.IsDeductible = r.IsDeductible
	}

	if txn.Type != domain.Transfer {
		txn.ToAccountID = nil
	}
	if txn.Type != domain.Income {
		txn.IsMaaserable = nil
	}
	if txn.Type != domain.Expense {
		txn.IsDeductible = nil
	}
	return txn
}

// DeleteTransactionsRequest lists the user transactions to remove.
type DeleteTransactionsRequest struct {
	TransactionIDs []string `json:"transactionIDs" binding:"required,min=1,max=500"`
}

// TransactionResponse defines the data returned for a ledger row.
type TransactionResponse struct {
	TransactionID        string                   `json:"transactionID"`
	Date                 time.Time                `json:"date"`
	Amount               decimal.Decimal          `json:"amount"`
	Description          string                   `json:"description"`
	Type                 domain.TransactionType   `json:"type"`
	AccountID            string                   `json:"accountID"`
	ToAccountID          *string                  `json:"toAccountID,omitempty"`
	CategoryID           *string                  `json:"categoryID,omitempty"`
	SubcategoryID        *string                  `json:"subcategoryID,omitempty"`
	Status               domain.TransactionStatus `json:"status"`
	Cardholder           *string                  `json:"cardholder,omitempty"`
	IsMaaserable         *bool                    `json:"isMaaserable,omitempty"`
	IsDeductible         *bool                    `json:"isDeductible,omitempty"`
	IsSystemGenerated    bool                     `json:"isSystemGenerated"`
	RelatedTransactionID *string                  `json:"relatedTransactionID,omitempty"`
	CreatedAt            time.Time                `json:"createdAt"`
	CreatedBy            string                   `json:"createdBy"`
	LastUpdatedAt        time.Time                `json:"lastUpdatedAt"`
	LastUpdatedBy        string                   `json:"lastUpdatedBy"`
}

// ToTransactionResponse converts a domain.Transaction to its DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:        txn.TransactionID,
		Date:                 txn.Date,
		Amount:               txn.Amount,
		Description:          txn.Description,
		Type:                 txn.Type,
		AccountID:            txn.AccountID,
		ToAccountID:          txn.ToAccountID,
		CategoryID:           txn.CategoryID,
		SubcategoryID:        txn.SubcategoryID,
		Status:               txn.Status,
		Cardholder:           txn.Cardholder,
		IsMaaserable:         txn.IsMaaserable,
		IsDeductible:         txn.IsDeductible,
		IsSystemGenerated:    txn.IsSystemGenerated,
		RelatedTransactionID: txn.RelatedTransactionID,
		CreatedAt:            txn.CreatedAt,
		CreatedBy:            txn.CreatedBy,
		LastUpdatedAt:        txn.LastUpdatedAt,
		LastUpdatedBy:        txn.LastUpdatedBy,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return res
}

// PostTransactionsResponse lists every row a posting produced, dependents included.
type PostTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
}

// GetTransactionResponse returns a row together with its system-generated dependents.
type GetTransactionResponse struct {
	TransactionResponse
	Dependents []TransactionResponse `json:"dependents"`
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit         int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken     *string `form:"nextToken"`
	AccountID     *string `form:"accountID"`
	CategoryID    *string `form:"categoryID"`
	Month         *string `form:"month" binding:"omitempty,monthyear"`
	IncludeSystem bool    `form:"includeSystem"`
}

// ListTransactionsResponse wraps a page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}
