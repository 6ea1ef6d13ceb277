package services

import (
	"context"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/SscSPs/bolsas_app/internal/dto"
)

// TransactionWriterSvc posts, edits and removes user transactions together
// with the rows the ledger generates for them.
type TransactionWriterSvc interface {
	// PostTransactions posts a batch atomically and returns every row written,
	// each main row followed by its dependents.
	PostTransactions(ctx context.Context, userID string, drafts []domain.TransactionDraft) ([]domain.Transaction, error)

	// DeleteTransactions removes each user transaction and its dependents,
	// undoing their balance effects.
	DeleteTransactions(ctx context.Context, userID string, transactionIDs []string) error

	// UpdateTransaction patches a user transaction and regenerates its dependents.
	UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
}

// TransactionReaderSvc exposes posted rows.
type TransactionReaderSvc interface {
	// GetTransaction returns the row and its dependents.
	GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, []domain.Transaction, error)

	// ListTransactions returns a token-paginated listing.
	ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
}

// TransactionSvcFacade combines all transaction-related service interfaces
type TransactionSvcFacade interface {
	TransactionWriterSvc
	TransactionReaderSvc
}
