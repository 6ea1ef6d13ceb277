package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// TransactionFilter narrows a transaction listing.
type TransactionFilter struct {
	AccountID     *string
	CategoryID    *string
	Month         *domain.MonthYear
	IncludeSystem bool
}

// TransactionReader defines read operations for ledger rows.
type TransactionReader interface {
	// FindTransactionByID retrieves a single row.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindDependents returns the system rows whose RelatedTransactionID is transactionID.
	FindDependents(ctx context.Context, transactionID string) ([]domain.Transaction, error)

	// ListTransactions returns a page ordered by date then creation time, newest
	// first, with a token for the following page when there is one.
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error)

	// ListExpensesForMonth returns every expense row of the user dated in month.
	ListExpensesForMonth(ctx context.Context, userID string, month domain.MonthYear) ([]domain.Transaction, error)
}

// LedgerWriter applies ledger rows and their balance changes. Each method is
// a single storage transaction: either every row and every delta lands, or
// none does.
type LedgerWriter interface {
	// PostLedger inserts rows and adds deltas to the cached balances.
	PostLedger(ctx context.Context, rows []domain.Transaction, deltas map[string]decimal.Decimal) error

	// DeleteLedger removes rows by id and adds deltas to the cached balances.
	DeleteLedger(ctx context.Context, transactionIDs []string, deltas map[string]decimal.Decimal) error

	// ReplaceLedger rewrites main, drops removedIDs, inserts dependents and adds
	// deltas, which must already be the net of reversal and re-application.
	// The stored row must still carry expectedUpdatedAt, otherwise
	// apperrors.ErrConflict is returned and nothing changes.
	ReplaceLedger(ctx context.Context, main domain.Transaction, expectedUpdatedAt time.Time, removedIDs []string, dependents []domain.Transaction, deltas map[string]decimal.Decimal) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	LedgerWriter
}
