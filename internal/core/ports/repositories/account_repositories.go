package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AccountReader defines read operations for account data
type AccountReader interface {
	// FindAccountByID retrieves a specific account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountsByIDs retrieves multiple accounts by their IDs. Missing ids are
	// simply absent from the result.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// FindAccountByName looks an account up by name, ignoring case.
	FindAccountByName(ctx context.Context, userID string, name string) (*domain.Account, error)

	// ListAccounts retrieves a page of the user's accounts ordered by name.
	ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriter defines write operations for account data
type AccountWriter interface {
	// SaveAccount persists a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// CreateAccountIfNameAbsent inserts account unless the user already owns an
	// account with the same name (case-insensitive). It returns whichever
	// account holds the name afterwards, so concurrent callers converge.
	CreateAccountIfNameAbsent(ctx context.Context, account domain.Account) (*domain.Account, error)

	// UpdateAccount updates an existing account's descriptive fields. Balances
	// are never written through this method.
	UpdateAccount(ctx context.Context, account domain.Account) error
}

// AccountBalanceSupport defines the reconciliation side of the balance cache.
type AccountBalanceSupport interface {
	// SumLedgerDeltas returns the signed total of every row touching the account.
	SumLedgerDeltas(ctx context.Context, accountID string) (decimal.Decimal, error)

	// RecomputeAccountBalance rewrites the cached balance from the ledger in a
	// single statement and returns the new value.
	RecomputeAccountBalance(ctx context.Context, accountID string, userID string, now time.Time) (decimal.Decimal, error)
}

// AccountRepositoryFacade combines all account-related repository interfaces
// This is a facade for clients that need access to all operations
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
	AccountBalanceSupport
}
