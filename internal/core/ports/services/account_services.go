package services

import (
	"context"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/SscSPs/bolsas_app/internal/dto"
)

// AccountReaderSvc defines read operations for account data
type AccountReaderSvc interface {
	// GetAccountByID retrieves an account owned by userID.
	GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error)

	// GetAccountByIDs retrieves several accounts, failing if any is missing or
	// belongs to someone else.
	GetAccountByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts retrieves a page of the user's accounts.
	ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error)
}

// AccountWriterSvc defines write operations for account data
type AccountWriterSvc interface {
	// CreateAccount persists a new account.
	CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error)

	// UpdateAccount updates an existing account's details.
	UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error)
}

// AccountReconcilerSvc checks the cached balance against the ledger.
type AccountReconcilerSvc interface {
	// ReconcileAccount recomputes the balance from the ledger rows and, when
	// repair is set and the two differ, rewrites the cache.
	ReconcileAccount(ctx context.Context, userID string, accountID string, repair bool) (*domain.Reconciliation, error)
}

// AccountSvcFacade combines all account-related service interfaces
// This is a facade for clients that need access to all operations
type AccountSvcFacade interface {
	AccountReaderSvc
	AccountWriterSvc
	AccountReconcilerSvc
}

// MaaserResolver locates the per-user account that receives tithes.
type MaaserResolver interface {
	// FindMaaserAccount returns nil without error when the user has none.
	FindMaaserAccount(ctx context.Context, userID string) (*domain.Account, error)

	// FindOrCreateMaaserAccount creates the account on first use. Concurrent
	// callers for the same user receive the same account.
	FindOrCreateMaaserAccount(ctx context.Context, userID string) (*domain.Account, error)
}
