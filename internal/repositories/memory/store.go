// Package memory keeps every repository in process memory. It backs the
// memory storage mode used for local runs and end-to-end service tests.
package memory

import (
	"sync"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bolsas_app/internal/core/ports/repositories"
)

// Store holds all entities behind one mutex, so every ledger write is applied
// as a unit.
type Store struct {
	mu        sync.Mutex
	accounts  map[string]domain.Account
	txns      map[string]domain.Transaction
	budgets   map[string]domain.Budget
	recurring map[string]domain.RecurringTransaction
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts:  make(map[string]domain.Account),
		txns:      make(map[string]domain.Transaction),
		budgets:   make(map[string]domain.Budget),
		recurring: make(map[string]domain.RecurringTransaction),
	}
}

// NewRepositoryProvider exposes a single store through every repository port.
func NewRepositoryProvider(s *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo:     s,
		TransactionRepo: s,
		BudgetRepo:      s,
		RecurringRepo:   s,
	}
}

var (
	_ portsrepo.AccountRepositoryFacade     = (*Store)(nil)
	_ portsrepo.TransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.BudgetRepositoryFacade      = (*Store)(nil)
	_ portsrepo.RecurringRepositoryFacade   = (*Store)(nil)
)
