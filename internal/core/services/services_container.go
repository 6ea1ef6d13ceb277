package services

import (
	portsrepo "github.com/SscSPs/bolsas_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bolsas_app/internal/core/ports/services"
	"github.com/SscSPs/bolsas_app/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Account = NewAccountService(
		repos.AccountRepo,
		WithDefaultCurrency(cfg.DefaultCurrency),
	)

	// The transaction service depends on the Maaser resolver, and recurring
	// generation posts through the transaction service.
	container.Maaser = NewMaaserResolver(repos.AccountRepo, cfg.MaaserAccountName, cfg.DefaultCurrency)
	container.Transaction = NewTransactionService(repos.TransactionRepo, repos.AccountRepo, container.Maaser)
	container.Budget = NewBudgetService(repos.BudgetRepo, repos.TransactionRepo)
	container.Recurring = NewRecurringService(repos.RecurringRepo, repos.AccountRepo, container.Transaction)

	return container
}

// Helper to check interface implementations at compile time
var (
	_ portssvc.AccountSvcFacade     = (*accountService)(nil)
	_ portssvc.MaaserResolver       = (*maaserResolver)(nil)
	_ portssvc.TransactionSvcFacade = (*transactionService)(nil)
	_ portssvc.BudgetSvcFacade      = (*budgetService)(nil)
	_ portssvc.RecurringSvcFacade   = (*recurringService)(nil)
)
