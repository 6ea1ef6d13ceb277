package repositories

import (
	"context"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
)

// BudgetRepositoryFacade defines persistence for monthly budgets.
type BudgetRepositoryFacade interface {
	// SaveBudget persists a new budget. A second budget for the same category
	// and month yields apperrors.ErrDuplicate.
	SaveBudget(ctx context.Context, budget domain.Budget) error
	FindBudgetByID(ctx context.Context, budgetID string) (*domain.Budget, error)
	ListBudgetsByMonth(ctx context.Context, userID string, monthYear string) ([]domain.Budget, error)
	DeleteBudget(ctx context.Context, budgetID string) error
}
