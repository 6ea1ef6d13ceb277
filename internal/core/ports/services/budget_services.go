package services

import (
	"context"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/SscSPs/bolsas_app/internal/dto"
)

// BudgetSvcFacade manages monthly budgets and evaluates them.
type BudgetSvcFacade interface {
	CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error)
	ListBudgets(ctx context.Context, userID string, monthYear string) ([]domain.Budget, error)
	DeleteBudget(ctx context.Context, userID string, budgetID string) error
	// GetBudgetStatuses evaluates every budget of the month against its expenses.
	GetBudgetStatuses(ctx context.Context, userID string, monthYear string) ([]domain.BudgetStatus, error)
}
