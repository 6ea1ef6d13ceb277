package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/budget"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bolsas_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bolsas_app/internal/core/ports/services"
	"github.com/SscSPs/bolsas_app/internal/dto"
	"github.com/google/uuid"
)

type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
	txnRepo    portsrepo.TransactionReader
}

// NewBudgetService creates a new BudgetService.
func NewBudgetService(budgetRepo portsrepo.BudgetRepositoryFacade, txnRepo portsrepo.TransactionReader) portssvc.BudgetSvcFacade {
	return &budgetService{budgetRepo: budgetRepo, txnRepo: txnRepo}
}

func (s *budgetService) CreateBudget(ctx context.Context, userID string, req dto.CreateBudgetRequest) (*domain.Budget, error) {
	month, err := domain.ParseMonthYear(req.MonthYear)
	if err != nil {
		return nil, err
	}
	if !req.LimitAmount.IsPositive() {
		return nil, apperrors.NewValidationError("budget limit must be positive")
	}
	threshold := domain.DefaultAlertThreshold
	if req.AlertThreshold != nil {
		if *req.AlertThreshold <= 0 {
			return nil, apperrors.NewValidationError("alert threshold must be positive")
		}
		threshold = *req.AlertThreshold
	}

	b := domain.Budget{
		BudgetID:       uuid.NewString(),
		UserID:         userID,
		CategoryID:     req.CategoryID,
		MonthYear:      month.String(),
		LimitAmount:    req.LimitAmount.Round(2),
		AlertThreshold: threshold,
		AuditFields:    domain.NewAuditFields(userID, time.Now().UTC()),
	}
	if err := s.budgetRepo.SaveBudget(ctx, b); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, fmt.Errorf("budget for category %s in %s already exists: %w", b.CategoryID, b.MonthYear, err)
		}
		s.LogError(ctx, err, "Failed to save budget", slog.String("category_id", b.CategoryID))
		return nil, fmt.Errorf("failed to create budget: %w", err)
	}

	s.LogInfo(ctx, "Budget created", slog.String("budget_id", b.BudgetID), slog.String("month", b.MonthYear))
	return &b, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, userID string, monthYear string) ([]domain.Budget, error) {
	month, err := domain.ParseMonthYear(monthYear)
	if err != nil {
		return nil, err
	}
	budgets, err := s.budgetRepo.ListBudgetsByMonth(ctx, userID, month.String())
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("month", monthYear))
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, userID string, budgetID string) error {
	b, err := s.budgetRepo.FindBudgetByID(ctx, budgetID)
	if err != nil {
		return err
	}
	if b.UserID != userID {
		return apperrors.NewNotFoundError("budget " + budgetID)
	}
	if err := s.budgetRepo.DeleteBudget(ctx, budgetID); err != nil {
		s.LogError(ctx, err, "Failed to delete budget", slog.String("budget_id", budgetID))
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	s.LogInfo(ctx, "Budget deleted", slog.String("budget_id", budgetID))
	return nil
}

// GetBudgetStatuses loads the month's expenses once and evaluates every
// budget of that month against them.
func (s *budgetService) GetBudgetStatuses(ctx context.Context, userID string, monthYear string) ([]domain.BudgetStatus, error) {
	month, err := domain.ParseMonthYear(monthYear)
	if err != nil {
		return nil, err
	}
	budgets, err := s.ListBudgets(ctx, userID, monthYear)
	if err != nil {
		return nil, err
	}
	if len(budgets) == 0 {
		return []domain.BudgetStatus{}, nil
	}

	expenses, err := s.txnRepo.ListExpensesForMonth(ctx, userID, month)
	if err != nil {
		s.LogError(ctx, err, "Failed to load expenses", slog.String("month", monthYear))
		return nil, fmt.Errorf("failed to load expenses for %s: %w", monthYear, err)
	}
	return budget.EvaluateAll(budgets, expenses), nil
}
