package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
)

// SaveBudget inserts a budget, one per category and month.
func (s *Store) SaveBudget(_ context.Context, budget domain.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.budgets {
		if b.UserID == budget.UserID && b.CategoryID == budget.CategoryID && b.MonthYear == budget.MonthYear {
			return fmt.Errorf("%w: budget for category %s in %s", apperrors.ErrDuplicate, budget.CategoryID, budget.MonthYear)
		}
	}
	s.budgets[budget.BudgetID] = budget
	return nil
}

// FindBudgetByID retrieves a budget.
func (s *Store) FindBudgetByID(_ context.Context, budgetID string) (*domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.budgets[budgetID]
	if !ok {
		return nil, apperrors.NewNotFoundError("budget " + budgetID)
	}
	return &b, nil
}

// ListBudgetsByMonth returns the user's budgets for monthYear ordered by category.
func (s *Store) ListBudgetsByMonth(_ context.Context, userID string, monthYear string) ([]domain.Budget, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Budget{}
	for _, b := range s.budgets {
		if b.UserID == userID && b.MonthYear == monthYear {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CategoryID < out[j].CategoryID })
	return out, nil
}

// DeleteBudget removes a budget.
func (s *Store) DeleteBudget(_ context.Context, budgetID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.budgets[budgetID]; !ok {
		return apperrors.NewNotFoundError("budget " + budgetID)
	}
	delete(s.budgets, budgetID)
	return nil
}
