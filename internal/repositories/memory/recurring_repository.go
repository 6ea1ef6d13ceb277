package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
)

// FindRecurringByID retrieves a template.
func (s *Store) FindRecurringByID(_ context.Context, recurringID string) (*domain.RecurringTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.recurring[recurringID]
	if !ok {
		return nil, apperrors.NewNotFoundError("recurring template " + recurringID)
	}
	return &r, nil
}

// ListRecurring returns the user's templates ordered by day of month.
func (s *Store) ListRecurring(_ context.Context, userID string, activeOnly bool) ([]domain.RecurringTransaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.RecurringTransaction{}
	for _, r := range s.recurring {
		if r.UserID == userID && (r.Active || !activeOnly) {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].DayOfMonth != out[j].DayOfMonth {
			return out[i].DayOfMonth < out[j].DayOfMonth
		}
		return out[i].RecurringID < out[j].RecurringID
	})
	return out, nil
}

// ListUsersWithActiveRecurring returns the sorted owners of active templates.
func (s *Store) ListUsersWithActiveRecurring(_ context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{})
	users := []string{}
	for _, r := range s.recurring {
		if _, ok := seen[r.UserID]; r.Active && !ok {
			seen[r.UserID] = struct{}{}
			users = append(users, r.UserID)
		}
	}
	sort.Strings(users)
	return users, nil
}

// SaveRecurring inserts a template.
func (s *Store) SaveRecurring(_ context.Context, recurring domain.RecurringTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.recurring[recurring.RecurringID]; exists {
		return fmt.Errorf("%w: recurring template %s already exists", apperrors.ErrDuplicate, recurring.RecurringID)
	}
	s.recurring[recurring.RecurringID] = recurring
	return nil
}

// DeleteRecurring removes a template.
func (s *Store) DeleteRecurring(_ context.Context, recurringID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recurring[recurringID]; !ok {
		return apperrors.NewNotFoundError("recurring template " + recurringID)
	}
	delete(s.recurring, recurringID)
	return nil
}

// MarkRecurringGenerated records monthYear on each template.
func (s *Store) MarkRecurringGenerated(_ context.Context, recurringIDs []string, monthYear string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range recurringIDs {
		if _, ok := s.recurring[id]; !ok {
			return apperrors.NewNotFoundError("recurring template " + id)
		}
	}
	for _, id := range recurringIDs {
		r := s.recurring[id]
		month := monthYear
		r.LastGeneratedMonth = &month
		r.LastUpdatedAt = now
		s.recurring[id] = r
	}
	return nil
}
