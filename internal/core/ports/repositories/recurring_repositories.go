package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
)

// RecurringReader defines read operations for recurring templates.
type RecurringReader interface {
	FindRecurringByID(ctx context.Context, recurringID string) (*domain.RecurringTransaction, error)
	// ListRecurring returns the user's templates, optionally only active ones.
	ListRecurring(ctx context.Context, userID string, activeOnly bool) ([]domain.RecurringTransaction, error)
	// ListUsersWithActiveRecurring returns the distinct owners of active templates.
	ListUsersWithActiveRecurring(ctx context.Context) ([]string, error)
}

// RecurringWriter defines write operations for recurring templates.
type RecurringWriter interface {
	SaveRecurring(ctx context.Context, recurring domain.RecurringTransaction) error
	DeleteRecurring(ctx context.Context, recurringID string) error
	// MarkRecurringGenerated records monthYear as the last expanded month.
	MarkRecurringGenerated(ctx context.Context, recurringIDs []string, monthYear string, now time.Time) error
}

// RecurringRepositoryFacade combines all recurring-related repository interfaces
type RecurringRepositoryFacade interface {
	RecurringReader
	RecurringWriter
}
