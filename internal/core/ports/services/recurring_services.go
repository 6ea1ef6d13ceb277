package services

import (
	"context"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/SscSPs/bolsas_app/internal/dto"
)

// RecurringSvcFacade manages monthly templates and their expansion.
type RecurringSvcFacade interface {
	CreateRecurring(ctx context.Context, userID string, req dto.CreateRecurringRequest) (*domain.RecurringTransaction, error)
	ListRecurring(ctx context.Context, userID string) ([]domain.RecurringTransaction, error)
	DeleteRecurring(ctx context.Context, userID string, recurringID string) error

	// GenerateForMonth posts the user's due templates for month. Running it
	// twice for the same month posts nothing the second time.
	GenerateForMonth(ctx context.Context, userID string, month domain.MonthYear) ([]domain.Transaction, error)

	// GenerateForAllUsers runs GenerateForMonth for every user with active
	// templates, at most workers at a time, and returns the rows created.
	GenerateForAllUsers(ctx context.Context, month domain.MonthYear, workers int) (int, error)
}
