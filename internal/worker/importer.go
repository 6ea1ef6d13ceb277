package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/bolsas_app/internal/amqp"
	"github.com/SscSPs/bolsas_app/internal/apperrors"
	portssvc "github.com/SscSPs/bolsas_app/internal/core/ports/services"
	"github.com/SscSPs/bolsas_app/internal/dto"
	"github.com/SscSPs/bolsas_app/internal/middleware"
)

// Importer posts batches read from the import queue.
type Importer struct {
	transactions portssvc.TransactionWriterSvc
	logger       *slog.Logger
}

// NewImporter creates an Importer that posts through svc.
func NewImporter(svc portssvc.TransactionWriterSvc, logger *slog.Logger) *Importer {
	return &Importer{transactions: svc, logger: logger}
}

// HandleImportBatch posts every draft of msg in one call. Failures a retry
// cannot fix are wrapped with amqp.ErrPermanent so the delivery is dropped.
func (i *Importer) HandleImportBatch(ctx context.Context, msg *amqp.ImportBatchMessage) error {
	logger := i.logger.With(slog.String("batch_id", msg.BatchID), slog.String("user_id", msg.UserID))
	ctx = middleware.WithLogger(middleware.WithUserID(ctx, msg.UserID), logger)

	rows, err := i.transactions.PostTransactions(ctx, msg.UserID, dto.ToDrafts(msg.Drafts))
	if err == nil {
		logger.Info("Import batch posted", slog.Int("draft_count", len(msg.Drafts)), slog.Int("row_count", len(rows)))
		return nil
	}

	switch {
	case errors.Is(err, apperrors.ErrPartialApply):
		logger.Error("Import batch may be partially applied, reconcile the user's accounts", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", amqp.ErrPermanent, err)
	case errors.Is(err, apperrors.ErrValidation),
		errors.Is(err, apperrors.ErrNotFound),
		errors.Is(err, apperrors.ErrDuplicate):
		logger.Warn("Import batch rejected", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %v", amqp.ErrPermanent, err)
	default:
		return fmt.Errorf("post import batch: %w", err)
	}
}
