package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/SscSPs/bolsas_app/internal/core/recurring"
	portsrepo "github.com/SscSPs/bolsas_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bolsas_app/internal/core/ports/services"
	"github.com/SscSPs/bolsas_app/internal/dto"
	"github.com/SscSPs/bolsas_app/internal/middleware"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type recurringService struct {
	BaseService
	recurringRepo portsrepo.RecurringRepositoryFacade
	accountRepo   portsrepo.AccountReader
	transactions  portssvc.TransactionWriterSvc
}

// NewRecurringService creates a new RecurringService posting through transactions.
func NewRecurringService(recurringRepo portsrepo.RecurringRepositoryFacade, accountRepo portsrepo.AccountReader, transactions portssvc.TransactionWriterSvc) portssvc.RecurringSvcFacade {
	return &recurringService{
		recurringRepo: recurringRepo,
		accountRepo:   accountRepo,
		transactions:  transactions,
	}
}

func (s *recurringService) CreateRecurring(ctx context.Context, userID string, req dto.CreateRecurringRequest) (*domain.RecurringTransaction, error) {
	now := time.Now().UTC()
	active := true
	if req.Active != nil {
		active = *req.Active
	}

	r := domain.RecurringTransaction{
		RecurringID:  uuid.NewString(),
		UserID:       userID,
		Description:  req.Description,
		Amount:       req.Amount.Round(2),
		Type:         req.Type,
		CategoryID:   req.CategoryID,
		AccountID:    req.AccountID,
		ToAccountID:  req.ToAccountID,
		DayOfMonth:   req.DayOfMonth,
		Active:       active,
		IsMaaserable: req.IsMaaserable,
		IsDeductible: req.IsDeductible,
		AuditFields:  domain.NewAuditFields(userID, now),
	}
	if r.Type != domain.Transfer {
		r.ToAccountID = nil
	}
	if r.DayOfMonth < 1 || r.DayOfMonth > 31 {
		return nil, apperrors.NewValidationError("day of month must be between 1 and 31, got %d", r.DayOfMonth)
	}

	// A template must expand into a postable draft.
	candidate := r
	candidate.Active = true
	drafts := recurring.Expand([]domain.RecurringTransaction{candidate}, domain.MonthYearOf(now))
	if err := drafts[0].Validate(); err != nil {
		return nil, err
	}
	if err := s.checkAccounts(ctx, userID, drafts[0].AccountIDs()); err != nil {
		return nil, err
	}

	if err := s.recurringRepo.SaveRecurring(ctx, r); err != nil {
		s.LogError(ctx, err, "Failed to save recurring template", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create recurring template: %w", err)
	}
	s.LogInfo(ctx, "Recurring template created", slog.String("recurring_id", r.RecurringID))
	return &r, nil
}

func (s *recurringService) ListRecurring(ctx context.Context, userID string) ([]domain.RecurringTransaction, error) {
	templates, err := s.recurringRepo.ListRecurring(ctx, userID, false)
	if err != nil {
		s.LogError(ctx, err, "Failed to list recurring templates", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list recurring templates: %w", err)
	}
	return templates, nil
}

func (s *recurringService) DeleteRecurring(ctx context.Context, userID string, recurringID string) error {
	r, err := s.recurringRepo.FindRecurringByID(ctx, recurringID)
	if err != nil {
		return err
	}
	if r.UserID != userID {
		return apperrors.NewNotFoundError("recurring template " + recurringID)
	}
	if err := s.recurringRepo.DeleteRecurring(ctx, recurringID); err != nil {
		s.LogError(ctx, err, "Failed to delete recurring template", slog.String("recurring_id", recurringID))
		return fmt.Errorf("failed to delete recurring template: %w", err)
	}
	s.LogInfo(ctx, "Recurring template deleted", slog.String("recurring_id", recurringID))
	return nil
}

// GenerateForMonth posts the templates not yet expanded for month and records
// the month on them. If the rows land but the bookkeeping does not, the
// result is ErrPartialApply and a rerun would post them again.
func (s *recurringService) GenerateForMonth(ctx context.Context, userID string, month domain.MonthYear) ([]domain.Transaction, error) {
	templates, err := s.recurringRepo.ListRecurring(ctx, userID, true)
	if err != nil {
		s.LogError(ctx, err, "Failed to load recurring templates", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load recurring templates: %w", err)
	}

	due := recurring.Due(templates, month)
	if len(due) == 0 {
		s.LogDebug(ctx, "No recurring templates due",
			slog.String("user_id", userID),
			slog.String("month", month.String()))
		return []domain.Transaction{}, nil
	}

	rows, err := s.transactions.PostTransactions(ctx, userID, recurring.Expand(due, month))
	if err != nil {
		return nil, fmt.Errorf("failed to post recurring transactions for %s: %w", month, err)
	}

	ids := make([]string, len(due))
	for i, r := range due {
		ids[i] = r.RecurringID
	}
	if err := s.recurringRepo.MarkRecurringGenerated(ctx, ids, month.String(), time.Now().UTC()); err != nil {
		s.LogError(ctx, err, "Recurring rows posted but templates not marked",
			slog.String("user_id", userID),
			slog.String("month", month.String()),
			slog.Int("row_count", len(rows)))
		return rows, fmt.Errorf("%w: recurring templates for %s not marked: %v", apperrors.ErrPartialApply, month, err)
	}

	s.LogInfo(ctx, "Recurring transactions generated",
		slog.String("user_id", userID),
		slog.String("month", month.String()),
		slog.Int("template_count", len(due)),
		slog.Int("row_count", len(rows)))
	return rows, nil
}

// GenerateForAllUsers fans GenerateForMonth out over every user with active
// templates. A failing user does not stop the others; the failures are joined
// into the returned error.
func (s *recurringService) GenerateForAllUsers(ctx context.Context, month domain.MonthYear, workers int) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	users, err := s.recurringRepo.ListUsersWithActiveRecurring(ctx)
	if err != nil {
		logger.Error("Failed to list users with recurring templates", slog.String("error", err.Error()))
		return 0, fmt.Errorf("failed to list users with recurring templates: %w", err)
	}
	if workers < 1 {
		workers = 1
	}

	counts := make([]int, len(users))
	failures := make([]error, len(users))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, userID := range users {
		i, userID := i, userID
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				failures[i] = err
				return nil
			}
			userCtx := middleware.WithUserID(gctx, userID)
			rows, err := s.GenerateForMonth(userCtx, userID, month)
			counts[i] = len(rows)
			if err != nil {
				logger.Error("Recurring generation failed for user",
					slog.String("user_id", userID),
					slog.String("error", err.Error()))
				failures[i] = fmt.Errorf("user %s: %w", userID, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	total := 0
	for _, c := range counts {
		total += c
	}
	logger.Info("Recurring generation finished",
		slog.String("month", month.String()),
		slog.Int("users", len(users)),
		slog.Int("rows", total))
	return total, errors.Join(failures...)
}

func (s *recurringService) checkAccounts(ctx context.Context, userID string, accountIDs []string) error {
	ids := uniqueStrings(accountIDs)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		return fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range ids {
		if acc, ok := accounts[id]; !ok || acc.UserID != userID {
			return apperrors.NewNotFoundError("account " + id)
		}
	}
	return nil
}
