package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/SscSPs/bolsas_app/internal/core/ledger"
	portsrepo "github.com/SscSPs/bolsas_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bolsas_app/internal/core/ports/services"
	"github.com/SscSPs/bolsas_app/internal/dto"
	"github.com/SscSPs/bolsas_app/internal/middleware"
	"github.com/shopspring/decimal"
)

// ErrSystemRow is returned when a caller tries to edit or delete a generated
// row directly; those rows follow their parent.
var ErrSystemRow = fmt.Errorf("%w: system-generated transactions are managed through their parent", apperrors.ErrValidation)

// transactionService posts user transactions through the ledger calculator
// and keeps account balances in step.
type transactionService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountReader
	maaser      portssvc.MaaserResolver
}

// NewTransactionService creates a new TransactionService.
func NewTransactionService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountReader, maaser portssvc.MaaserResolver) portssvc.TransactionSvcFacade {
	return &transactionService{
		txnRepo:     txnRepo,
		accountRepo: accountRepo,
		maaser:      maaser,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// PostTransactions validates every draft, resolves the accounts involved and
// the Maaser account, then persists all rows and balance changes in one write.
func (s *transactionService) PostTransactions(ctx context.Context, userID string, drafts []domain.TransactionDraft) ([]domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(drafts) == 0 {
		return nil, apperrors.NewValidationError("at least one transaction is required")
	}
	for i, d := range drafts {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("transaction %d: %w", i, err)
		}
	}

	accountIDs := make([]string, 0, len(drafts))
	for _, d := range drafts {
		accountIDs = append(accountIDs, d.AccountIDs()...)
	}
	accounts, err := s.loadOwnedAccounts(ctx, userID, accountIDs, true)
	if err != nil {
		return nil, err
	}

	needsMaaser := false
	for _, d := range drafts {
		accountCtx := accounts[d.AccountID].Context()
		if ledger.NeedsMaaser(d, &accountCtx) {
			needsMaaser = true
			break
		}
	}
	maaserRef, err := s.resolveMaaser(ctx, userID, needsMaaser)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	rows := make([]domain.Transaction, 0, len(drafts))
	deltas := make(map[string]decimal.Decimal)
	for _, d := range drafts {
		accountCtx := accounts[d.AccountID].Context()
		effects := ledger.ComputeEffects(d, userID, maaserRef, &accountCtx, now)
		rows = append(rows, effects.Rows...)
		ledger.MergeDeltas(deltas, effects.Deltas)
	}

	if err := s.txnRepo.PostLedger(ctx, rows, deltas); err != nil {
		logger.Error("Failed to post transactions", slog.String("error", err.Error()), slog.Int("draft_count", len(drafts)))
		return nil, fmt.Errorf("failed to post transactions: %w", err)
	}

	logger.Info("Transactions posted", slog.Int("draft_count", len(drafts)), slog.Int("row_count", len(rows)))
	return rows, nil
}

// DeleteTransactions removes each transaction together with its dependents.
// Ids are processed one at a time; a failure stops the batch and leaves the
// earlier deletions in place.
func (s *transactionService) DeleteTransactions(ctx context.Context, userID string, transactionIDs []string) error {
	logger := middleware.GetLoggerFromCtx(ctx)

	if len(transactionIDs) == 0 {
		return apperrors.NewValidationError("at least one transaction id is required")
	}

	for _, id := range uniqueStrings(transactionIDs) {
		target, dependents, err := s.loadForChange(ctx, userID, id)
		if err != nil {
			return err
		}

		rows := append([]domain.Transaction{*target}, dependents...)
		ids := make([]string, len(rows))
		for i, row := range rows {
			ids[i] = row.TransactionID
		}

		if err := s.txnRepo.DeleteLedger(ctx, ids, ledger.ReverseDeltas(rows)); err != nil {
			logger.Error("Failed to delete transaction", slog.String("error", err.Error()), slog.String("transaction_id", id))
			return fmt.Errorf("failed to delete transaction %s: %w", id, err)
		}
		logger.Info("Transaction deleted", slog.String("transaction_id", id), slog.Int("dependent_count", len(dependents)))
	}
	return nil
}

// UpdateTransaction reverses the row and its dependents, applies the patch,
// recomputes the effects and writes the net result in one repository call.
func (s *transactionService) UpdateTransaction(ctx context.Context, userID string, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	target, dependents, err := s.loadForChange(ctx, userID, transactionID)
	if err != nil {
		return nil, err
	}
	if req.IsEmpty() {
		logger.Info("No fields to update for transaction", slog.String("transaction_id", transactionID))
		return target, nil
	}

	updated := req.Apply(*target)
	draft := updated.Draft()
	if err := draft.Validate(); err != nil {
		return nil, err
	}

	accounts, err := s.loadOwnedAccounts(ctx, userID, draft.AccountIDs(), false)
	if err != nil {
		return nil, err
	}
	for _, id := range draft.AccountIDs() {
		if acc := accounts[id]; !acc.IsActive && !touches(*target, id) {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}

	accountCtx := accounts[draft.AccountID].Context()
	maaserRef, err := s.resolveMaaser(ctx, userID, ledger.NeedsMaaser(draft, &accountCtx))
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	effects := ledger.ComputeEffects(draft, userID, maaserRef, &accountCtx, now)

	main := effects.Main()
	main.CreatedAt = target.CreatedAt
	main.CreatedBy = target.CreatedBy

	deltas := ledger.ReverseDeltas(append([]domain.Transaction{*target}, dependents...))
	ledger.MergeDeltas(deltas, effects.Deltas)

	removedIDs := make([]string, len(dependents))
	for i, dep := range dependents {
		removedIDs[i] = dep.TransactionID
	}

	if err := s.txnRepo.ReplaceLedger(ctx, main, target.LastUpdatedAt, removedIDs, effects.Dependents(), deltas); err != nil {
		logger.Error("Failed to update transaction", slog.String("error", err.Error()), slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction %s: %w", transactionID, err)
	}

	logger.Info("Transaction updated",
		slog.String("transaction_id", transactionID),
		slog.Int("removed_dependents", len(removedIDs)),
		slog.Int("new_dependents", len(effects.Dependents())))
	return &main, nil
}

// GetTransaction returns a row owned by userID and its dependents.
func (s *transactionService) GetTransaction(ctx context.Context, userID string, transactionID string) (*domain.Transaction, []domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	if txn.UserID != userID {
		return nil, nil, apperrors.NewNotFoundError("transaction " + transactionID)
	}
	dependents, err := s.txnRepo.FindDependents(ctx, transactionID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to find dependents of %s: %w", transactionID, err)
	}
	return txn, dependents, nil
}

// ListTransactions returns a page of the user's transactions.
func (s *transactionService) ListTransactions(ctx context.Context, userID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	filter := portsrepo.TransactionFilter{
		AccountID:     params.AccountID,
		CategoryID:    params.CategoryID,
		IncludeSystem: params.IncludeSystem,
	}
	if params.Month != nil && *params.Month != "" {
		month, err := domain.ParseMonthYear(*params.Month)
		if err != nil {
			return nil, err
		}
		filter.Month = &month
	}
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, userID, filter, limit, params.NextToken)
	if err != nil {
		logger.Error("Failed to list transactions", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// loadForChange fetches a user row and its dependents, refusing generated rows.
func (s *transactionService) loadForChange(ctx context.Context, userID, transactionID string) (*domain.Transaction, []domain.Transaction, error) {
	target, dependents, err := s.GetTransaction(ctx, userID, transactionID)
	if err != nil {
		return nil, nil, err
	}
	if target.IsSystemGenerated {
		return nil, nil, fmt.Errorf("transaction %s: %w", transactionID, ErrSystemRow)
	}
	return target, dependents, nil
}

// loadOwnedAccounts fetches the accounts in one call and checks each exists
// and belongs to userID. When requireActive is set inactive accounts are
// rejected.
func (s *transactionService) loadOwnedAccounts(ctx context.Context, userID string, accountIDs []string, requireActive bool) (map[string]domain.Account, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	ids := uniqueStrings(accountIDs)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		logger.Error("Failed to fetch accounts", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	for _, id := range ids {
		acc, ok := accounts[id]
		if !ok || acc.UserID != userID {
			return nil, apperrors.NewNotFoundError("account " + id)
		}
		if requireActive && !acc.IsActive {
			return nil, fmt.Errorf("%w: account %s is inactive", apperrors.ErrValidation, id)
		}
	}
	return accounts, nil
}

// resolveMaaser finds the Maaser account, creating it only when a draft needs it.
func (s *transactionService) resolveMaaser(ctx context.Context, userID string, create bool) (*domain.AccountRef, error) {
	var (
		acc *domain.Account
		err error
	)
	if create {
		acc, err = s.maaser.FindOrCreateMaaserAccount(ctx, userID)
	} else {
		acc, err = s.maaser.FindMaaserAccount(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve maaser account: %w", err)
	}
	if acc == nil {
		return nil, nil
	}
	return &domain.AccountRef{AccountID: acc.AccountID}, nil
}

func touches(txn domain.Transaction, accountID string) bool {
	if txn.AccountID == accountID {
		return true
	}
	return txn.ToAccountID != nil && *txn.ToAccountID == accountID
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}

// isNotFound reports whether err wraps apperrors.ErrNotFound.
func isNotFound(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound)
}
