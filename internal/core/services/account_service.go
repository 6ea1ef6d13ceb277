package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bolsas_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bolsas_app/internal/core/ports/services"
	"github.com/SscSPs/bolsas_app/internal/dto"
	"github.com/google/uuid"
)

const fallbackCurrency = "ILS"

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo     portsrepo.AccountRepositoryFacade
	defaultCurrency string
}

// ServiceOption is a functional option for configuring the account service
type ServiceOption func(*accountService)

// WithDefaultCurrency sets the currency used when a request carries none.
func WithDefaultCurrency(code string) ServiceOption {
	return func(s *accountService) {
		if code != "" {
			s.defaultCurrency = strings.ToUpper(code)
		}
	}
}

// NewAccountService creates a new account service with the provided options
func NewAccountService(repo portsrepo.AccountRepositoryFacade, options ...ServiceOption) portssvc.AccountSvcFacade {
	svc := &accountService{
		accountRepo:     repo,
		defaultCurrency: fallbackCurrency,
	}

	for _, option := range options {
		option(svc)
	}

	return svc
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, userID string, req dto.CreateAccountRequest) (*domain.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationError("account name must not be empty")
	}
	if !req.AccountType.IsValid() {
		return nil, apperrors.NewValidationError("unknown account type %q", req.AccountType)
	}
	if req.TargetAmount != nil && !req.TargetAmount.IsPositive() {
		return nil, apperrors.NewValidationError("target amount must be positive")
	}

	currency := strings.ToUpper(req.CurrencyCode)
	if currency == "" {
		currency = s.defaultCurrency
	}

	now := time.Now().UTC()
	initial := req.InitialBalance.Round(2)
	account := domain.Account{
		AccountID:                uuid.NewString(),
		UserID:                   userID,
		Name:                     name,
		AccountType:              req.AccountType,
		CurrencyCode:             currency,
		InitialBalance:           initial,
		CurrentBalance:           initial,
		DefaultIncomeMaaserable:  req.DefaultIncomeMaaserable,
		DefaultExpenseDeductible: req.DefaultExpenseDeductible,
		TargetAmount:             req.TargetAmount,
		Deadline:                 req.Deadline,
		IsActive:                 true,
		AuditFields:              domain.NewAuditFields(userID, now),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account",
			slog.String("account_name", name),
			slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("user_id", userID))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, userID string, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !isNotFound(err) {
			s.LogError(ctx, err, "Failed to find account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	if account.UserID != userID {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return account, nil
}

func (s *accountService) GetAccountByIDs(ctx context.Context, userID string, accountIDs []string) (map[string]domain.Account, error) {
	ids := uniqueStrings(accountIDs)
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, ids)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts", slog.Int("count", len(ids)))
		return nil, fmt.Errorf("failed to find accounts: %w", err)
	}
	for _, id := range ids {
		if acc, ok := accounts[id]; !ok || acc.UserID != userID {
			return nil, apperrors.NewNotFoundError("account " + id)
		}
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, userID, limit, offset)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, userID string, accountID string, req dto.UpdateAccountRequest) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.NewValidationError("account name must not be empty")
		}
		account.Name = name
		updated = true
	}
	if req.DefaultIncomeMaaserable != nil {
		account.DefaultIncomeMaaserable = req.DefaultIncomeMaaserable
		updated = true
	}
	if req.DefaultExpenseDeductible != nil {
		account.DefaultExpenseDeductible = req.DefaultExpenseDeductible
		updated = true
	}
	if req.TargetAmount != nil {
		if !req.TargetAmount.IsPositive() {
			return nil, apperrors.NewValidationError("target amount must be positive")
		}
		account.TargetAmount = req.TargetAmount
		updated = true
	}
	if req.Deadline != nil {
		account.Deadline = req.Deadline
		updated = true
	}
	if req.IsActive != nil {
		account.IsActive = *req.IsActive
		updated = true
	}

	if !updated {
		s.LogInfo(ctx, "No fields to update for account", slog.String("account_id", accountID))
		return account, nil
	}

	account.LastUpdatedAt = time.Now().UTC()
	account.LastUpdatedBy = userID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", accountID))
	return account, nil
}

// ReconcileAccount compares the cached balance with the ledger total and
// optionally rewrites the cache.
func (s *accountService) ReconcileAccount(ctx context.Context, userID string, accountID string, repair bool) (*domain.Reconciliation, error) {
	account, err := s.GetAccountByID(ctx, userID, accountID)
	if err != nil {
		return nil, err
	}

	sum, err := s.accountRepo.SumLedgerDeltas(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum ledger rows", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to sum ledger rows: %w", err)
	}

	ledgerBalance := account.InitialBalance.Add(sum)
	rec := &domain.Reconciliation{
		AccountID:     accountID,
		CachedBalance: account.CurrentBalance,
		LedgerBalance: ledgerBalance,
		Difference:    account.CurrentBalance.Sub(ledgerBalance),
	}
	if rec.InSync() || !repair {
		if !rec.InSync() {
			s.LogInfo(ctx, "Account balance drift detected",
				slog.String("account_id", accountID),
				slog.String("difference", rec.Difference.String()))
		}
		return rec, nil
	}

	repaired, err := s.accountRepo.RecomputeAccountBalance(ctx, accountID, userID, time.Now().UTC())
	if err != nil {
		s.LogError(ctx, err, "Failed to repair account balance", slog.String("account_id", accountID))
		return nil, fmt.Errorf("failed to repair account balance: %w", err)
	}
	rec.LedgerBalance = repaired
	rec.Repaired = true

	s.LogInfo(ctx, "Account balance repaired",
		slog.String("account_id", accountID),
		slog.String("difference", rec.Difference.String()),
		slog.String("balance", repaired.String()))
	return rec, nil
}
