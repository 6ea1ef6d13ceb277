package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/bolsas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bolsas_app/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/bolsas_app/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultMaaserAccountName is the name looked up when none is configured.
const DefaultMaaserAccountName = "Maaser"

// maaserResolver finds the per-user tithe account by name.
type maaserResolver struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
	name        string
	currency    string
}

// NewMaaserResolver creates a resolver for the account called name. Accounts
// it creates use currency.
func NewMaaserResolver(repo portsrepo.AccountRepositoryFacade, name, currency string) portssvc.MaaserResolver {
	if strings.TrimSpace(name) == "" {
		name = DefaultMaaserAccountName
	}
	if currency == "" {
		currency = fallbackCurrency
	}
	return &maaserResolver{accountRepo: repo, name: strings.TrimSpace(name), currency: strings.ToUpper(currency)}
}

func (r *maaserResolver) FindMaaserAccount(ctx context.Context, userID string) (*domain.Account, error) {
	acc, err := r.accountRepo.FindAccountByName(ctx, userID, r.name)
	if err != nil {
		if isNotFound(err) {
			return nil, nil
		}
		r.LogError(ctx, err, "Failed to look up maaser account", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to look up maaser account: %w", err)
	}
	return acc, nil
}

func (r *maaserResolver) FindOrCreateMaaserAccount(ctx context.Context, userID string) (*domain.Account, error) {
	acc, err := r.FindMaaserAccount(ctx, userID)
	if err != nil || acc != nil {
		return acc, err
	}

	now := time.Now().UTC()
	candidate := domain.Account{
		AccountID:      uuid.NewString(),
		UserID:         userID,
		Name:           r.name,
		AccountType:    domain.SavingsGoal,
		CurrencyCode:   r.currency,
		InitialBalance: decimal.Zero,
		CurrentBalance: decimal.Zero,
		IsActive:       true,
		AuditFields:    domain.NewAuditFields(userID, now),
	}
	acc, err = r.accountRepo.CreateAccountIfNameAbsent(ctx, candidate)
	if err != nil {
		r.LogError(ctx, err, "Failed to create maaser account", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to create maaser account: %w", err)
	}

	if acc.AccountID == candidate.AccountID {
		r.LogInfo(ctx, "Maaser account created",
			slog.String("user_id", userID),
			slog.String("account_id", acc.AccountID))
	}
	return acc, nil
}
