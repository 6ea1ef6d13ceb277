package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	"github.com/SscSPs/bolsas_app/internal/utils/accounting"
	"github.com/shopspring/decimal"
)

// FindAccountByID retrieves an account by its ID.
func (s *Store) FindAccountByID(_ context.Context, accountID string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return nil, apperrors.NewNotFoundError("account " + accountID)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves the accounts that exist among accountIDs.
func (s *Store) FindAccountsByIDs(_ context.Context, accountIDs []string) (map[string]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]domain.Account, len(accountIDs))
	for _, id := range accountIDs {
		if acc, ok := s.accounts[id]; ok {
			out[id] = acc
		}
	}
	return out, nil
}

// FindAccountByName looks an account up by name, ignoring case.
func (s *Store) FindAccountByName(_ context.Context, userID string, name string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if acc, ok := s.accountByNameLocked(userID, name); ok {
		return &acc, nil
	}
	return nil, apperrors.NewNotFoundError("account named " + name)
}

// ListAccounts returns a page of the user's accounts ordered by name.
func (s *Store) ListAccounts(_ context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var accounts []domain.Account
	for _, acc := range s.accounts {
		if acc.UserID == userID {
			accounts = append(accounts, acc)
		}
	}
	sort.Slice(accounts, func(i, j int) bool {
		a, b := strings.ToLower(accounts[i].Name), strings.ToLower(accounts[j].Name)
		if a != b {
			return a < b
		}
		return accounts[i].AccountID < accounts[j].AccountID
	})

	if offset >= len(accounts) {
		return []domain.Account{}, nil
	}
	end := len(accounts)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return accounts[offset:end], nil
}

// SaveAccount inserts a new account.
func (s *Store) SaveAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.accounts[account.AccountID]; exists {
		return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
	}
	s.accounts[account.AccountID] = account
	return nil
}

// CreateAccountIfNameAbsent inserts account unless the name is already taken
// by the same user, and returns the account holding the name.
func (s *Store) CreateAccountIfNameAbsent(_ context.Context, account domain.Account) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.accountByNameLocked(account.UserID, account.Name); ok {
		return &existing, nil
	}
	s.accounts[account.AccountID] = account
	return &account, nil
}

// UpdateAccount rewrites the descriptive fields. The balance stays as stored.
func (s *Store) UpdateAccount(_ context.Context, account domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, ok := s.accounts[account.AccountID]
	if !ok {
		return apperrors.NewNotFoundError("account " + account.AccountID)
	}
	account.CurrentBalance = stored.CurrentBalance
	account.InitialBalance = stored.InitialBalance
	account.CreatedAt = stored.CreatedAt
	account.CreatedBy = stored.CreatedBy
	s.accounts[account.AccountID] = account
	return nil
}

// SumLedgerDeltas returns the signed total of every row touching the account.
func (s *Store) SumLedgerDeltas(_ context.Context, accountID string) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.sumLedgerLocked(accountID), nil
}

// RecomputeAccountBalance sets the cached balance to the initial balance plus
// the ledger total.
func (s *Store) RecomputeAccountBalance(_ context.Context, accountID string, userID string, now time.Time) (decimal.Decimal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[accountID]
	if !ok {
		return decimal.Zero, apperrors.NewNotFoundError("account " + accountID)
	}
	acc.CurrentBalance = acc.InitialBalance.Add(s.sumLedgerLocked(accountID))
	acc.LastUpdatedAt = now
	acc.LastUpdatedBy = userID
	s.accounts[accountID] = acc
	return acc.CurrentBalance, nil
}

func (s *Store) accountByNameLocked(userID, name string) (domain.Account, bool) {
	for _, acc := range s.accounts {
		if acc.UserID == userID && strings.EqualFold(acc.Name, name) {
			return acc, true
		}
	}
	return domain.Account{}, false
}

func (s *Store) sumLedgerLocked(accountID string) decimal.Decimal {
	sum := decimal.Zero
	for _, txn := range s.txns {
		sum = sum.Add(accounting.CalculateSignedAmount(txn, accountID))
	}
	return sum
}
