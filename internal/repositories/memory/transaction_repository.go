package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bolsas_app/internal/core/ports/repositories"
	"github.com/SscSPs/bolsas_app/internal/utils/pagination"
	"github.com/shopspring/decimal"
)

// FindTransactionByID retrieves a single row.
func (s *Store) FindTransactionByID(_ context.Context, transactionID string) (*domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.txns[transactionID]
	if !ok {
		return nil, apperrors.NewNotFoundError("transaction " + transactionID)
	}
	return &txn, nil
}

// FindDependents returns the rows generated for transactionID, oldest first.
func (s *Store) FindDependents(_ context.Context, transactionID string) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deps := []domain.Transaction{}
	for _, txn := range s.txns {
		if txn.IsSystemGenerated && txn.RelatedTransactionID != nil && *txn.RelatedTransactionID == transactionID {
			deps = append(deps, txn)
		}
	}
	sort.Slice(deps, func(i, j int) bool {
		if !deps[i].CreatedAt.Equal(deps[j].CreatedAt) {
			return deps[i].CreatedAt.Before(deps[j].CreatedAt)
		}
		return deps[i].TransactionID < deps[j].TransactionID
	})
	return deps, nil
}

// ListTransactions returns a page ordered newest first.
func (s *Store) ListTransactions(_ context.Context, userID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	var cursor *pagination.Cursor
	if nextToken != nil && *nextToken != "" {
		c, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		cursor = &c
	}

	s.mu.Lock()
	var rows []domain.Transaction
	for _, txn := range s.txns {
		if txn.UserID == userID && matches(txn, filter) {
			rows = append(rows, txn)
		}
	}
	s.mu.Unlock()

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		return pagination.Cursor{Date: a.Date, CreatedAt: a.CreatedAt, ID: a.TransactionID}.After(b.Date, b.CreatedAt, b.TransactionID)
	})

	page := make([]domain.Transaction, 0, limit)
	var token *string
	for _, txn := range rows {
		if cursor != nil && !cursor.After(txn.Date, txn.CreatedAt, txn.TransactionID) {
			continue
		}
		if len(page) == limit {
			last := page[len(page)-1]
			t := pagination.EncodeCursor(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.TransactionID})
			token = &t
			break
		}
		page = append(page, txn)
	}
	return page, token, nil
}

// ListExpensesForMonth returns every expense of the user dated in month.
func (s *Store) ListExpensesForMonth(_ context.Context, userID string, month domain.MonthYear) ([]domain.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := []domain.Transaction{}
	for _, txn := range s.txns {
		if txn.UserID == userID && txn.Type == domain.Expense && month.Contains(txn.Date) {
			out = append(out, txn)
		}
	}
	return out, nil
}

// PostLedger inserts rows and applies deltas. Nothing is written unless every
// row is new and every account exists.
func (s *Store) PostLedger(_ context.Context, rows []domain.Transaction, deltas map[string]decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if _, exists := s.txns[row.TransactionID]; exists {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, row.TransactionID)
		}
		if _, dup := seen[row.TransactionID]; dup {
			return fmt.Errorf("%w: transaction ID %s repeated in batch", apperrors.ErrDuplicate, row.TransactionID)
		}
		seen[row.TransactionID] = struct{}{}
	}
	if err := s.checkAccountsLocked(deltas); err != nil {
		return err
	}

	for _, row := range rows {
		s.txns[row.TransactionID] = row
	}
	s.applyDeltasLocked(deltas)
	return nil
}

// DeleteLedger removes rows and applies deltas as one unit.
func (s *Store) DeleteLedger(_ context.Context, transactionIDs []string, deltas map[string]decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range transactionIDs {
		if _, ok := s.txns[id]; !ok {
			return apperrors.NewNotFoundError("transaction " + id)
		}
	}
	if err := s.checkAccountsLocked(deltas); err != nil {
		return err
	}

	for _, id := range transactionIDs {
		delete(s.txns, id)
	}
	s.applyDeltasLocked(deltas)
	return nil
}

// ReplaceLedger rewrites main, swaps its dependents and applies the net deltas.
func (s *Store) ReplaceLedger(_ context.Context, main domain.Transaction, expectedUpdatedAt time.Time, removedIDs []string, dependents []domain.Transaction, deltas map[string]decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.txns[main.TransactionID]
	if !ok || current.IsSystemGenerated {
		return apperrors.NewNotFoundError("transaction " + main.TransactionID)
	}
	if !current.LastUpdatedAt.Equal(expectedUpdatedAt) {
		return fmt.Errorf("%w: transaction %s was modified concurrently", apperrors.ErrConflict, main.TransactionID)
	}
	removed := make(map[string]struct{}, len(removedIDs))
	for _, id := range removedIDs {
		if _, ok := s.txns[id]; !ok {
			return apperrors.NewNotFoundError("transaction " + id)
		}
		removed[id] = struct{}{}
	}
	for _, dep := range dependents {
		_, exists := s.txns[dep.TransactionID]
		_, freed := removed[dep.TransactionID]
		if (exists && !freed) || dep.TransactionID == main.TransactionID {
			return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, dep.TransactionID)
		}
	}
	if err := s.checkAccountsLocked(deltas); err != nil {
		return err
	}

	for id := range removed {
		delete(s.txns, id)
	}
	s.txns[main.TransactionID] = main
	for _, dep := range dependents {
		s.txns[dep.TransactionID] = dep
	}
	s.applyDeltasLocked(deltas)
	return nil
}

func matches(txn domain.Transaction, f portsrepo.TransactionFilter) bool {
	if txn.IsSystemGenerated && !f.IncludeSystem {
		return false
	}
	if f.AccountID != nil {
		onTo := txn.ToAccountID != nil && *txn.ToAccountID == *f.AccountID
		if txn.AccountID != *f.AccountID && !onTo {
			return false
		}
	}
	if f.CategoryID != nil && (txn.CategoryID == nil || *txn.CategoryID != *f.CategoryID) {
		return false
	}
	if f.Month != nil && !f.Month.Contains(txn.Date) {
		return false
	}
	return true
}

func (s *Store) checkAccountsLocked(deltas map[string]decimal.Decimal) error {
	for id := range deltas {
		if _, ok := s.accounts[id]; !ok {
			return apperrors.NewNotFoundError("account " + id)
		}
	}
	return nil
}

func (s *Store) applyDeltasLocked(deltas map[string]decimal.Decimal) {
	for id, delta := range deltas {
		if delta.IsZero() {
			continue
		}
		acc := s.accounts[id]
		acc.CurrentBalance = acc.CurrentBalance.Add(delta)
		s.accounts[id] = acc
	}
}
