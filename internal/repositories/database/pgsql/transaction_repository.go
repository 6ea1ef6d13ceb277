package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bolsas_app/internal/core/ports/repositories"
	"github.com/SscSPs/bolsas_app/internal/models"
	"github.com/SscSPs/bolsas_app/internal/utils/accounting"
	"github.com/SscSPs/bolsas_app/internal/utils/mapping"
	"github.com/SscSPs/bolsas_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const transactionColumns = `transaction_id, user_id, transaction_date, amount, description, transaction_type,
	account_id, to_account_id, category_id, subcategory_id, status, cardholder, is_maaserable, is_deductible,
	is_system_generated, related_transaction_id, created_at, created_by, last_updated_at, last_updated_by`

const insertTransactionQuery = `INSERT INTO transactions (` + transactionColumns + `)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20);`

type PgxTransactionRepository struct {
	BaseRepository
	accountRepo *PgxAccountRepository
}

// newPgxTransactionRepository creates a new repository for ledger rows.
func newPgxTransactionRepository(pool *pgxpool.Pool, accountRepo *PgxAccountRepository) *PgxTransactionRepository {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryFacade
var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(
		&m.TransactionID,
		&m.UserID,
		&m.TransactionDate,
		&m.Amount,
		&m.Description,
		&m.TransactionType,
		&m.AccountID,
		&m.ToAccountID,
		&m.CategoryID,
		&m.SubcategoryID,
		&m.Status,
		&m.Cardholder,
		&m.IsMaaserable,
		&m.IsDeductible,
		&m.IsSystemGenerated,
		&m.RelatedTransactionID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

func transactionArgs(m models.Transaction) []any {
	return []any{
		m.TransactionID,
		m.UserID,
		m.TransactionDate,
		m.Amount,
		m.Description,
		m.TransactionType,
		m.AccountID,
		m.ToAccountID,
		m.CategoryID,
		m.SubcategoryID,
		m.Status,
		m.Cardholder,
		m.IsMaaserable,
		m.IsDeductible,
		m.IsSystemGenerated,
		m.RelatedTransactionID,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// FindTransactionByID retrieves a single row.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`
	txn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("transaction " + transactionID)
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

// FindDependents returns the rows generated for transactionID, oldest first.
func (r *PgxTransactionRepository) FindDependents(ctx context.Context, transactionID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE related_transaction_id = $1 AND is_system_generated
		ORDER BY created_at, transaction_id;`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query dependents of %s: %w", transactionID, err)
	}
	return collectTransactions(rows)
}

// ListTransactions retrieves a page of the user's rows using token-based
// pagination over (transaction_date, created_at, transaction_id).
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	args := []any{userID}
	where := []string{"user_id = $1"}
	next := func(v any) string {
		args = append(args, v)
		return "$" + strconv.Itoa(len(args))
	}

	if !filter.IncludeSystem {
		where = append(where, "NOT is_system_generated")
	}
	if filter.AccountID != nil {
		p := next(*filter.AccountID)
		where = append(where, "(account_id = "+p+" OR to_account_id = "+p+")")
	}
	if filter.CategoryID != nil {
		where = append(where, "category_id = "+next(*filter.CategoryID))
	}
	if filter.Month != nil {
		where = append(where, "transaction_date >= "+next(filter.Month.Start()))
		where = append(where, "transaction_date < "+next(filter.Month.End()))
	}
	if nextToken != nil && *nextToken != "" {
		cursor, err := pagination.DecodeCursor(*nextToken)
		if err != nil {
			return nil, nil, err
		}
		where = append(where, "(transaction_date, created_at, transaction_id) < ("+
			next(cursor.Date)+", "+next(cursor.CreatedAt)+", "+next(cursor.ID)+")")
	}

	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE ` + strings.Join(where, " AND ") + `
		ORDER BY transaction_date DESC, created_at DESC, transaction_id DESC
		LIMIT ` + next(fetchLimit) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for user "+userID, err)
	}
	txns, err := collectTransactions(rows)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to read transactions for user "+userID, err)
	}

	var nextTokenVal *string
	if len(txns) > limit {
		// The token points to the last item included in this page.
		last := txns[limit-1]
		token := pagination.EncodeCursor(pagination.Cursor{Date: last.Date, CreatedAt: last.CreatedAt, ID: last.TransactionID})
		nextTokenVal = &token
		txns = txns[:limit]
	}
	return txns, nextTokenVal, nil
}

// ListExpensesForMonth returns every expense of the user dated in month.
func (r *PgxTransactionRepository) ListExpensesForMonth(ctx context.Context, userID string, month domain.MonthYear) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND transaction_type = 'EXPENSE' AND transaction_date >= $2 AND transaction_date < $3;`
	rows, err := r.Pool.Query(ctx, query, userID, month.Start(), month.End())
	if err != nil {
		return nil, fmt.Errorf("failed to query expenses for %s: %w", month, err)
	}
	return collectTransactions(rows)
}

// PostLedger inserts rows and applies deltas in one database transaction.
func (r *PgxTransactionRepository) PostLedger(ctx context.Context, rows []domain.Transaction, deltas map[string]decimal.Decimal) error {
	if len(rows) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	// Ignored once the transaction is committed.
	defer r.Rollback(ctx, tx)

	if err := r.accountRepo.lockAccountsInTx(ctx, tx, accounting.NonZeroAccountIDs(deltas)); err != nil {
		return err
	}
	if err := insertTransactionsInTx(ctx, tx, rows); err != nil {
		return err
	}

	userID, now := rows[0].CreatedBy, rows[0].CreatedAt
	if err := r.accountRepo.applyDeltasInTx(ctx, tx, deltas, userID, now); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	return r.Commit(ctx, tx)
}

// DeleteLedger removes rows and applies deltas in one database transaction.
func (r *PgxTransactionRepository) DeleteLedger(ctx context.Context, transactionIDs []string, deltas map[string]decimal.Decimal) error {
	if len(transactionIDs) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.accountRepo.lockAccountsInTx(ctx, tx, accounting.NonZeroAccountIDs(deltas)); err != nil {
		return err
	}

	userID, err := deleteTransactionsInTx(ctx, tx, transactionIDs)
	if err != nil {
		return err
	}

	if err := r.accountRepo.applyDeltasInTx(ctx, tx, deltas, userID, time.Now().UTC()); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	return r.Commit(ctx, tx)
}

// ReplaceLedger rewrites main, swaps its dependents and applies the net deltas
// in one database transaction.
func (r *PgxTransactionRepository) ReplaceLedger(ctx context.Context, main domain.Transaction, expectedUpdatedAt time.Time, removedIDs []string, dependents []domain.Transaction, deltas map[string]decimal.Decimal) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.accountRepo.lockAccountsInTx(ctx, tx, accounting.NonZeroAccountIDs(deltas)); err != nil {
		return err
	}

	if len(removedIDs) > 0 {
		if _, err := deleteTransactionsInTx(ctx, tx, removedIDs); err != nil {
			return err
		}
	}

	m := mapping.ToModelTransaction(main)
	query := `
		UPDATE transactions
		SET transaction_date = $2, amount = $3, description = $4, transaction_type = $5, account_id = $6,
			to_account_id = $7, category_id = $8, subcategory_id = $9, status = $10, cardholder = $11,
			is_maaserable = $12, is_deductible = $13, last_updated_at = $14, last_updated_by = $15
		WHERE transaction_id = $1 AND NOT is_system_generated AND last_updated_at = $16;
	`
	ct, err := tx.Exec(ctx, query,
		m.TransactionID,
		m.TransactionDate,
		m.Amount,
		m.Description,
		m.TransactionType,
		m.AccountID,
		m.ToAccountID,
		m.CategoryID,
		m.SubcategoryID,
		m.Status,
		m.Cardholder,
		m.IsMaaserable,
		m.IsDeductible,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		expectedUpdatedAt,
	)
	if err != nil {
		return translateError(err, "transaction "+m.TransactionID)
	}
	if ct.RowsAffected() == 0 {
		return replaceMissError(ctx, tx, m.TransactionID)
	}

	if err := insertTransactionsInTx(ctx, tx, dependents); err != nil {
		return err
	}

	if err := r.accountRepo.applyDeltasInTx(ctx, tx, deltas, main.LastUpdatedBy, main.LastUpdatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to update account balances", err)
	}

	return r.Commit(ctx, tx)
}

// replaceMissError tells a row that is gone apart from one edited since it
// was read.
func replaceMissError(ctx context.Context, tx pgx.Tx, transactionID string) error {
	var exists bool
	err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM transactions WHERE transaction_id = $1 AND NOT is_system_generated)`,
		transactionID,
	).Scan(&exists)
	if err != nil {
		return apperrors.NewAppError(500, "failed to check transaction", err)
	}
	if !exists {
		return apperrors.NewNotFoundError("transaction " + transactionID)
	}
	return fmt.Errorf("%w: transaction %s was modified concurrently", apperrors.ErrConflict, transactionID)
}

// insertTransactionsInTx queues every row in one batch. Parents must precede
// the rows that reference them.
func insertTransactionsInTx(ctx context.Context, tx pgx.Tx, rows []domain.Transaction) error {
	if len(rows) == 0 {
		return nil
	}
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(insertTransactionQuery, transactionArgs(mapping.ToModelTransaction(row))...)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for _, row := range rows {
		if _, err := br.Exec(); err != nil && batchErr == nil {
			batchErr = translateError(err, "transaction "+row.TransactionID)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close transaction insert batch: %w", err)
	}
	return batchErr
}

// deleteTransactionsInTx removes every id and fails unless all of them
// existed. It returns the owner of the deleted rows.
func deleteTransactionsInTx(ctx context.Context, tx pgx.Tx, transactionIDs []string) (string, error) {
	rows, err := tx.Query(ctx, `DELETE FROM transactions WHERE transaction_id = ANY($1) RETURNING transaction_id, user_id;`, transactionIDs)
	if err != nil {
		return "", translateError(err, "delete transactions")
	}
	defer rows.Close()

	var userID string
	deleted := make(map[string]struct{}, len(transactionIDs))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id, &userID); err != nil {
			return "", fmt.Errorf("failed to scan deleted transaction: %w", err)
		}
		deleted[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return "", translateError(err, "delete transactions")
	}

	for _, id := range transactionIDs {
		if _, ok := deleted[id]; !ok {
			return "", apperrors.NewNotFoundError("transaction " + id)
		}
	}
	return userID, nil
}
