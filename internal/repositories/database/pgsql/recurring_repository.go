package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bolsas_app/internal/core/ports/repositories"
	"github.com/SscSPs/bolsas_app/internal/models"
	"github.com/SscSPs/bolsas_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const recurringColumns = `recurring_id, user_id, description, amount, transaction_type, category_id, account_id,
	to_account_id, day_of_month, is_active, is_maaserable, is_deductible, last_generated_month,
	created_at, created_by, last_updated_at, last_updated_by`

type PgxRecurringRepository struct {
	BaseRepository
}

func newPgxRecurringRepository(pool *pgxpool.Pool) *PgxRecurringRepository {
	return &PgxRecurringRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.RecurringRepositoryFacade = (*PgxRecurringRepository)(nil)

func scanRecurring(row pgx.Row) (domain.RecurringTransaction, error) {
	var m models.RecurringTransaction
	err := row.Scan(
		&m.RecurringID,
		&m.UserID,
		&m.Description,
		&m.Amount,
		&m.TransactionType,
		&m.CategoryID,
		&m.AccountID,
		&m.ToAccountID,
		&m.DayOfMonth,
		&m.IsActive,
		&m.IsMaaserable,
		&m.IsDeductible,
		&m.LastGeneratedMonth,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.RecurringTransaction{}, err
	}
	return mapping.ToDomainRecurring(m), nil
}

func (r *PgxRecurringRepository) SaveRecurring(ctx context.Context, recurring domain.RecurringTransaction) error {
	m := mapping.ToModelRecurring(recurring)
	query := `INSERT INTO recurring_transactions (` + recurringColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);`
	_, err := r.Pool.Exec(ctx, query,
		m.RecurringID,
		m.UserID,
		m.Description,
		m.Amount,
		m.TransactionType,
		m.CategoryID,
		m.AccountID,
		m.ToAccountID,
		m.DayOfMonth,
		m.IsActive,
		m.IsMaaserable,
		m.IsDeductible,
		m.LastGeneratedMonth,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "recurring transaction "+m.RecurringID)
	}
	return nil
}

func (r *PgxRecurringRepository) FindRecurringByID(ctx context.Context, recurringID string) (*domain.RecurringTransaction, error) {
	query := `SELECT ` + recurringColumns + ` FROM recurring_transactions WHERE recurring_id = $1;`
	rec, err := scanRecurring(r.Pool.QueryRow(ctx, query, recurringID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("recurring transaction " + recurringID)
		}
		return nil, fmt.Errorf("failed to find recurring transaction %s: %w", recurringID, err)
	}
	return &rec, nil
}

func (r *PgxRecurringRepository) ListRecurring(ctx context.Context, userID string, activeOnly bool) ([]domain.RecurringTransaction, error) {
	query := `SELECT ` + recurringColumns + `
		FROM recurring_transactions
		WHERE user_id = $1 AND (is_active OR NOT $2)
		ORDER BY day_of_month, description, recurring_id;`
	rows, err := r.Pool.Query(ctx, query, userID, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring transactions for user %s: %w", userID, err)
	}
	defer rows.Close()

	out := []domain.RecurringTransaction{}
	for rows.Next() {
		rec, err := scanRecurring(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring row: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring rows: %w", err)
	}
	return out, nil
}

func (r *PgxRecurringRepository) ListUsersWithActiveRecurring(ctx context.Context) ([]string, error) {
	rows, err := r.Pool.Query(ctx, `SELECT DISTINCT user_id FROM recurring_transactions WHERE is_active ORDER BY user_id;`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users with recurring transactions: %w", err)
	}
	userIDs, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to collect user ids: %w", err)
	}
	return userIDs, nil
}

func (r *PgxRecurringRepository) DeleteRecurring(ctx context.Context, recurringID string) error {
	ct, err := r.Pool.Exec(ctx, `DELETE FROM recurring_transactions WHERE recurring_id = $1;`, recurringID)
	if err != nil {
		return fmt.Errorf("failed to delete recurring transaction %s: %w", recurringID, err)
	}
	if ct.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("recurring transaction " + recurringID)
	}
	return nil
}

// MarkRecurringGenerated stamps every template in one statement and fails
// without writing when any id is unknown.
func (r *PgxRecurringRepository) MarkRecurringGenerated(ctx context.Context, recurringIDs []string, monthYear string, now time.Time) error {
	if len(recurringIDs) == 0 {
		return nil
	}
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	ct, err := tx.Exec(ctx, `
		UPDATE recurring_transactions
		SET last_generated_month = $2, last_updated_at = $3
		WHERE recurring_id = ANY($1);`, recurringIDs, monthYear, now)
	if err != nil {
		return fmt.Errorf("failed to mark recurring transactions for %s: %w", monthYear, err)
	}
	if int(ct.RowsAffected()) != len(uniqueIDs(recurringIDs)) {
		return fmt.Errorf("%w: some recurring transactions no longer exist", apperrors.ErrNotFound)
	}
	return r.Commit(ctx, tx)
}

func uniqueIDs(ids []string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}
