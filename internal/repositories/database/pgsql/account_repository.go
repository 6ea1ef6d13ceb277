package pgsql

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/bolsas_app/internal/apperrors"
	"github.com/SscSPs/bolsas_app/internal/core/domain"
	portsrepo "github.com/SscSPs/bolsas_app/internal/core/ports/repositories"
	"github.com/SscSPs/bolsas_app/internal/models"
	"github.com/SscSPs/bolsas_app/internal/utils/accounting"
	"github.com/SscSPs/bolsas_app/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

const accountColumns = `account_id, user_id, name, account_type, currency_code, initial_balance, balance,
	default_income_maaserable, default_expense_deductible, target_amount, deadline, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

// signedAmountSQL is the effect of one transactions row on account $1.
const signedAmountSQL = `CASE
		WHEN transaction_type = 'INCOME' AND account_id = $1 THEN amount
		WHEN transaction_type = 'EXPENSE' AND account_id = $1 THEN -amount
		WHEN transaction_type = 'TRANSFER' AND account_id = $1 AND to_account_id = $1 THEN 0
		WHEN transaction_type = 'TRANSFER' AND account_id = $1 THEN -amount
		WHEN transaction_type = 'TRANSFER' AND to_account_id = $1 THEN amount
		ELSE 0
	END`

type PgxAccountRepository struct {
	BaseRepository
}

// newPgxAccountRepository creates a new repository for account data.
func newPgxAccountRepository(pool *pgxpool.Pool) *PgxAccountRepository {
	return &PgxAccountRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxAccountRepository implements portsrepo.AccountRepositoryFacade
var _ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	err := row.Scan(
		&m.AccountID,
		&m.UserID,
		&m.Name,
		&m.AccountType,
		&m.CurrencyCode,
		&m.InitialBalance,
		&m.Balance,
		&m.DefaultIncomeMaaserable,
		&m.DefaultExpenseDeductible,
		&m.TargetAmount,
		&m.Deadline,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

func collectAccounts(rows pgx.Rows) ([]domain.Account, error) {
	defer rows.Close()
	var accounts []domain.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account row: %w", err)
		}
		accounts = append(accounts, acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account rows: %w", err)
	}
	return accounts, nil
}

// SaveAccount inserts a new account.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);`

	_, err := r.Pool.Exec(ctx, query, accountArgs(m)...)
	if err != nil {
		return translateError(err, "account "+m.Name)
	}
	return nil
}

// CreateAccountIfNameAbsent relies on the unique (user_id, lower(name)) index:
// the loser of a concurrent insert does nothing and reads the winner's row.
func (r *PgxAccountRepository) CreateAccountIfNameAbsent(ctx context.Context, account domain.Account) (*domain.Account, error) {
	m := mapping.ToModelAccount(account)
	query := `INSERT INTO accounts (` + accountColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)
		ON CONFLICT (user_id, lower(name)) DO NOTHING;`

	ct, err := r.Pool.Exec(ctx, query, accountArgs(m)...)
	if err != nil {
		return nil, translateError(err, "account "+m.Name)
	}
	if ct.RowsAffected() == 1 {
		return &account, nil
	}
	slog.DebugContext(ctx, "Account name already taken, returning existing account", slog.String("name", m.Name))
	return r.FindAccountByName(ctx, account.UserID, account.Name)
}

func accountArgs(m models.Account) []any {
	return []any{
		m.AccountID,
		m.UserID,
		m.Name,
		m.AccountType,
		m.CurrencyCode,
		m.InitialBalance,
		m.Balance,
		m.DefaultIncomeMaaserable,
		m.DefaultExpenseDeductible,
		m.TargetAmount,
		m.Deadline,
		m.IsActive,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	}
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1;`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account " + accountID)
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &acc, nil
}

// FindAccountsByIDs retrieves multiple accounts by their IDs.
func (r *PgxAccountRepository) FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	if len(accountIDs) == 0 {
		return map[string]domain.Account{}, nil
	}
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = ANY($1);`
	rows, err := r.Pool.Query(ctx, query, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts by IDs: %w", err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	accountsMap := make(map[string]domain.Account, len(accounts))
	for _, acc := range accounts {
		accountsMap[acc.AccountID] = acc
	}
	return accountsMap, nil
}

// FindAccountByName looks the account up by name, ignoring case.
func (r *PgxAccountRepository) FindAccountByName(ctx context.Context, userID string, name string) (*domain.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM accounts WHERE user_id = $1 AND lower(name) = lower($2);`
	acc, err := scanAccount(r.Pool.QueryRow(ctx, query, userID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("account named " + name)
		}
		return nil, fmt.Errorf("failed to find account by name %q: %w", name, err)
	}
	return &acc, nil
}

// ListAccounts retrieves a paginated list of the user's accounts.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, userID string, limit int, offset int) ([]domain.Account, error) {
	query := `SELECT ` + accountColumns + `
		FROM accounts
		WHERE user_id = $1
		ORDER BY lower(name), account_id
		LIMIT $2 OFFSET $3;`
	rows, err := r.Pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for user %s: %w", userID, err)
	}
	accounts, err := collectAccounts(rows)
	if err != nil {
		return nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, nil
}

// UpdateAccount updates an existing account in the database. Balances and
// creation fields are left alone.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `
		UPDATE accounts
		SET name = $2, account_type = $3, default_income_maaserable = $4, default_expense_deductible = $5,
			target_amount = $6, deadline = $7, is_active = $8, last_updated_at = $9, last_updated_by = $10
		WHERE account_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.AccountID,
		m.Name,
		m.AccountType,
		m.DefaultIncomeMaaserable,
		m.DefaultExpenseDeductible,
		m.TargetAmount,
		m.Deadline,
		m.IsActive,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return translateError(err, "account "+m.AccountID)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("account " + m.AccountID)
	}
	return nil
}

// SumLedgerDeltas returns the signed total of every row touching the account.
func (r *PgxAccountRepository) SumLedgerDeltas(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(` + signedAmountSQL + `), 0)
		FROM transactions
		WHERE account_id = $1 OR to_account_id = $1;`
	var sum decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum ledger for account %s: %w", accountID, err)
	}
	return sum, nil
}

// RecomputeAccountBalance rewrites the cached balance from the ledger. The
// sum and the write happen in one statement so no posting can slip between.
func (r *PgxAccountRepository) RecomputeAccountBalance(ctx context.Context, accountID string, userID string, now time.Time) (decimal.Decimal, error) {
	query := `
		UPDATE accounts
		SET balance = initial_balance + COALESCE((
				SELECT SUM(` + signedAmountSQL + `)
				FROM transactions
				WHERE account_id = $1 OR to_account_id = $1
			), 0),
			last_updated_at = $2, last_updated_by = $3
		WHERE account_id = $1
		RETURNING balance;
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID, now, userID).Scan(&balance); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, apperrors.NewNotFoundError("account " + accountID)
		}
		return decimal.Zero, fmt.Errorf("failed to recompute balance for account %s: %w", accountID, err)
	}
	return balance, nil
}

// lockAccountsInTx locks the accounts whose balances a ledger write is about
// to change. Ids are locked in sorted order so concurrent writers cannot
// deadlock on each other.
func (r *PgxAccountRepository) lockAccountsInTx(ctx context.Context, tx pgx.Tx, accountIDs []string) error {
	if len(accountIDs) == 0 {
		return nil
	}
	ids := append([]string(nil), accountIDs...)
	sort.Strings(ids)

	query := `SELECT account_id FROM accounts WHERE account_id = ANY($1) ORDER BY account_id FOR UPDATE;`
	rows, err := tx.Query(ctx, query, ids)
	if err != nil {
		return fmt.Errorf("failed to lock accounts: %w", err)
	}
	defer rows.Close()

	locked := make(map[string]struct{}, len(ids))
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("failed to scan locked account row: %w", err)
		}
		locked[id] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating locked account rows: %w", err)
	}

	if len(locked) != len(ids) {
		missing := []string{}
		for _, id := range ids {
			if _, ok := locked[id]; !ok {
				missing = append(missing, id)
			}
		}
		slog.WarnContext(ctx, "Some accounts requested for update lock were not found", "missing_accounts", missing)
		return fmt.Errorf("%w: could not find or lock all requested accounts, missing: %v", apperrors.ErrNotFound, missing)
	}
	return nil
}

// applyDeltasInTx adds each non-zero delta to the cached balance.
func (r *PgxAccountRepository) applyDeltasInTx(ctx context.Context, tx pgx.Tx, deltas map[string]decimal.Decimal, userID string, now time.Time) error {
	query := `
		UPDATE accounts
		SET balance = COALESCE(balance, 0) + $2, last_updated_at = $3, last_updated_by = $4
		WHERE account_id = $1;
	`

	accountIDs := accounting.NonZeroAccountIDs(deltas)
	if len(accountIDs) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, accountID := range accountIDs {
		batch.Queue(query, accountID, deltas[accountID], now, userID)
	}

	br := tx.SendBatch(ctx, batch)
	var batchErr error
	for _, accountID := range accountIDs {
		ct, err := br.Exec()
		if err != nil {
			if batchErr == nil {
				batchErr = fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
			}
		} else if ct.RowsAffected() == 0 && batchErr == nil {
			batchErr = fmt.Errorf("%w: account %s not found during balance update", apperrors.ErrNotFound, accountID)
		}
	}
	if err := br.Close(); err != nil && batchErr == nil {
		batchErr = fmt.Errorf("failed to close balance update batch: %w", err)
	}
	return batchErr
}
