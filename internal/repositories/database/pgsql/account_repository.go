package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker/internal/models"
	"github.com/SscSPs/budget_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

const accountColumns = `id, name, type, bank_id, currency, balance_cents, created_at`

type PgxAccountRepository struct {
	db querier
}

// newPgxAccountRepository creates a repository bound to a pool or a transaction.
func newPgxAccountRepository(db querier) *PgxAccountRepository {
	return &PgxAccountRepository{db: db}
}

var (
	_ portsrepo.AccountRepositoryFacade = (*PgxAccountRepository)(nil)
	_ portsrepo.AccountTxRepository     = (*PgxAccountRepository)(nil)
)

func scanAccount(row pgx.Row) (domain.Account, error) {
	var m models.Account
	if err := row.Scan(&m.AccountID, &m.Name, &m.AccountType, &m.BankID, &m.Currency, &m.BalanceCents, &m.CreatedAt); err != nil {
		return domain.Account{}, err
	}
	return mapping.ToDomainAccount(m), nil
}

// SaveAccount inserts a new account, including its opening balance.
func (r *PgxAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `INSERT INTO account (` + accountColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7);`
	_, err := r.db.Exec(ctx, query, m.AccountID, m.Name, m.AccountType, m.BankID, m.Currency, m.BalanceCents, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save account %s: %w", m.AccountID, mapPgError(err))
	}
	return nil
}

// FindAccountByID retrieves an account by its ID.
func (r *PgxAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findAccount(ctx, `SELECT `+accountColumns+` FROM account WHERE id = $1;`, accountID)
}

// FindAccountByIDForUpdate retrieves an account and locks its row until the transaction ends.
func (r *PgxAccountRepository) FindAccountByIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.findAccount(ctx, `SELECT `+accountColumns+` FROM account WHERE id = $1 FOR UPDATE;`, accountID)
}

func (r *PgxAccountRepository) findAccount(ctx context.Context, query, accountID string) (*domain.Account, error) {
	acc, err := scanAccount(r.db.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to find account by ID %s: %w", accountID, err)
	}
	return &acc, nil
}

// ListAccounts retrieves accounts matching the filter ordered by name.
func (r *PgxAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	var (
		conds []string
		args  []any
	)
	if filter.WithoutBank {
		conds = append(conds, "bank_id IS NULL")
	}
	if filter.BankID != nil {
		args = append(args, *filter.BankID)
		conds = append(conds, fmt.Sprintf("bank_id = $%d", len(args)))
	}
	if filter.Currency != nil {
		args = append(args, string(*filter.Currency))
		conds = append(conds, fmt.Sprintf("currency = $%d", len(args)))
	}

	query := `SELECT ` + accountColumns + ` FROM account`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name, id;"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
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

func (r *PgxAccountRepository) CountAccounts(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM account;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return n, nil
}

// UpdateAccount updates descriptive fields. balance_cents is deliberately absent.
func (r *PgxAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	query := `UPDATE account SET name = $2, type = $3, bank_id = $4, currency = $5 WHERE id = $1;`
	tag, err := r.db.Exec(ctx, query, m.AccountID, m.Name, m.AccountType, m.BankID, m.Currency)
	if err != nil {
		return fmt.Errorf("failed to update account %s: %w", m.AccountID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

func (r *PgxAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM account WHERE id = $1;`, accountID)
	if err != nil {
		return fmt.Errorf("failed to delete account %s: %w", accountID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAccountNotFound
	}
	return nil
}

// AdjustBalance applies a signed delta and returns the resulting balance.
func (r *PgxAccountRepository) AdjustBalance(ctx context.Context, accountID string, deltaCents int64) (int64, error) {
	var balance int64
	query := `UPDATE account SET balance_cents = balance_cents + $2 WHERE id = $1 RETURNING balance_cents;`
	err := r.db.QueryRow(ctx, query, accountID, deltaCents).Scan(&balance)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, apperrors.ErrAccountNotFound
		}
		return 0, fmt.Errorf("failed to adjust balance for account %s: %w", accountID, err)
	}
	return balance, nil
}
