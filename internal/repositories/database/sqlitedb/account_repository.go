package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker/internal/models"
	"github.com/SscSPs/budget_tracker/internal/utils/mapping"
)

const accountColumns = `id, name, type, bank_id, currency, balance_cents, created_at`

type SQLiteAccountRepository struct {
	db dbtx
}

var (
	_ portsrepo.AccountRepositoryFacade = (*SQLiteAccountRepository)(nil)
	_ portsrepo.AccountTxRepository     = (*SQLiteAccountRepository)(nil)
)

func scanAccount(row scanner) (domain.Account, error) {
	var (
		m       models.Account
		created string
	)
	if err := row.Scan(&m.AccountID, &m.Name, &m.AccountType, &m.BankID, &m.Currency, &m.BalanceCents, &created); err != nil {
		return domain.Account{}, err
	}
	t, err := parseTime(created)
	if err != nil {
		return domain.Account{}, err
	}
	m.CreatedAt = t
	return mapping.ToDomainAccount(m), nil
}

func (r *SQLiteAccountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	_, err := r.db.ExecContext(ctx, `INSERT INTO account (`+accountColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		m.AccountID, m.Name, m.AccountType, m.BankID, m.Currency, m.BalanceCents, formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("save account %s: %w", m.AccountID, mapSQLiteError(err))
	}
	return nil
}

func (r *SQLiteAccountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	acc, err := scanAccount(r.db.QueryRowContext(ctx, `SELECT `+accountColumns+` FROM account WHERE id = ?`, accountID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account %s: %w", accountID, err)
	}
	return &acc, nil
}

// FindAccountByIDForUpdate is a plain read: the write lock was already taken
// when the immediate transaction began.
func (r *SQLiteAccountRepository) FindAccountByIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	return r.FindAccountByID(ctx, accountID)
}

func (r *SQLiteAccountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	var (
		conds []string
		args  []any
	)
	if filter.WithoutBank {
		conds = append(conds, "bank_id IS NULL")
	}
	if filter.BankID != nil {
		conds = append(conds, "bank_id = ?")
		args = append(args, *filter.BankID)
	}
	if filter.Currency != nil {
		conds = append(conds, "currency = ?")
		args = append(args, string(*filter.Currency))
	}
	query := `SELECT ` + accountColumns + ` FROM account`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY name, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query accounts: %w", err)
	}
	defer rows.Close()

	accounts := []domain.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("scan account: %w", err)
		}
		accounts = append(accounts, acc)
	}
	return accounts, rows.Err()
}

func (r *SQLiteAccountRepository) CountAccounts(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM account`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return n, nil
}

func (r *SQLiteAccountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	m := mapping.ToModelAccount(account)
	res, err := r.db.ExecContext(ctx, `UPDATE account SET name = ?, type = ?, bank_id = ?, currency = ? WHERE id = ?`,
		m.Name, m.AccountType, m.BankID, m.Currency, m.AccountID)
	if err != nil {
		return fmt.Errorf("update account %s: %w", m.AccountID, mapSQLiteError(err))
	}
	return rowsAffected(res, apperrors.ErrAccountNotFound)
}

func (r *SQLiteAccountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM account WHERE id = ?`, accountID)
	if err != nil {
		return fmt.Errorf("delete account %s: %w", accountID, mapSQLiteError(err))
	}
	return rowsAffected(res, apperrors.ErrAccountNotFound)
}

func (r *SQLiteAccountRepository) AdjustBalance(ctx context.Context, accountID string, deltaCents int64) (int64, error) {
	var balance int64
	err := r.db.QueryRowContext(ctx,
		`UPDATE account SET balance_cents = balance_cents + ? WHERE id = ? RETURNING balance_cents`,
		deltaCents, accountID).Scan(&balance)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, apperrors.ErrAccountNotFound
		}
		return 0, fmt.Errorf("adjust balance for account %s: %w", accountID, err)
	}
	return balance, nil
}
