package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker/internal/models"
	"github.com/SscSPs/budget_tracker/internal/utils/mapping"
)

type SQLiteBankRepository struct {
	db dbtx
}

var _ portsrepo.BankRepositoryFacade = (*SQLiteBankRepository)(nil)

func scanBank(row scanner) (domain.Bank, error) {
	var (
		m       models.Bank
		created string
	)
	if err := row.Scan(&m.BankID, &m.Name, &m.Description, &created); err != nil {
		return domain.Bank{}, err
	}
	t, err := parseTime(created)
	if err != nil {
		return domain.Bank{}, err
	}
	m.CreatedAt = t
	return mapping.ToDomainBank(m), nil
}

func (r *SQLiteBankRepository) SaveBank(ctx context.Context, bank domain.Bank) error {
	m := mapping.ToModelBank(bank)
	_, err := r.db.ExecContext(ctx, `INSERT INTO bank (id, name, description, created_at) VALUES (?, ?, ?, ?)`,
		m.BankID, m.Name, m.Description, formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("save bank %s: %w", m.BankID, mapSQLiteError(err))
	}
	return nil
}

func (r *SQLiteBankRepository) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	b, err := scanBank(r.db.QueryRowContext(ctx, `SELECT id, name, description, created_at FROM bank WHERE id = ?`, bankID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrBankNotFound
		}
		return nil, fmt.Errorf("find bank %s: %w", bankID, err)
	}
	return &b, nil
}

func (r *SQLiteBankRepository) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, description, created_at FROM bank ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("query banks: %w", err)
	}
	defer rows.Close()

	banks := []domain.Bank{}
	for rows.Next() {
		b, err := scanBank(rows)
		if err != nil {
			return nil, fmt.Errorf("scan bank: %w", err)
		}
		banks = append(banks, b)
	}
	return banks, rows.Err()
}

func (r *SQLiteBankRepository) UpdateBank(ctx context.Context, bank domain.Bank) error {
	res, err := r.db.ExecContext(ctx, `UPDATE bank SET name = ?, description = ? WHERE id = ?`,
		bank.Name, bank.Description, bank.BankID)
	if err != nil {
		return fmt.Errorf("update bank %s: %w", bank.BankID, mapSQLiteError(err))
	}
	return rowsAffected(res, apperrors.ErrBankNotFound)
}

func (r *SQLiteBankRepository) DeleteBank(ctx context.Context, bankID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM bank WHERE id = ?`, bankID)
	if err != nil {
		return fmt.Errorf("delete bank %s: %w", bankID, mapSQLiteError(err))
	}
	return rowsAffected(res, apperrors.ErrBankNotFound)
}
