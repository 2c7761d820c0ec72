package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker/internal/models"
	"github.com/SscSPs/budget_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
)

type PgxBankRepository struct {
	db querier
}

func newPgxBankRepository(db querier) *PgxBankRepository {
	return &PgxBankRepository{db: db}
}

var _ portsrepo.BankRepositoryFacade = (*PgxBankRepository)(nil)

func (r *PgxBankRepository) SaveBank(ctx context.Context, bank domain.Bank) error {
	m := mapping.ToModelBank(bank)
	query := `INSERT INTO bank (id, name, description, created_at) VALUES ($1, $2, $3, $4);`
	if _, err := r.db.Exec(ctx, query, m.BankID, m.Name, m.Description, m.CreatedAt); err != nil {
		return fmt.Errorf("failed to save bank %s: %w", m.BankID, mapPgError(err))
	}
	return nil
}

func (r *PgxBankRepository) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	query := `SELECT id, name, description, created_at FROM bank WHERE id = $1;`
	var m models.Bank
	err := r.db.QueryRow(ctx, query, bankID).Scan(&m.BankID, &m.Name, &m.Description, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrBankNotFound
		}
		return nil, fmt.Errorf("failed to find bank by ID %s: %w", bankID, err)
	}
	b := mapping.ToDomainBank(m)
	return &b, nil
}

func (r *PgxBankRepository) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, description, created_at FROM bank ORDER BY name;`)
	if err != nil {
		return nil, fmt.Errorf("failed to query banks: %w", err)
	}
	defer rows.Close()

	banks := []domain.Bank{}
	for rows.Next() {
		var m models.Bank
		if err := rows.Scan(&m.BankID, &m.Name, &m.Description, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan bank row: %w", err)
		}
		banks = append(banks, mapping.ToDomainBank(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bank rows: %w", err)
	}
	return banks, nil
}

func (r *PgxBankRepository) UpdateBank(ctx context.Context, bank domain.Bank) error {
	m := mapping.ToModelBank(bank)
	tag, err := r.db.Exec(ctx, `UPDATE bank SET name = $2, description = $3 WHERE id = $1;`, m.BankID, m.Name, m.Description)
	if err != nil {
		return fmt.Errorf("failed to update bank %s: %w", m.BankID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBankNotFound
	}
	return nil
}

func (r *PgxBankRepository) DeleteBank(ctx context.Context, bankID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bank WHERE id = $1;`, bankID)
	if err != nil {
		return fmt.Errorf("failed to delete bank %s: %w", bankID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrBankNotFound
	}
	return nil
}
