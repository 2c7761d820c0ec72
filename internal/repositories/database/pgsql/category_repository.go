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

type PgxCategoryRepository struct {
	db querier
}

func newPgxCategoryRepository(db querier) *PgxCategoryRepository {
	return &PgxCategoryRepository{db: db}
}

var _ portsrepo.CategoryRepositoryFacade = (*PgxCategoryRepository)(nil)

func (r *PgxCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	query := `INSERT INTO category (id, name, type, description) VALUES ($1, $2, $3, $4);`
	if _, err := r.db.Exec(ctx, query, m.CategoryID, m.Name, m.Type, m.Description); err != nil {
		return fmt.Errorf("failed to save category %s: %w", m.CategoryID, mapPgError(err))
	}
	return nil
}

func (r *PgxCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	var m models.Category
	err := r.db.QueryRow(ctx, `SELECT id, name, type, description FROM category WHERE id = $1;`, categoryID).
		Scan(&m.CategoryID, &m.Name, &m.Type, &m.Description)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to find category by ID %s: %w", categoryID, err)
	}
	c := mapping.ToDomainCategory(m)
	return &c, nil
}

func (r *PgxCategoryRepository) ListCategories(ctx context.Context, filter portsrepo.CategoryFilter) ([]domain.Category, error) {
	query := `SELECT id, name, type, description FROM category`
	var args []any
	if filter.Direction != nil {
		query += ` WHERE type = $1`
		args = append(args, string(*filter.Direction))
	}
	query += ` ORDER BY name, type;`

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		var m models.Category
		if err := rows.Scan(&m.CategoryID, &m.Name, &m.Type, &m.Description); err != nil {
			return nil, fmt.Errorf("failed to scan category row: %w", err)
		}
		categories = append(categories, mapping.ToDomainCategory(m))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}
	return categories, nil
}

func (r *PgxCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	tag, err := r.db.Exec(ctx, `UPDATE category SET name = $2, type = $3, description = $4 WHERE id = $1;`,
		m.CategoryID, m.Name, m.Type, m.Description)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", m.CategoryID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}

func (r *PgxCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM category WHERE id = $1;`, categoryID)
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrCategoryNotFound
	}
	return nil
}
