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

type SQLiteCategoryRepository struct {
	db dbtx
}

var _ portsrepo.CategoryRepositoryFacade = (*SQLiteCategoryRepository)(nil)

func scanCategory(row scanner) (domain.Category, error) {
	var m models.Category
	if err := row.Scan(&m.CategoryID, &m.Name, &m.Type, &m.Description); err != nil {
		return domain.Category{}, err
	}
	return mapping.ToDomainCategory(m), nil
}

func (r *SQLiteCategoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	_, err := r.db.ExecContext(ctx, `INSERT INTO category (id, name, type, description) VALUES (?, ?, ?, ?)`,
		m.CategoryID, m.Name, m.Type, m.Description)
	if err != nil {
		return fmt.Errorf("save category %s: %w", m.CategoryID, mapSQLiteError(err))
	}
	return nil
}

func (r *SQLiteCategoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	c, err := scanCategory(r.db.QueryRowContext(ctx, `SELECT id, name, type, description FROM category WHERE id = ?`, categoryID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrCategoryNotFound
		}
		return nil, fmt.Errorf("find category %s: %w", categoryID, err)
	}
	return &c, nil
}

func (r *SQLiteCategoryRepository) ListCategories(ctx context.Context, filter portsrepo.CategoryFilter) ([]domain.Category, error) {
	query := `SELECT id, name, type, description FROM category`
	var args []any
	if filter.Direction != nil {
		query += ` WHERE type = ?`
		args = append(args, string(*filter.Direction))
	}
	query += ` ORDER BY name, type`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query categories: %w", err)
	}
	defer rows.Close()

	categories := []domain.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *SQLiteCategoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	m := mapping.ToModelCategory(category)
	res, err := r.db.ExecContext(ctx, `UPDATE category SET name = ?, type = ?, description = ? WHERE id = ?`,
		m.Name, m.Type, m.Description, m.CategoryID)
	if err != nil {
		return fmt.Errorf("update category %s: %w", m.CategoryID, mapSQLiteError(err))
	}
	return rowsAffected(res, apperrors.ErrCategoryNotFound)
}

func (r *SQLiteCategoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM category WHERE id = ?`, categoryID)
	if err != nil {
		return fmt.Errorf("delete category %s: %w", categoryID, mapSQLiteError(err))
	}
	return rowsAffected(res, apperrors.ErrCategoryNotFound)
}
