package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
)

type categoryRepository struct {
	store *Store
}

var _ portsrepo.CategoryRepositoryFacade = (*categoryRepository)(nil)

func (st *state) categoryTaken(c domain.Category) bool {
	for id, existing := range st.categories {
		if id != c.CategoryID && existing.Name == c.Name && existing.Direction == c.Direction {
			return true
		}
	}
	return false
}

func (r *categoryRepository) SaveCategory(ctx context.Context, category domain.Category) error {
	return r.store.write(func(st *state) error {
		if _, ok := st.categories[category.CategoryID]; ok {
			return fmt.Errorf("%w: category with ID %s already exists", apperrors.ErrDuplicate, category.CategoryID)
		}
		if st.categoryTaken(category) {
			return fmt.Errorf("%w: %s category %q already exists", apperrors.ErrDuplicate, category.Direction, category.Name)
		}
		st.categories[category.CategoryID] = category
		return nil
	})
}

func (r *categoryRepository) FindCategoryByID(ctx context.Context, categoryID string) (*domain.Category, error) {
	var (
		c  domain.Category
		ok bool
	)
	r.store.read(func(st *state) { c, ok = st.categories[categoryID] })
	if !ok {
		return nil, apperrors.ErrCategoryNotFound
	}
	return &c, nil
}

func (r *categoryRepository) ListCategories(ctx context.Context, filter portsrepo.CategoryFilter) ([]domain.Category, error) {
	categories := []domain.Category{}
	r.store.read(func(st *state) {
		for _, c := range st.categories {
			if filter.Direction == nil || c.Direction == *filter.Direction {
				categories = append(categories, c)
			}
		}
	})
	sort.Slice(categories, func(i, j int) bool {
		if categories[i].Name != categories[j].Name {
			return categories[i].Name < categories[j].Name
		}
		return categories[i].Direction < categories[j].Direction
	})
	return categories, nil
}

func (r *categoryRepository) UpdateCategory(ctx context.Context, category domain.Category) error {
	return r.store.write(func(st *state) error {
		if _, ok := st.categories[category.CategoryID]; !ok {
			return apperrors.ErrCategoryNotFound
		}
		if st.categoryTaken(category) {
			return fmt.Errorf("%w: %s category %q already exists", apperrors.ErrDuplicate, category.Direction, category.Name)
		}
		st.categories[category.CategoryID] = category
		return nil
	})
}

// DeleteCategory removes the category and detaches its transactions.
func (r *categoryRepository) DeleteCategory(ctx context.Context, categoryID string) error {
	return r.store.write(func(st *state) error {
		if _, ok := st.categories[categoryID]; !ok {
			return apperrors.ErrCategoryNotFound
		}
		delete(st.categories, categoryID)
		for id, txn := range st.transactions {
			if txn.CategoryID != nil && *txn.CategoryID == categoryID {
				txn.CategoryID = nil
				st.transactions[id] = txn
			}
		}
		return nil
	})
}
