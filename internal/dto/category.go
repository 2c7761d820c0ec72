package dto

import "github.com/SscSPs/budget_tracker/internal/core/domain"

// CreateCategoryRequest defines the data needed to create a category.
type CreateCategoryRequest struct {
	Name        string                   `json:"name" binding:"required,max=100"`
	Direction   domain.CategoryDirection `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Description *string                  `json:"description"`
}

// UpdateCategoryRequest replaces the mutable fields of a category.
type UpdateCategoryRequest struct {
	Name        string                   `json:"name" binding:"required,max=100"`
	Direction   domain.CategoryDirection `json:"type" binding:"required,oneof=INCOME EXPENSE"`
	Description *string                  `json:"description"`
}

// ListCategoriesParams filters categories by direction.
type ListCategoriesParams struct {
	Direction *domain.CategoryDirection `form:"type" binding:"omitempty,oneof=INCOME EXPENSE"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID  string                   `json:"categoryID"`
	Name        string                   `json:"name"`
	Direction   domain.CategoryDirection `json:"type"`
	Description *string                  `json:"description,omitempty"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID:  c.CategoryID,
		Name:        c.Name,
		Direction:   c.Direction,
		Description: c.Description,
	}
}

// ToListCategoryResponse converts a slice of domain.Category
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
