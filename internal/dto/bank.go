package dto

import (
	"time"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
)

// CreateBankRequest defines the data needed to create a bank.
type CreateBankRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
}

// UpdateBankRequest replaces the mutable fields of a bank.
type UpdateBankRequest struct {
	Name        string  `json:"name" binding:"required,max=100"`
	Description *string `json:"description"`
}

// BankResponse defines the data returned for a bank.
type BankResponse struct {
	BankID      string    `json:"bankID"`
	Name        string    `json:"name"`
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToBankResponse converts a domain.Bank to BankResponse DTO
func ToBankResponse(b *domain.Bank) BankResponse {
	return BankResponse{
		BankID:      b.BankID,
		Name:        b.Name,
		Description: b.Description,
		CreatedAt:   b.CreatedAt,
	}
}

// ToListBankResponse converts a slice of domain.Bank
func ToListBankResponse(banks []domain.Bank) []BankResponse {
	res := make([]BankResponse, len(banks))
	for i := range banks {
		res[i] = ToBankResponse(&banks[i])
	}
	return res
}
