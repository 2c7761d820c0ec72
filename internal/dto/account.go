package dto

import (
	"time"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
	"github.com/SscSPs/budget_tracker/internal/utils"
)

// CreateAccountRequest defines the data needed to create a new account.
// InitialBalanceCents is the only way to set a balance directly.
type CreateAccountRequest struct {
	Name                string             `json:"name" binding:"required,max=100"`
	AccountType         domain.AccountType `json:"accountType" binding:"required,oneof=CASH CURRENT CREDIT_CARD SAVINGS CREDIT DEBIT INVESTMENTS"`
	BankID              *string            `json:"bankID"`
	Currency            domain.Currency    `json:"currency" binding:"required,oneof=EUR USD"`
	InitialBalanceCents Cents              `json:"initialBalanceCents"`
}

// UpdateAccountRequest replaces every mutable field except the balance.
type UpdateAccountRequest struct {
	Name        string             `json:"name" binding:"required,max=100"`
	AccountType domain.AccountType `json:"accountType" binding:"required,oneof=CASH CURRENT CREDIT_CARD SAVINGS CREDIT DEBIT INVESTMENTS"`
	BankID      *string            `json:"bankID"`
	Currency    domain.Currency    `json:"currency" binding:"required,oneof=EUR USD"`
}

// ListAccountsParams defines query parameters for listing accounts.
type ListAccountsParams struct {
	BankID      *string          `form:"bankID"`
	WithoutBank bool             `form:"withoutBank"`
	Currency    *domain.Currency `form:"currency" binding:"omitempty,oneof=EUR USD"`
}

// AccountResponse defines the data returned for an account.
type AccountResponse struct {
	AccountID        string             `json:"accountID"`
	Name             string             `json:"name"`
	AccountType      domain.AccountType `json:"accountType"`
	BankID           *string            `json:"bankID,omitempty"`
	Currency         domain.Currency    `json:"currency"`
	BalanceCents     int64              `json:"balanceCents"`
	BalanceFormatted string             `json:"balanceFormatted"`
	CreatedAt        time.Time          `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID:        acc.AccountID,
		Name:             acc.Name,
		AccountType:      acc.AccountType,
		BankID:           acc.BankID,
		Currency:         acc.Currency,
		BalanceCents:     acc.BalanceCents,
		BalanceFormatted: utils.FormatCents(acc.BalanceCents, acc.Currency),
		CreatedAt:        acc.CreatedAt,
	}
}

// ToListAccountResponse converts a slice of domain.Account to a slice of AccountResponse DTOs
func ToListAccountResponse(accounts []domain.Account) []AccountResponse {
	res := make([]AccountResponse, len(accounts))
	for i := range accounts {
		res[i] = ToAccountResponse(&accounts[i])
	}
	return res
}
