package dto

import (
	"time"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
	"github.com/SscSPs/budget_tracker/internal/utils"
	"github.com/shopspring/decimal"
)

// MonthlySummaryParams selects the month and optional filters for a summary.
type MonthlySummaryParams struct {
	Year       int     `form:"year" binding:"required,min=1970,max=9999"`
	Month      int     `form:"month" binding:"required,min=1,max=12"`
	AccountID  *string `form:"accountID"`
	CategoryID *string `form:"categoryID"`
}

// CategoryTotalResponse is one row of the per-category breakdown.
type CategoryTotalResponse struct {
	CategoryID   *string `json:"categoryID,omitempty"`
	TotalCents   int64   `json:"totalCents"`
	Transactions int     `json:"transactions"`
}

// MonthlySummaryResponse represents the monthly summary report response
type MonthlySummaryResponse struct {
	Year               int                     `json:"year"`
	Month              int                     `json:"month"`
	TotalIncomeCents   int64                   `json:"totalIncomeCents"`
	TotalExpensesCents int64                   `json:"totalExpensesCents"`
	NetSavingsCents    int64                   `json:"netSavingsCents"`
	NetSavings         decimal.Decimal         `json:"netSavings"`
	ByCategory         []CategoryTotalResponse `json:"byCategory"`
}

// CapitalResponse represents capital as of a date.
type CapitalResponse struct {
	AsOf         time.Time       `json:"asOf"`
	CapitalCents int64           `json:"capitalCents"`
	Capital      decimal.Decimal `json:"capital"`
}

// AccountBalanceResponse defines the data returned for an account balance query.
type AccountBalanceResponse struct {
	AccountID    string    `json:"accountID"`
	AsOf         time.Time `json:"asOf"`
	BalanceCents int64     `json:"balanceCents"`
}

// AccountAtDateResponse is an account with its reconstructed balance.
type AccountAtDateResponse struct {
	Account      AccountResponse `json:"account"`
	AsOf         time.Time       `json:"asOf"`
	BalanceCents int64           `json:"balanceCents"`
}

// ToMonthlySummaryResponse converts a domain.MonthlySummary
func ToMonthlySummaryResponse(s *domain.MonthlySummary) MonthlySummaryResponse {
	rows := make([]CategoryTotalResponse, len(s.ByCategory))
	for i, ct := range s.ByCategory {
		rows[i] = CategoryTotalResponse{CategoryID: ct.CategoryID, TotalCents: ct.TotalCents, Transactions: ct.Transactions}
	}
	return MonthlySummaryResponse{
		Year:               s.Year,
		Month:              int(s.Month),
		TotalIncomeCents:   s.TotalIncomeCents,
		TotalExpensesCents: s.TotalExpensesCents,
		NetSavingsCents:    s.NetSavingsCents,
		NetSavings:         utils.CentsToDecimal(s.NetSavingsCents),
		ByCategory:         rows,
	}
}

// ToAccountsAtDateResponse converts reconstructed balances
func ToAccountsAtDateResponse(rows []domain.AccountBalanceAt) []AccountAtDateResponse {
	res := make([]AccountAtDateResponse, len(rows))
	for i := range rows {
		res[i] = AccountAtDateResponse{
			Account:      ToAccountResponse(&rows[i].Account),
			AsOf:         rows[i].AsOf,
			BalanceCents: rows[i].BalanceCents,
		}
	}
	return res
}
