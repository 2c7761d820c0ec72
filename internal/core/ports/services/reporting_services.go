package services

import (
	"context"
	"time"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
)

// ReportingService derives balances and summaries from the ledger.
type ReportingService interface {
	// AccountBalanceAtDate returns the balance before any transaction dated on or after asOf.
	AccountBalanceAtDate(ctx context.Context, accountID string, asOf time.Time) (int64, error)

	// ListAccountsAtDate reconstructs every account's balance as of asOf.
	ListAccountsAtDate(ctx context.Context, asOf time.Time) ([]domain.AccountBalanceAt, error)

	// CapitalAtDate returns assets minus liabilities as of asOf.
	CapitalAtDate(ctx context.Context, asOf time.Time) (int64, error)

	// MonthlySummary totals income and expenses for a calendar month.
	MonthlySummary(ctx context.Context, year int, month time.Month, accountID, categoryID *string) (*domain.MonthlySummary, error)
}
