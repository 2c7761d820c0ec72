package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
)

// reportingService answers read-only questions about the ledger. Historical
// balances are reconstructed backwards from the current balance, so a
// transaction dated exactly at the cut-off is excluded from the result.
type reportingService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	txnRepo     portsrepo.TransactionReader
	location    *time.Location
}

// ReportingOption configures the reporting service.
type ReportingOption func(*reportingService)

// WithReportingLocation sets the zone month boundaries are computed in.
func WithReportingLocation(loc *time.Location) ReportingOption {
	return func(s *reportingService) {
		if loc != nil {
			s.location = loc
		}
	}
}

// NewReportingService creates the reporting service.
func NewReportingService(accountRepo portsrepo.AccountReader, txnRepo portsrepo.TransactionReader, opts ...ReportingOption) portssvc.ReportingService {
	s := &reportingService{
		BaseService: newBaseService(nil),
		accountRepo: accountRepo,
		txnRepo:     txnRepo,
		location:    time.UTC,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *reportingService) AccountBalanceAtDate(ctx context.Context, accountID string, asOf time.Time) (int64, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		return 0, err
	}
	later, err := s.sumFrom(ctx, asOf, &accountID)
	if err != nil {
		return 0, err
	}
	return account.BalanceCents - later, nil
}

func (s *reportingService) ListAccountsAtDate(ctx context.Context, asOf time.Time) ([]domain.AccountBalanceAt, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for point-in-time report")
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}

	result := make([]domain.AccountBalanceAt, 0, len(accounts))
	for _, account := range accounts {
		accountID := account.AccountID
		later, err := s.sumFrom(ctx, asOf, &accountID)
		if err != nil {
			return nil, err
		}
		result = append(result, domain.AccountBalanceAt{
			Account:      account,
			AsOf:         asOf,
			BalanceCents: account.BalanceCents - later,
		})
	}
	return result, nil
}

// CapitalAtDate sums assets minus liabilities over current balances and
// then removes every transaction dated on or after asOf, whatever the
// account type.
func (s *reportingService) CapitalAtDate(ctx context.Context, asOf time.Time) (int64, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, portsrepo.AccountFilter{})
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts for capital report")
		return 0, fmt.Errorf("failed to list accounts: %w", err)
	}

	var capital int64
	for _, account := range accounts {
		capital += account.CapitalContribution()
	}

	later, err := s.sumFrom(ctx, asOf, nil)
	if err != nil {
		return 0, err
	}

	s.LogDebug(ctx, "Capital computed",
		slog.Time("as_of", asOf),
		slog.Int64("current_cents", capital),
		slog.Int64("later_transactions_cents", later))
	return capital - later, nil
}

func (s *reportingService) sumFrom(ctx context.Context, from time.Time, accountID *string) (int64, error) {
	sum, err := s.txnRepo.SumTransactions(ctx, portsrepo.TransactionFilter{
		AccountID: accountID,
		From:      &from,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to sum transactions", slog.Time("from", from))
		return 0, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return sum, nil
}

func (s *reportingService) MonthlySummary(ctx context.Context, year int, month time.Month, accountID, categoryID *string) (*domain.MonthlySummary, error) {
	if month < time.January || month > time.December {
		return nil, fmt.Errorf("%w: month must be between 1 and 12, got %d", apperrors.ErrValidation, month)
	}
	if year < 1 || year > 9999 {
		return nil, fmt.Errorf("%w: year %d is out of range", apperrors.ErrValidation, year)
	}

	start, end := domain.MonthRange(year, month, s.location)
	summary, err := s.txnRepo.SummarizeTransactions(ctx, portsrepo.TransactionFilter{
		AccountID:   accountID,
		CategoryID:  categoryID,
		From:        &start,
		ToExclusive: &end,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to summarize transactions",
			slog.Int("year", year), slog.Int("month", int(month)))
		return nil, fmt.Errorf("failed to summarize transactions: %w", err)
	}

	byCategory := summary.ByCategory
	if byCategory == nil {
		byCategory = []domain.CategoryTotal{}
	}
	return &domain.MonthlySummary{
		Year:               year,
		Month:              month,
		TotalIncomeCents:   summary.IncomeCents,
		TotalExpensesCents: summary.ExpensesCents,
		NetSavingsCents:    summary.IncomeCents + summary.ExpensesCents,
		ByCategory:         byCategory,
	}, nil
}
