package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/dto"
)

// staticDataService seeds a fresh ledger with a starter bank, accounts and
// categories. It goes through the regular services so seeded rows obey the
// same rules as user-created ones. Banks and categories that survive from an
// earlier seed are reused rather than created again.
type staticDataService struct {
	BaseService
	accountRepo portsrepo.AccountReader
	banks       portssvc.BankSvcFacade
	accounts    portssvc.AccountWriterSvc
	categories  portssvc.CategorySvcFacade
}

const seedBankName = "My Bank"

// NewStaticDataService creates the seeder.
func NewStaticDataService(
	accountRepo portsrepo.AccountReader,
	banks portssvc.BankSvcFacade,
	accounts portssvc.AccountWriterSvc,
	categories portssvc.CategorySvcFacade,
	opts ...Option,
) portssvc.StaticDataService {
	return &staticDataService{
		BaseService: newBaseService(opts),
		accountRepo: accountRepo,
		banks:       banks,
		accounts:    accounts,
		categories:  categories,
	}
}

func strPtr(s string) *string {
	return &s
}

func (s *staticDataService) InitializeStaticData(ctx context.Context) (bool, error) {
	count, err := s.accountRepo.CountAccounts(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to count accounts before seeding")
		return false, fmt.Errorf("failed to count accounts: %w", err)
	}
	if count > 0 {
		s.LogDebug(ctx, "Ledger already has accounts, skipping seed", slog.Int("accounts", count))
		return false, nil
	}

	bank, err := s.seedBank(ctx)
	if err != nil {
		return false, err
	}

	accounts := []dto.CreateAccountRequest{
		{Name: "Cash", AccountType: domain.AccountTypeCash, Currency: domain.CurrencyEUR, InitialBalanceCents: 10000},
		{Name: "Checking Account", AccountType: domain.AccountTypeCurrent, BankID: &bank.BankID, Currency: domain.CurrencyEUR, InitialBalanceCents: 125000},
		{Name: "Credit Card", AccountType: domain.AccountTypeCreditCard, BankID: &bank.BankID, Currency: domain.CurrencyEUR, InitialBalanceCents: -5000},
	}
	for _, req := range accounts {
		if _, err := s.accounts.CreateAccount(ctx, req); err != nil {
			return false, fmt.Errorf("failed to seed account %q: %w", req.Name, err)
		}
	}

	existing, err := s.categories.ListCategories(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("failed to list categories: %w", err)
	}
	have := make(map[string]bool, len(existing))
	for _, c := range existing {
		have[string(c.Direction)+"/"+c.Name] = true
	}

	categories := []dto.CreateCategoryRequest{
		{Name: "Salary", Direction: domain.Income},
		{Name: "Groceries", Direction: domain.Expense},
		{Name: "Debt Payment", Direction: domain.Expense, Description: strPtr("Paying credit card / loans")},
	}
	for _, req := range categories {
		if have[string(req.Direction)+"/"+req.Name] {
			continue
		}
		if _, err := s.categories.CreateCategory(ctx, req); err != nil {
			return false, fmt.Errorf("failed to seed category %q: %w", req.Name, err)
		}
	}

	s.LogInfo(ctx, "Seeded starter data",
		slog.Int("accounts", len(accounts)),
		slog.Int("categories", len(categories)))
	return true, nil
}

// seedBank returns the starter bank, creating it only when no bank with that
// name exists yet.
func (s *staticDataService) seedBank(ctx context.Context) (*domain.Bank, error) {
	banks, err := s.banks.ListBanks(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list banks: %w", err)
	}
	for i := range banks {
		if banks[i].Name == seedBankName {
			s.LogDebug(ctx, "Reusing existing starter bank", slog.String("bank_id", banks[i].BankID))
			return &banks[i], nil
		}
	}

	bank, err := s.banks.CreateBank(ctx, dto.CreateBankRequest{Name: seedBankName, Description: strPtr("Main bank")})
	if err != nil {
		return nil, fmt.Errorf("failed to seed bank: %w", err)
	}
	return bank, nil
}
