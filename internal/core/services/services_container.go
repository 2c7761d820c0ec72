package services

import (
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/platform/config"
)

// NewServiceContainer creates and returns a new service container with all services initialized.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, opts ...Option) *portssvc.ServiceContainer {
	bankService := NewBankService(repos.BankRepo, repos.AccountRepo, opts...)
	accountService := NewAccountService(repos.AccountRepo, repos.BankRepo, opts...)
	categoryService := NewCategoryService(repos.CategoryRepo, opts...)

	transactionService := NewTransactionService(
		repos.TransactionRepo,
		repos.AccountRepo,
		repos.CategoryRepo,
		WithSignCheckOnUpdate(cfg.EnforceSignOnUpdate),
		WithTransactionServiceOptions(opts...),
	)
	reportingService := NewReportingService(repos.AccountRepo, repos.TransactionRepo,
		WithReportingLocation(cfg.Location))

	return &portssvc.ServiceContainer{
		Bank:        bankService,
		Account:     accountService,
		Category:    categoryService,
		Transaction: transactionService,
		Reporting:   reportingService,
		Seeder:      NewStaticDataService(repos.AccountRepo, bankService, accountService, categoryService, opts...),
	}
}
