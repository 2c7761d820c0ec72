package services

import "context"

// ServiceContainer holds instances of all the application services.
// This is the main entry point for accessing service functionality and
// is used throughout the application, particularly in the handlers.
type ServiceContainer struct {
	Bank        BankSvcFacade
	Account     AccountSvcFacade
	Category    CategorySvcFacade
	Transaction TransactionSvcFacade
	Reporting   ReportingService
	Seeder      StaticDataService
}

// StaticDataService populates a fresh store with starter data.
type StaticDataService interface {
	// InitializeStaticData seeds only when no account exists and reports whether it did.
	InitializeStaticData(ctx context.Context) (bool, error)
}
