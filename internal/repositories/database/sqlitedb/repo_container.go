package sqlitedb

import (
	"database/sql"

	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
)

func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BankRepo:        &SQLiteBankRepository{db: db},
		AccountRepo:     &SQLiteAccountRepository{db: db},
		CategoryRepo:    &SQLiteCategoryRepository{db: db},
		TransactionRepo: &SQLiteTransactionRepository{db: db},
	}
}
