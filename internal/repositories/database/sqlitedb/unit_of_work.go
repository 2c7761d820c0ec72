package sqlitedb

import (
	"context"
	"database/sql"
	"errors"

	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
)

type sqliteUnitOfWork struct {
	tx *sql.Tx
}

var _ portsrepo.Tx = (*sqliteUnitOfWork)(nil)

func (u *sqliteUnitOfWork) Accounts() portsrepo.AccountTxRepository {
	return &SQLiteAccountRepository{db: u.tx}
}

func (u *sqliteUnitOfWork) Transactions() portsrepo.TransactionTxRepository {
	return &sqliteTxTransactions{db: u.tx}
}

func (u *sqliteUnitOfWork) Commit(ctx context.Context) error {
	if err := u.tx.Commit(); err != nil {
		return internalError("failed to commit transaction", mapSQLiteError(err))
	}
	return nil
}

func (u *sqliteUnitOfWork) Rollback(ctx context.Context) error {
	if err := u.tx.Rollback(); err != nil && !errors.Is(err, sql.ErrTxDone) {
		return internalError("failed to rollback transaction", err)
	}
	return nil
}
