package pgsql

import (
	"context"

	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
)

type pgxUnitOfWork struct {
	base *BaseRepository
	tx   pgx.Tx
}

var _ portsrepo.Tx = (*pgxUnitOfWork)(nil)

func (u *pgxUnitOfWork) Accounts() portsrepo.AccountTxRepository {
	return newPgxAccountRepository(u.tx)
}

func (u *pgxUnitOfWork) Transactions() portsrepo.TransactionTxRepository {
	return &pgxTxTransactions{db: u.tx}
}

func (u *pgxUnitOfWork) Commit(ctx context.Context) error {
	return u.base.commitTx(ctx, u.tx)
}

func (u *pgxUnitOfWork) Rollback(ctx context.Context) error {
	return u.base.rollbackTx(ctx, u.tx)
}
