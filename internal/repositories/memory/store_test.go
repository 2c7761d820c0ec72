package memory_test

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func newLedger(t *testing.T) portsrepo.RepositoryProvider {
	t.Helper()
	ctx := context.Background()
	repos := memory.NewRepositoryProvider(memory.NewStore())
	require.NoError(t, repos.BankRepo.SaveBank(ctx, domain.Bank{BankID: "b1", Name: "Bank"}))
	require.NoError(t, repos.AccountRepo.SaveAccount(ctx, domain.Account{
		AccountID: "a1", Name: "Checking", AccountType: domain.AccountTypeCurrent,
		BankID: strPtr("b1"), Currency: domain.CurrencyEUR, BalanceCents: 1000,
	}))
	require.NoError(t, repos.CategoryRepo.SaveCategory(ctx, domain.Category{CategoryID: "c1", Name: "Food", Direction: domain.Expense}))
	return repos
}

func TestUnitOfWork_UncommittedWritesAreInvisible(t *testing.T) {
	ctx := context.Background()
	repos := newLedger(t)
	now := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	tx, err := repos.TransactionRepo.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Transactions().SaveTransaction(ctx, domain.Transaction{
		TransactionID: "t1", AccountID: "a1", CategoryID: strPtr("c1"), AmountCents: -250, Date: now,
	}))
	bal, err := tx.Accounts().AdjustBalance(ctx, "a1", -250)
	require.NoError(t, err)
	assert.Equal(t, int64(750), bal)

	acc, err := repos.AccountRepo.FindAccountByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), acc.BalanceCents, "readers see the committed state")

	require.NoError(t, tx.Commit(ctx))
	require.NoError(t, tx.Rollback(ctx))

	acc, err = repos.AccountRepo.FindAccountByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, int64(750), acc.BalanceCents)

	_, err = tx.Accounts().AdjustBalance(ctx, "a1", 1)
	assert.Error(t, err, "a finished unit of work rejects further writes")
}

func TestUnitOfWork_Rollback(t *testing.T) {
	ctx := context.Background()
	repos := newLedger(t)

	tx, err := repos.TransactionRepo.Begin(ctx)
	require.NoError(t, err)
	_, err = tx.Accounts().AdjustBalance(ctx, "a1", 5000)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))

	acc, err := repos.AccountRepo.FindAccountByID(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), acc.BalanceCents)

	// the writer lock was released
	tx, err = repos.TransactionRepo.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback(ctx))
}

func TestUnitOfWork_AdjustBalanceRejectsOverflow(t *testing.T) {
	ctx := context.Background()
	repos := newLedger(t)

	tx, err := repos.TransactionRepo.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	_, err = tx.Accounts().AdjustBalance(ctx, "a1", math.MaxInt64-500)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAmount)

	acc, err := tx.Accounts().FindAccountByIDForUpdate(ctx, "a1")
	require.NoError(t, err)
	assert.Equal(t, int64(1000), acc.BalanceCents)
}

func TestUnitOfWork_ReferenceChecks(t *testing.T) {
	ctx := context.Background()
	repos := newLedger(t)

	tx, err := repos.TransactionRepo.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)

	err = tx.Transactions().SaveTransaction(ctx, domain.Transaction{TransactionID: "t1", AccountID: "nope", AmountCents: 1})
	assert.ErrorIs(t, err, apperrors.ErrConstraintViolation)

	err = tx.Transactions().SaveTransaction(ctx, domain.Transaction{TransactionID: "t1", AccountID: "a1", CategoryID: strPtr("nope"), AmountCents: 1})
	assert.ErrorIs(t, err, apperrors.ErrConstraintViolation)

	_, err = tx.Accounts().FindAccountByIDForUpdate(ctx, "nope")
	assert.ErrorIs(t, err, apperrors.ErrAccountNotFound)
}

func TestRepositories_DeleteRules(t *testing.T) {
	ctx := context.Background()
	repos := newLedger(t)

	tx, err := repos.TransactionRepo.Begin(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Transactions().SaveTransaction(ctx, domain.Transaction{
		TransactionID: "t1", AccountID: "a1", CategoryID: strPtr("c1"), AmountCents: -10,
	}))
	require.NoError(t, tx.Commit(ctx))

	require.NoError(t, repos.CategoryRepo.DeleteCategory(ctx, "c1"))
	txn, err := repos.TransactionRepo.FindTransactionByID(ctx, "t1")
	require.NoError(t, err)
	assert.Nil(t, txn.CategoryID)

	require.NoError(t, repos.BankRepo.DeleteBank(ctx, "b1"))
	acc, err := repos.AccountRepo.FindAccountByID(ctx, "a1")
	require.NoError(t, err)
	assert.Nil(t, acc.BankID)

	require.NoError(t, repos.AccountRepo.DeleteAccount(ctx, "a1"))
	_, err = repos.TransactionRepo.FindTransactionByID(ctx, "t1")
	assert.ErrorIs(t, err, apperrors.ErrTransactionNotFound)
}

func TestTransactionRepository_ListOrderAndSummary(t *testing.T) {
	ctx := context.Background()
	repos := newLedger(t)
	require.NoError(t, repos.CategoryRepo.SaveCategory(ctx, domain.Category{CategoryID: "c2", Name: "Pay", Direction: domain.Income}))

	day := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	created := day.Add(time.Hour)
	rows := []domain.Transaction{
		{TransactionID: "t1", AccountID: "a1", CategoryID: strPtr("c1"), AmountCents: -100, Date: day, CreatedAt: created},
		{TransactionID: "t2", AccountID: "a1", CategoryID: strPtr("c2"), AmountCents: 900, Date: day, CreatedAt: created.Add(time.Minute)},
		{TransactionID: "t3", AccountID: "a1", AmountCents: -40, Date: day.AddDate(0, 0, 1), CreatedAt: created},
	}
	tx, err := repos.TransactionRepo.Begin(ctx)
	require.NoError(t, err)
	for _, r := range rows {
		require.NoError(t, tx.Transactions().SaveTransaction(ctx, r))
	}
	require.NoError(t, tx.Commit(ctx))

	listed, err := repos.TransactionRepo.ListTransactions(ctx, portsrepo.TransactionFilter{})
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, []string{"t3", "t2", "t1"}, []string{listed[0].TransactionID, listed[1].TransactionID, listed[2].TransactionID})

	summary, err := repos.TransactionRepo.SummarizeTransactions(ctx, portsrepo.TransactionFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(900), summary.IncomeCents)
	assert.Equal(t, int64(-140), summary.ExpensesCents)
	require.Len(t, summary.ByCategory, 3)
	assert.Nil(t, summary.ByCategory[0].CategoryID, "uncategorized totals come first")

	from := day.AddDate(0, 0, 1)
	sum, err := repos.TransactionRepo.SumTransactions(ctx, portsrepo.TransactionFilter{From: &from})
	require.NoError(t, err)
	assert.Equal(t, int64(-40), sum)

	none, err := repos.TransactionRepo.SumTransactions(ctx, portsrepo.TransactionFilter{AccountID: strPtr("other")})
	require.NoError(t, err)
	assert.Zero(t, none)
}
