package services_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/core/services"
	"github.com/SscSPs/budget_tracker/internal/dto"
	"github.com/SscSPs/budget_tracker/internal/repositories/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var fixedNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

// --- failing unit of work, used to prove nothing leaks on a half-failed write ---

var errInjected = errors.New("injected balance failure")

type failingTxnRepo struct {
	portsrepo.TransactionRepositoryFacade
	failAdjust bool
}

func (r *failingTxnRepo) Begin(ctx context.Context) (portsrepo.Tx, error) {
	tx, err := r.TransactionRepositoryFacade.Begin(ctx)
	if err != nil {
		return nil, err
	}
	return &failingTx{Tx: tx, failAdjust: r.failAdjust}, nil
}

type failingTx struct {
	portsrepo.Tx
	failAdjust bool
}

func (t *failingTx) Accounts() portsrepo.AccountTxRepository {
	return &failingAccounts{AccountTxRepository: t.Tx.Accounts(), fail: t.failAdjust}
}

type failingAccounts struct {
	portsrepo.AccountTxRepository
	fail bool
}

func (a *failingAccounts) AdjustBalance(ctx context.Context, accountID string, deltaCents int64) (int64, error) {
	if a.fail {
		return 0, errInjected
	}
	return a.AccountTxRepository.AdjustBalance(ctx, accountID, deltaCents)
}

// --- suite ---

type TransactionServiceTestSuite struct {
	suite.Suite
	ctx       context.Context
	repos     portsrepo.RepositoryProvider
	svc       portssvc.TransactionSvcFacade
	accounts  portssvc.AccountSvcFacade
	cats      portssvc.CategorySvcFacade
	banks     portssvc.BankSvcFacade
	reporting portssvc.ReportingService

	cash      *domain.Account
	checking  *domain.Account
	salary    *domain.Category
	groceries *domain.Category
}

func (s *TransactionServiceTestSuite) SetupTest() {
	s.ctx = context.Background()
	s.repos = memory.NewRepositoryProvider(memory.NewStore())
	clock := services.WithClock(func() time.Time { return fixedNow })

	s.banks = services.NewBankService(s.repos.BankRepo, s.repos.AccountRepo, clock)
	s.accounts = services.NewAccountService(s.repos.AccountRepo, s.repos.BankRepo, clock)
	s.cats = services.NewCategoryService(s.repos.CategoryRepo, clock)
	s.svc = services.NewTransactionService(s.repos.TransactionRepo, s.repos.AccountRepo, s.repos.CategoryRepo,
		services.WithTransactionServiceOptions(clock))
	s.reporting = services.NewReportingService(s.repos.AccountRepo, s.repos.TransactionRepo)

	bank, err := s.banks.CreateBank(s.ctx, dto.CreateBankRequest{Name: "Test Bank"})
	s.Require().NoError(err)

	s.cash, err = s.accounts.CreateAccount(s.ctx, dto.CreateAccountRequest{
		Name: "Wallet", AccountType: domain.AccountTypeCash, Currency: domain.CurrencyEUR,
	})
	s.Require().NoError(err)
	s.checking, err = s.accounts.CreateAccount(s.ctx, dto.CreateAccountRequest{
		Name: "Checking", AccountType: domain.AccountTypeCurrent, BankID: &bank.BankID,
		Currency: domain.CurrencyEUR, InitialBalanceCents: 10000,
	})
	s.Require().NoError(err)

	s.salary, err = s.cats.CreateCategory(s.ctx, dto.CreateCategoryRequest{Name: "Salary", Direction: domain.Income})
	s.Require().NoError(err)
	s.groceries, err = s.cats.CreateCategory(s.ctx, dto.CreateCategoryRequest{Name: "Groceries", Direction: domain.Expense})
	s.Require().NoError(err)
}

func (s *TransactionServiceTestSuite) balance(accountID string) int64 {
	acc, err := s.repos.AccountRepo.FindAccountByID(s.ctx, accountID)
	s.Require().NoError(err)
	return acc.BalanceCents
}

func (s *TransactionServiceTestSuite) create(accountID string, category *domain.Category, amount int64, date time.Time) *portssvc.TransactionResult {
	res, err := s.svc.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		AccountID:   accountID,
		CategoryID:  category.CategoryID,
		AmountCents: dto.Cents(amount),
		Date:        &date,
	})
	s.Require().NoError(err)
	return res
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}

func (s *TransactionServiceTestSuite) TestSalaryGroceriesScenario() {
	t1 := time.Date(2025, time.January, 31, 9, 0, 0, 0, time.UTC)
	t2 := time.Date(2025, time.February, 2, 18, 30, 0, 0, time.UTC)

	salary := s.create(s.cash.AccountID, s.salary, 150000, t1)
	s.Equal(int64(150000), salary.Balances[s.cash.AccountID])
	s.Equal(int64(150000), s.balance(s.cash.AccountID))

	groceries := s.create(s.cash.AccountID, s.groceries, -4500, t2)
	s.Equal(int64(145500), groceries.Balances[s.cash.AccountID])

	s.Require().NoError(s.svc.DeleteTransaction(s.ctx, salary.Transaction.TransactionID))
	s.Equal(int64(-4500), s.balance(s.cash.AccountID))
}

func (s *TransactionServiceTestSuite) TestCreate_DefaultsDateAndStoresUTC() {
	res, err := s.svc.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		AccountID:   s.cash.AccountID,
		CategoryID:  s.salary.CategoryID,
		AmountCents: 100,
	})
	s.Require().NoError(err)
	s.True(res.Transaction.Date.Equal(fixedNow))
	s.Equal(time.UTC, res.Transaction.Date.Location())

	cest := time.FixedZone("CEST", 2*60*60)
	local := time.Date(2025, time.June, 1, 0, 30, 0, 0, cest)
	res = s.create(s.cash.AccountID, s.salary, 100, local)
	s.Equal(time.UTC, res.Transaction.Date.Location())
	s.True(res.Transaction.Date.Equal(local))
}

func (s *TransactionServiceTestSuite) TestCreate_Rejections() {
	tests := []struct {
		name       string
		accountID  string
		categoryID string
		amount     int64
		wantErr    error
	}{
		{"zero amount", s.cash.AccountID, s.salary.CategoryID, 0, apperrors.ErrInvalidAmount},
		{"positive against expense", s.cash.AccountID, s.groceries.CategoryID, 500, apperrors.ErrCategoryMismatch},
		{"negative against income", s.cash.AccountID, s.salary.CategoryID, -500, apperrors.ErrCategoryMismatch},
		{"unknown account", "missing", s.salary.CategoryID, 500, apperrors.ErrAccountNotFound},
		{"unknown category", s.cash.AccountID, "missing", 500, apperrors.ErrCategoryNotFound},
		{"missing category", s.cash.AccountID, "", 500, apperrors.ErrValidation},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
				AccountID:   tt.accountID,
				CategoryID:  tt.categoryID,
				AmountCents: dto.Cents(tt.amount),
			})
			s.ErrorIs(err, tt.wantErr)
			s.Equal(int64(0), s.balance(s.cash.AccountID))

			txns, err := s.svc.ListTransactions(s.ctx, portsrepo.TransactionFilter{})
			s.Require().NoError(err)
			s.Empty(txns)
		})
	}
}

func (s *TransactionServiceTestSuite) TestCreate_MismatchCarriesDirections() {
	_, err := s.svc.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		AccountID:   s.cash.AccountID,
		CategoryID:  s.groceries.CategoryID,
		AmountCents: 700,
	})
	var mismatch *apperrors.CategoryMismatchError
	s.Require().ErrorAs(err, &mismatch)
	s.Equal("INCOME", mismatch.Detected)
	s.Equal("EXPENSE", mismatch.Declared)
}

func (s *TransactionServiceTestSuite) TestUpdate_SameAccountAppliesDelta() {
	res := s.create(s.checking.AccountID, s.groceries, -2000, fixedNow)

	updated, err := s.svc.UpdateTransaction(s.ctx, res.Transaction.TransactionID, dto.UpdateTransactionRequest{
		AmountCents: dto.CentsPtr(-3500),
	})
	s.Require().NoError(err)
	s.Equal(int64(-3500), updated.Transaction.AmountCents)
	s.Equal(map[string]int64{s.checking.AccountID: 6500}, updated.Balances)
	s.Equal(int64(6500), s.balance(s.checking.AccountID))
}

func (s *TransactionServiceTestSuite) TestUpdate_MovesBetweenAccounts() {
	res := s.create(s.checking.AccountID, s.salary, 2500, fixedNow)
	s.Require().Equal(int64(12500), s.balance(s.checking.AccountID))

	updated, err := s.svc.UpdateTransaction(s.ctx, res.Transaction.TransactionID, dto.UpdateTransactionRequest{
		AccountID:   &s.cash.AccountID,
		AmountCents: dto.CentsPtr(4000),
	})
	s.Require().NoError(err)
	s.Equal(s.cash.AccountID, updated.Transaction.AccountID)
	s.Equal(int64(10000), s.balance(s.checking.AccountID))
	s.Equal(int64(4000), s.balance(s.cash.AccountID))
	s.Equal(map[string]int64{s.checking.AccountID: 10000, s.cash.AccountID: 4000}, updated.Balances)
}

func (s *TransactionServiceTestSuite) TestUpdate_KeepsUnsetFields() {
	desc := "weekly shop"
	date := time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC)
	res, err := s.svc.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		AccountID: s.cash.AccountID, CategoryID: s.groceries.CategoryID,
		AmountCents: -1200, Date: &date, Description: &desc,
	})
	s.Require().NoError(err)

	newDate := date.AddDate(0, 0, 1)
	updated, err := s.svc.UpdateTransaction(s.ctx, res.Transaction.TransactionID, dto.UpdateTransactionRequest{Date: &newDate})
	s.Require().NoError(err)
	s.True(updated.Transaction.Date.Equal(newDate))
	s.Equal(int64(-1200), updated.Transaction.AmountCents)
	s.Require().NotNil(updated.Transaction.Description)
	s.Equal(desc, *updated.Transaction.Description)
	s.Equal(s.groceries.CategoryID, *updated.Transaction.CategoryID)
	s.Equal(int64(-1200), s.balance(s.cash.AccountID))
}

func (s *TransactionServiceTestSuite) TestUpdate_Rejections() {
	res := s.create(s.cash.AccountID, s.salary, 1000, fixedNow)
	id := res.Transaction.TransactionID
	missing := "missing"

	tests := []struct {
		name    string
		id      string
		req     dto.UpdateTransactionRequest
		wantErr error
	}{
		{"zero amount", id, dto.UpdateTransactionRequest{AmountCents: dto.CentsPtr(0)}, apperrors.ErrInvalidAmount},
		{"unknown transaction", "missing", dto.UpdateTransactionRequest{}, apperrors.ErrTransactionNotFound},
		{"unknown target account", id, dto.UpdateTransactionRequest{AccountID: &missing}, apperrors.ErrAccountNotFound},
		{"unknown category", id, dto.UpdateTransactionRequest{CategoryID: &missing}, apperrors.ErrCategoryNotFound},
		{"sign flips against stored category", id, dto.UpdateTransactionRequest{AmountCents: dto.CentsPtr(-1000)}, apperrors.ErrCategoryMismatch},
		{"category flips against stored amount", id, dto.UpdateTransactionRequest{CategoryID: &s.groceries.CategoryID}, apperrors.ErrCategoryMismatch},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.svc.UpdateTransaction(s.ctx, tt.id, tt.req)
			s.ErrorIs(err, tt.wantErr)
			s.Equal(int64(1000), s.balance(s.cash.AccountID))
		})
	}
}

func (s *TransactionServiceTestSuite) TestUpdate_SignCheckCanBeDisabled() {
	svc := services.NewTransactionService(s.repos.TransactionRepo, s.repos.AccountRepo, s.repos.CategoryRepo,
		services.WithSignCheckOnUpdate(false))
	res := s.create(s.cash.AccountID, s.salary, 1000, fixedNow)

	updated, err := svc.UpdateTransaction(s.ctx, res.Transaction.TransactionID, dto.UpdateTransactionRequest{
		AmountCents: dto.CentsPtr(-250),
	})
	s.Require().NoError(err)
	s.Equal(int64(-250), updated.Balances[s.cash.AccountID])
}

func (s *TransactionServiceTestSuite) TestUpdate_UncategorizedSkipsSignCheck() {
	res := s.create(s.cash.AccountID, s.salary, 1000, fixedNow)
	s.Require().NoError(s.cats.DeleteCategory(s.ctx, s.salary.CategoryID))

	updated, err := s.svc.UpdateTransaction(s.ctx, res.Transaction.TransactionID, dto.UpdateTransactionRequest{
		AmountCents: dto.CentsPtr(-300),
	})
	s.Require().NoError(err)
	s.Nil(updated.Transaction.CategoryID)
	s.Equal(int64(-300), s.balance(s.cash.AccountID))
}

func (s *TransactionServiceTestSuite) TestDelete_UnknownIsNoOp() {
	s.create(s.checking.AccountID, s.salary, 500, fixedNow)

	s.NoError(s.svc.DeleteTransaction(s.ctx, "does-not-exist"))
	s.Equal(int64(10500), s.balance(s.checking.AccountID))
}

func (s *TransactionServiceTestSuite) TestDelete_Twice() {
	res := s.create(s.checking.AccountID, s.groceries, -500, fixedNow)

	s.Require().NoError(s.svc.DeleteTransaction(s.ctx, res.Transaction.TransactionID))
	s.Require().NoError(s.svc.DeleteTransaction(s.ctx, res.Transaction.TransactionID))
	s.Equal(int64(10000), s.balance(s.checking.AccountID))

	_, err := s.svc.GetTransactionByID(s.ctx, res.Transaction.TransactionID)
	s.ErrorIs(err, apperrors.ErrTransactionNotFound)
}

func (s *TransactionServiceTestSuite) TestFailedBalanceWriteLeavesNoTrace() {
	res := s.create(s.checking.AccountID, s.groceries, -500, fixedNow)
	failing := services.NewTransactionService(
		&failingTxnRepo{TransactionRepositoryFacade: s.repos.TransactionRepo, failAdjust: true},
		s.repos.AccountRepo, s.repos.CategoryRepo)

	_, err := failing.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		AccountID: s.checking.AccountID, CategoryID: s.salary.CategoryID, AmountCents: 900,
	})
	s.ErrorIs(err, errInjected)

	_, err = failing.UpdateTransaction(s.ctx, res.Transaction.TransactionID, dto.UpdateTransactionRequest{
		AmountCents: dto.CentsPtr(-800),
	})
	s.ErrorIs(err, errInjected)

	err = failing.DeleteTransaction(s.ctx, res.Transaction.TransactionID)
	s.ErrorIs(err, errInjected)

	txns, err := s.svc.ListTransactions(s.ctx, portsrepo.TransactionFilter{})
	s.Require().NoError(err)
	s.Require().Len(txns, 1)
	s.Equal(int64(-500), txns[0].AmountCents)
	s.Equal(int64(9500), s.balance(s.checking.AccountID))
}

func (s *TransactionServiceTestSuite) TestCreate_RejectsBalanceOverflow() {
	_, err := s.svc.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		AccountID:   s.checking.AccountID,
		CategoryID:  s.salary.CategoryID,
		AmountCents: dto.Cents(math.MaxInt64 - 5000),
	})
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
	s.Equal(int64(10000), s.balance(s.checking.AccountID))

	txns, err := s.svc.ListTransactions(s.ctx, portsrepo.TransactionFilter{AccountID: &s.checking.AccountID})
	s.Require().NoError(err)
	s.Empty(txns)

	capital, err := s.reporting.CapitalAtDate(s.ctx, fixedNow)
	s.Require().NoError(err)
	s.Equal(int64(10000), capital)
}

func (s *TransactionServiceTestSuite) TestUpdate_SameAccountRejectsBalanceOverflow() {
	res := s.create(s.checking.AccountID, s.salary, 1000, fixedNow)
	s.Equal(int64(11000), s.balance(s.checking.AccountID))

	_, err := s.svc.UpdateTransaction(s.ctx, res.Transaction.TransactionID, dto.UpdateTransactionRequest{
		AmountCents: dto.CentsPtr(math.MaxInt64),
	})
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
	s.Equal(int64(11000), s.balance(s.checking.AccountID))

	stored, err := s.svc.GetTransactionByID(s.ctx, res.Transaction.TransactionID)
	s.Require().NoError(err)
	s.Equal(int64(1000), stored.AmountCents)
}

func (s *TransactionServiceTestSuite) TestUpdate_MoveRejectsBalanceOverflow() {
	s.create(s.cash.AccountID, s.salary, math.MaxInt64-100, fixedNow)
	res := s.create(s.checking.AccountID, s.salary, 500, fixedNow)

	_, err := s.svc.UpdateTransaction(s.ctx, res.Transaction.TransactionID, dto.UpdateTransactionRequest{
		AccountID: &s.cash.AccountID,
	})
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
	s.Equal(int64(math.MaxInt64-100), s.balance(s.cash.AccountID))
	s.Equal(int64(10500), s.balance(s.checking.AccountID), "the revert on the old account is rolled back")

	stored, err := s.svc.GetTransactionByID(s.ctx, res.Transaction.TransactionID)
	s.Require().NoError(err)
	s.Equal(s.checking.AccountID, stored.AccountID)
}

func (s *TransactionServiceTestSuite) TestCreate_RejectsUnrevertibleAmount() {
	_, err := s.svc.CreateTransaction(s.ctx, dto.CreateTransactionRequest{
		AccountID:   s.cash.AccountID,
		CategoryID:  s.groceries.CategoryID,
		AmountCents: dto.Cents(math.MinInt64),
	})
	s.ErrorIs(err, apperrors.ErrInvalidAmount)
	s.Zero(s.balance(s.cash.AccountID))
}

func (s *TransactionServiceTestSuite) TestBalancesMatchLedgerAfterMixedWrites() {
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 1; i <= 6; i++ {
		cat, amount := s.salary, int64(i*1000)
		if i%2 == 0 {
			cat, amount = s.groceries, -int64(i*300)
		}
		ids = append(ids, s.create(s.checking.AccountID, cat, amount, base.AddDate(0, 0, i)).Transaction.TransactionID)
	}
	_, err := s.svc.UpdateTransaction(s.ctx, ids[0], dto.UpdateTransactionRequest{AccountID: &s.cash.AccountID})
	s.Require().NoError(err)
	s.Require().NoError(s.svc.DeleteTransaction(s.ctx, ids[3]))

	for _, acc := range []*domain.Account{s.cash, s.checking} {
		sum, err := s.repos.TransactionRepo.SumTransactions(s.ctx, portsrepo.TransactionFilter{AccountID: &acc.AccountID})
		s.Require().NoError(err)
		s.Equal(acc.BalanceCents+sum, s.balance(acc.AccountID), acc.Name)
	}
}

func (s *TransactionServiceTestSuite) TestList_FiltersAndOrder() {
	d1 := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 10)
	first := s.create(s.cash.AccountID, s.salary, 100, d1)
	second := s.create(s.cash.AccountID, s.groceries, -50, d2)
	s.create(s.checking.AccountID, s.salary, 300, d2)

	txns, err := s.svc.ListTransactions(s.ctx, portsrepo.TransactionFilter{AccountID: &s.cash.AccountID})
	s.Require().NoError(err)
	s.Require().Len(txns, 2)
	s.Equal(second.Transaction.TransactionID, txns[0].TransactionID)
	s.Equal(first.Transaction.TransactionID, txns[1].TransactionID)

	to := d2
	txns, err = s.svc.ListTransactions(s.ctx, portsrepo.TransactionFilter{ToExclusive: &to})
	s.Require().NoError(err)
	s.Require().Len(txns, 1)
	s.Equal(first.Transaction.TransactionID, txns[0].TransactionID)

	txns, err = s.svc.ListTransactions(s.ctx, portsrepo.TransactionFilter{Limit: 1, Offset: 1})
	s.Require().NoError(err)
	s.Len(txns, 1)
}

func TestTransactionService_ConcurrentCreatesKeepBalance(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRepositoryProvider(memory.NewStore())
	accounts := services.NewAccountService(repos.AccountRepo, repos.BankRepo)
	cats := services.NewCategoryService(repos.CategoryRepo)
	svc := services.NewTransactionService(repos.TransactionRepo, repos.AccountRepo, repos.CategoryRepo)

	acc, err := accounts.CreateAccount(ctx, dto.CreateAccountRequest{Name: "Cash", AccountType: domain.AccountTypeCash, Currency: domain.CurrencyUSD})
	require.NoError(t, err)
	cat, err := cats.CreateCategory(ctx, dto.CreateCategoryRequest{Name: "Tips", Direction: domain.Income})
	require.NoError(t, err)

	const workers = 20
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		go func() {
			_, err := svc.CreateTransaction(ctx, dto.CreateTransactionRequest{
				AccountID: acc.AccountID, CategoryID: cat.CategoryID, AmountCents: 25,
			})
			errs <- err
		}()
	}
	for i := 0; i < workers; i++ {
		require.NoError(t, <-errs)
	}

	stored, err := repos.AccountRepo.FindAccountByID(ctx, acc.AccountID)
	require.NoError(t, err)
	assert.Equal(t, int64(workers*25), stored.BalanceCents)
}
