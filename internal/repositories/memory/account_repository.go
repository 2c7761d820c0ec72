package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
)

type accountRepository struct {
	store *Store
}

var _ portsrepo.AccountRepositoryFacade = (*accountRepository)(nil)

func (st *state) checkBankRef(bankID *string) error {
	if bankID == nil {
		return nil
	}
	if _, ok := st.banks[*bankID]; !ok {
		return fmt.Errorf("%w: bank %s does not exist", apperrors.ErrConstraintViolation, *bankID)
	}
	return nil
}

func (r *accountRepository) SaveAccount(ctx context.Context, account domain.Account) error {
	return r.store.write(func(st *state) error {
		if _, ok := st.accounts[account.AccountID]; ok {
			return fmt.Errorf("%w: account with ID %s already exists", apperrors.ErrDuplicate, account.AccountID)
		}
		if err := st.checkBankRef(account.BankID); err != nil {
			return err
		}
		st.accounts[account.AccountID] = account
		return nil
	})
}

func (r *accountRepository) FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	var (
		acc domain.Account
		ok  bool
	)
	r.store.read(func(st *state) { acc, ok = st.accounts[accountID] })
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return &acc, nil
}

func (r *accountRepository) ListAccounts(ctx context.Context, filter portsrepo.AccountFilter) ([]domain.Account, error) {
	accounts := []domain.Account{}
	r.store.read(func(st *state) {
		for _, acc := range st.accounts {
			if matchAccount(filter, acc) {
				accounts = append(accounts, acc)
			}
		}
	})
	sort.Slice(accounts, func(i, j int) bool {
		if accounts[i].Name != accounts[j].Name {
			return accounts[i].Name < accounts[j].Name
		}
		return accounts[i].AccountID < accounts[j].AccountID
	})
	return accounts, nil
}

func matchAccount(f portsrepo.AccountFilter, acc domain.Account) bool {
	if f.WithoutBank && acc.BankID != nil {
		return false
	}
	if f.BankID != nil && (acc.BankID == nil || *acc.BankID != *f.BankID) {
		return false
	}
	if f.Currency != nil && acc.Currency != *f.Currency {
		return false
	}
	return true
}

func (r *accountRepository) CountAccounts(ctx context.Context) (int, error) {
	var n int
	r.store.read(func(st *state) { n = len(st.accounts) })
	return n, nil
}

func (r *accountRepository) UpdateAccount(ctx context.Context, account domain.Account) error {
	return r.store.write(func(st *state) error {
		existing, ok := st.accounts[account.AccountID]
		if !ok {
			return apperrors.ErrAccountNotFound
		}
		if err := st.checkBankRef(account.BankID); err != nil {
			return err
		}
		account.BalanceCents = existing.BalanceCents
		account.CreatedAt = existing.CreatedAt
		st.accounts[account.AccountID] = account
		return nil
	})
}

// DeleteAccount removes the account together with its transactions.
func (r *accountRepository) DeleteAccount(ctx context.Context, accountID string) error {
	return r.store.write(func(st *state) error {
		if _, ok := st.accounts[accountID]; !ok {
			return apperrors.ErrAccountNotFound
		}
		delete(st.accounts, accountID)
		for id, txn := range st.transactions {
			if txn.AccountID == accountID {
				delete(st.transactions, id)
			}
		}
		return nil
	})
}
