package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
)

type bankRepository struct {
	store *Store
}

var _ portsrepo.BankRepositoryFacade = (*bankRepository)(nil)

func (st *state) bankNameTaken(name, exceptID string) bool {
	for id, b := range st.banks {
		if id != exceptID && b.Name == name {
			return true
		}
	}
	return false
}

func (r *bankRepository) SaveBank(ctx context.Context, bank domain.Bank) error {
	return r.store.write(func(st *state) error {
		if _, ok := st.banks[bank.BankID]; ok {
			return fmt.Errorf("%w: bank with ID %s already exists", apperrors.ErrDuplicate, bank.BankID)
		}
		if st.bankNameTaken(bank.Name, "") {
			return fmt.Errorf("%w: bank named %q already exists", apperrors.ErrDuplicate, bank.Name)
		}
		st.banks[bank.BankID] = bank
		return nil
	})
}

func (r *bankRepository) FindBankByID(ctx context.Context, bankID string) (*domain.Bank, error) {
	var (
		bank domain.Bank
		ok   bool
	)
	r.store.read(func(st *state) { bank, ok = st.banks[bankID] })
	if !ok {
		return nil, apperrors.ErrBankNotFound
	}
	return &bank, nil
}

func (r *bankRepository) ListBanks(ctx context.Context) ([]domain.Bank, error) {
	banks := []domain.Bank{}
	r.store.read(func(st *state) {
		for _, b := range st.banks {
			banks = append(banks, b)
		}
	})
	sort.Slice(banks, func(i, j int) bool { return banks[i].Name < banks[j].Name })
	return banks, nil
}

func (r *bankRepository) UpdateBank(ctx context.Context, bank domain.Bank) error {
	return r.store.write(func(st *state) error {
		existing, ok := st.banks[bank.BankID]
		if !ok {
			return apperrors.ErrBankNotFound
		}
		if st.bankNameTaken(bank.Name, bank.BankID) {
			return fmt.Errorf("%w: bank named %q already exists", apperrors.ErrDuplicate, bank.Name)
		}
		bank.CreatedAt = existing.CreatedAt
		st.banks[bank.BankID] = bank
		return nil
	})
}

// DeleteBank removes the bank and clears the reference on its accounts.
func (r *bankRepository) DeleteBank(ctx context.Context, bankID string) error {
	return r.store.write(func(st *state) error {
		if _, ok := st.banks[bankID]; !ok {
			return apperrors.ErrBankNotFound
		}
		delete(st.banks, bankID)
		for id, acc := range st.accounts {
			if acc.BankID != nil && *acc.BankID == bankID {
				acc.BankID = nil
				st.accounts[id] = acc
			}
		}
		return nil
	})
}
