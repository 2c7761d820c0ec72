package memory

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
)

var errTxDone = errors.New("memory: transaction already committed or rolled back")

// memTx holds the store's writer lock from Begin until Commit or Rollback.
type memTx struct {
	store *Store
	work  *state
	done  bool
}

var _ portsrepo.Tx = (*memTx)(nil)

func (t *memTx) Accounts() portsrepo.AccountTxRepository {
	return txAccounts{t}
}

func (t *memTx) Transactions() portsrepo.TransactionTxRepository {
	return txTransactions{t}
}

func (t *memTx) Commit(ctx context.Context) error {
	if t.done {
		return errTxDone
	}
	t.done = true
	t.store.mu.Lock()
	t.store.cur = t.work
	t.store.mu.Unlock()
	t.store.writeMu.Unlock()
	return nil
}

func (t *memTx) Rollback(ctx context.Context) error {
	if t.done {
		return nil
	}
	t.done = true
	t.work = nil
	t.store.writeMu.Unlock()
	return nil
}

func (t *memTx) state() (*state, error) {
	if t.done {
		return nil, errTxDone
	}
	return t.work, nil
}

type txAccounts struct{ t *memTx }

func (a txAccounts) FindAccountByIDForUpdate(ctx context.Context, accountID string) (*domain.Account, error) {
	st, err := a.t.state()
	if err != nil {
		return nil, err
	}
	acc, ok := st.accounts[accountID]
	if !ok {
		return nil, apperrors.ErrAccountNotFound
	}
	return &acc, nil
}

func (a txAccounts) AdjustBalance(ctx context.Context, accountID string, deltaCents int64) (int64, error) {
	st, err := a.t.state()
	if err != nil {
		return 0, err
	}
	acc, ok := st.accounts[accountID]
	if !ok {
		return 0, apperrors.ErrAccountNotFound
	}
	balance, err := domain.ApplyDelta(acc.BalanceCents, deltaCents)
	if err != nil {
		return 0, err
	}
	acc.BalanceCents = balance
	st.accounts[accountID] = acc
	return acc.BalanceCents, nil
}

type txTransactions struct{ t *memTx }

func (x txTransactions) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	st, err := x.t.state()
	if err != nil {
		return nil, err
	}
	txn, ok := st.transactions[transactionID]
	if !ok {
		return nil, apperrors.ErrTransactionNotFound
	}
	return &txn, nil
}

func (x txTransactions) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	st, err := x.t.state()
	if err != nil {
		return err
	}
	if _, ok := st.transactions[txn.TransactionID]; ok {
		return fmt.Errorf("%w: transaction with ID %s already exists", apperrors.ErrDuplicate, txn.TransactionID)
	}
	if err := st.checkTransactionRefs(txn); err != nil {
		return err
	}
	st.transactions[txn.TransactionID] = txn
	return nil
}

func (x txTransactions) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	st, err := x.t.state()
	if err != nil {
		return err
	}
	existing, ok := st.transactions[txn.TransactionID]
	if !ok {
		return apperrors.ErrTransactionNotFound
	}
	if err := st.checkTransactionRefs(txn); err != nil {
		return err
	}
	txn.CreatedAt = existing.CreatedAt
	st.transactions[txn.TransactionID] = txn
	return nil
}

func (x txTransactions) DeleteTransaction(ctx context.Context, transactionID string) error {
	st, err := x.t.state()
	if err != nil {
		return err
	}
	if _, ok := st.transactions[transactionID]; !ok {
		return apperrors.ErrTransactionNotFound
	}
	delete(st.transactions, transactionID)
	return nil
}
