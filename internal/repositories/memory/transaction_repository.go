package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
)

type transactionRepository struct {
	store *Store
}

var _ portsrepo.TransactionRepositoryFacade = (*transactionRepository)(nil)

func (r *transactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	var (
		txn domain.Transaction
		ok  bool
	)
	r.store.read(func(st *state) { txn, ok = st.transactions[transactionID] })
	if !ok {
		return nil, apperrors.ErrTransactionNotFound
	}
	return &txn, nil
}

func (r *transactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	var matched []domain.Transaction
	r.store.read(func(st *state) { matched = st.matching(filter) })

	sort.Slice(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		if !a.Date.Equal(b.Date) {
			return a.Date.After(b.Date)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.TransactionID > b.TransactionID
	})

	limit, offset := filter.Page()
	if offset >= len(matched) {
		return []domain.Transaction{}, nil
	}
	end := offset + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[offset:end], nil
}

func (r *transactionRepository) SumTransactions(ctx context.Context, filter portsrepo.TransactionFilter) (int64, error) {
	var total int64
	r.store.read(func(st *state) {
		for _, txn := range st.matching(filter) {
			total += txn.AmountCents
		}
	})
	return total, nil
}

func (r *transactionRepository) SummarizeTransactions(ctx context.Context, filter portsrepo.TransactionFilter) (portsrepo.TransactionSummary, error) {
	var summary portsrepo.TransactionSummary
	byCategory := map[string]*domain.CategoryTotal{}

	r.store.read(func(st *state) {
		for _, txn := range st.matching(filter) {
			if txn.AmountCents > 0 {
				summary.IncomeCents += txn.AmountCents
			} else {
				summary.ExpensesCents += txn.AmountCents
			}
			key := ""
			if txn.CategoryID != nil {
				key = *txn.CategoryID
			}
			total, ok := byCategory[key]
			if !ok {
				total = &domain.CategoryTotal{CategoryID: txn.CategoryID}
				byCategory[key] = total
			}
			total.TotalCents += txn.AmountCents
			total.Transactions++
		}
	})

	keys := make([]string, 0, len(byCategory))
	for k := range byCategory {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	summary.ByCategory = make([]domain.CategoryTotal, 0, len(keys))
	for _, k := range keys {
		summary.ByCategory = append(summary.ByCategory, *byCategory[k])
	}
	return summary, nil
}

func (r *transactionRepository) Begin(ctx context.Context) (portsrepo.Tx, error) {
	r.store.writeMu.Lock()
	r.store.mu.RLock()
	work := r.store.cur.clone()
	r.store.mu.RUnlock()
	return &memTx{store: r.store, work: work}, nil
}

func (st *state) matching(filter portsrepo.TransactionFilter) []domain.Transaction {
	out := []domain.Transaction{}
	for _, txn := range st.transactions {
		if filter.Matches(txn) {
			out = append(out, txn)
		}
	}
	return out
}

func (st *state) checkTransactionRefs(txn domain.Transaction) error {
	if _, ok := st.accounts[txn.AccountID]; !ok {
		return fmt.Errorf("%w: account %s does not exist", apperrors.ErrConstraintViolation, txn.AccountID)
	}
	if txn.CategoryID != nil {
		if _, ok := st.categories[*txn.CategoryID]; !ok {
			return fmt.Errorf("%w: category %s does not exist", apperrors.ErrConstraintViolation, *txn.CategoryID)
		}
	}
	return nil
}
