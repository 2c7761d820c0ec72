package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
)

const (
	// DefaultListLimit is used when a filter carries no positive limit.
	DefaultListLimit = 100
	// MaxListLimit caps a single page.
	MaxListLimit = 500
)

// TransactionFilter narrows transaction queries. From is inclusive and
// ToExclusive is exclusive. Limit and Offset only apply to listing.
type TransactionFilter struct {
	AccountID   *string
	CategoryID  *string
	From        *time.Time
	ToExclusive *time.Time
	Limit       int
	Offset      int
}

// Page returns the effective limit and offset for a listing query.
func (f TransactionFilter) Page() (limit, offset int) {
	limit = f.Limit
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	offset = f.Offset
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// Matches reports whether t satisfies the filter predicates, ignoring paging.
func (f TransactionFilter) Matches(t domain.Transaction) bool {
	if f.AccountID != nil && t.AccountID != *f.AccountID {
		return false
	}
	if f.CategoryID != nil && (t.CategoryID == nil || *t.CategoryID != *f.CategoryID) {
		return false
	}
	if f.From != nil && t.Date.Before(*f.From) {
		return false
	}
	if f.ToExclusive != nil && !t.Date.Before(*f.ToExclusive) {
		return false
	}
	return true
}

// TransactionSummary holds the totals of every transaction matching a filter.
type TransactionSummary struct {
	IncomeCents   int64
	ExpensesCents int64
	ByCategory    []domain.CategoryTotal
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// ListTransactions returns one page ordered by date then creation time, newest first.
	ListTransactions(ctx context.Context, filter TransactionFilter) ([]domain.Transaction, error)

	// SumTransactions returns the sum of amounts matching filter, or 0 when none match.
	SumTransactions(ctx context.Context, filter TransactionFilter) (int64, error)

	// SummarizeTransactions splits the matching amounts into income and
	// expenses and groups them by category. Paging is ignored.
	SummarizeTransactions(ctx context.Context, filter TransactionFilter) (TransactionSummary, error)
}

// TransactionWriter defines write operations for transaction data. Writers
// never touch account balances; that is the caller's unit of work.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionManager
}
