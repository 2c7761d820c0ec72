// Package memory is an in-process ledger store. Units of work operate on a
// private copy of the data that replaces the shared copy on commit, so a
// failed or abandoned unit leaves no trace.
package memory

import (
	"sync"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
)

type state struct {
	banks        map[string]domain.Bank
	accounts     map[string]domain.Account
	categories   map[string]domain.Category
	transactions map[string]domain.Transaction
}

func newState() *state {
	return &state{
		banks:        map[string]domain.Bank{},
		accounts:     map[string]domain.Account{},
		categories:   map[string]domain.Category{},
		transactions: map[string]domain.Transaction{},
	}
}

func (s *state) clone() *state {
	c := &state{
		banks:        make(map[string]domain.Bank, len(s.banks)),
		accounts:     make(map[string]domain.Account, len(s.accounts)),
		categories:   make(map[string]domain.Category, len(s.categories)),
		transactions: make(map[string]domain.Transaction, len(s.transactions)),
	}
	for k, v := range s.banks {
		c.banks[k] = v
	}
	for k, v := range s.accounts {
		c.accounts[k] = v
	}
	for k, v := range s.categories {
		c.categories[k] = v
	}
	for k, v := range s.transactions {
		c.transactions[k] = v
	}
	return c
}

// Store holds the ledger. Writers are serialized by writeMu; readers only
// take mu for the duration of a copy.
type Store struct {
	writeMu sync.Mutex
	mu      sync.RWMutex
	cur     *state
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{cur: newState()}
}

// read runs fn against the committed state.
func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.cur)
}

// write runs fn as a single-statement unit of work.
func (s *Store) write(fn func(st *state) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	work := s.cur.clone()
	s.mu.RUnlock()

	if err := fn(work); err != nil {
		return err
	}

	s.mu.Lock()
	s.cur = work
	s.mu.Unlock()
	return nil
}

// NewRepositoryProvider exposes the store through the repository ports.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		BankRepo:        &bankRepository{store: store},
		AccountRepo:     &accountRepository{store: store},
		CategoryRepo:    &categoryRepository{store: store},
		TransactionRepo: &transactionRepository{store: store},
	}
}
