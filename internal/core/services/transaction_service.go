package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/budget_tracker/internal/core/ports/services"
	"github.com/SscSPs/budget_tracker/internal/dto"
	"github.com/google/uuid"
)

// transactionService keeps every account balance equal to its opening
// balance plus the sum of its transactions. Each mutation writes the record
// and the balance change in a single unit of work.
type transactionService struct {
	BaseService
	txnRepo           portsrepo.TransactionRepositoryFacade
	accountRepo       portsrepo.AccountReader
	categoryRepo      portsrepo.CategoryReader
	signCheckOnUpdate bool
}

// TransactionOption configures the transaction service.
type TransactionOption func(*transactionService)

// WithSignCheckOnUpdate controls whether updates re-check the amount sign
// against the effective category. Enabled by default.
func WithSignCheckOnUpdate(enabled bool) TransactionOption {
	return func(s *transactionService) {
		s.signCheckOnUpdate = enabled
	}
}

// WithTransactionServiceOptions applies shared service options.
func WithTransactionServiceOptions(opts ...Option) TransactionOption {
	return func(s *transactionService) {
		for _, opt := range opts {
			opt(&s.BaseService)
		}
	}
}

// NewTransactionService creates the transaction service.
func NewTransactionService(
	txnRepo portsrepo.TransactionRepositoryFacade,
	accountRepo portsrepo.AccountReader,
	categoryRepo portsrepo.CategoryReader,
	opts ...TransactionOption,
) portssvc.TransactionSvcFacade {
	s := &transactionService{
		BaseService:       newBaseService(nil),
		txnRepo:           txnRepo,
		accountRepo:       accountRepo,
		categoryRepo:      categoryRepo,
		signCheckOnUpdate: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// withinTx runs fn in a unit of work and commits when fn succeeds. The
// deferred rollback is a no-op once the unit has been committed.
func (s *transactionService) withinTx(ctx context.Context, fn func(tx portsrepo.Tx) error) error {
	tx, err := s.txnRepo.Begin(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to begin unit of work")
		return fmt.Errorf("failed to begin unit of work: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			s.LogError(ctx, rbErr, "Failed to roll back unit of work")
		}
	}()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		s.LogError(ctx, err, "Failed to commit unit of work")
		return fmt.Errorf("failed to commit unit of work: %w", err)
	}
	return nil
}

// lockedBalances holds the balances read under lock. Every adjustment is
// checked against them before it is written.
type lockedBalances map[string]int64

func (b lockedBalances) adjust(ctx context.Context, tx portsrepo.Tx, accountID string, deltaCents int64) (int64, error) {
	if _, err := domain.ApplyDelta(b[accountID], deltaCents); err != nil {
		return 0, fmt.Errorf("account %s: %w", accountID, err)
	}
	balance, err := tx.Accounts().AdjustBalance(ctx, accountID, deltaCents)
	if err != nil {
		return 0, err
	}
	b[accountID] = balance
	return balance, nil
}

// lockAccounts takes row locks in ID order so two writers touching the same
// pair of accounts cannot deadlock.
func lockAccounts(ctx context.Context, tx portsrepo.Tx, accountIDs ...string) (lockedBalances, error) {
	ids := make([]string, 0, len(accountIDs))
	seen := make(map[string]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	locked := make(lockedBalances, len(ids))
	for _, id := range ids {
		acc, err := tx.Accounts().FindAccountByIDForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		locked[id] = acc.BalanceCents
	}
	return locked, nil
}

func normalizeDate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

func (s *transactionService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest) (*portssvc.TransactionResult, error) {
	amount := req.AmountCents.Int64()
	if err := domain.ValidateTransactionAmount(amount); err != nil {
		return nil, err
	}
	if err := s.ValidateRequest(req); err != nil {
		return nil, err
	}

	if _, err := s.accountRepo.FindAccountByID(ctx, req.AccountID); err != nil {
		return nil, err
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckAmountDirection(category.Direction, amount); err != nil {
		s.LogDebug(ctx, "Rejected transaction with mismatched category",
			slog.String("category_id", category.CategoryID),
			slog.Int64("amount_cents", amount))
		return nil, err
	}

	now := s.Now()
	date := now
	if req.Date != nil {
		date = normalizeDate(*req.Date)
	}
	categoryID := category.CategoryID
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		AccountID:     req.AccountID,
		CategoryID:    &categoryID,
		AmountCents:   amount,
		Date:          date,
		Description:   req.Description,
		CreatedAt:     now,
	}

	var balance int64
	err = s.withinTx(ctx, func(tx portsrepo.Tx) error {
		locked, err := lockAccounts(ctx, tx, txn.AccountID)
		if err != nil {
			return err
		}
		if err := tx.Transactions().SaveTransaction(ctx, txn); err != nil {
			return err
		}
		balance, err = locked.adjust(ctx, tx, txn.AccountID, txn.AmountCents)
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to create transaction", slog.String("account_id", txn.AccountID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("account_id", txn.AccountID),
		slog.Int64("amount_cents", txn.AmountCents),
		slog.Int64("balance_cents", balance))
	return &portssvc.TransactionResult{
		Transaction: txn,
		Balances:    map[string]int64{txn.AccountID: balance},
	}, nil
}

func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	if filter.Limit <= 0 {
		filter.Limit = dto.DefaultTransactionPageSize
	}
	txns, err := s.txnRepo.ListTransactions(ctx, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	if txns == nil {
		return []domain.Transaction{}, nil
	}
	return txns, nil
}

// effectiveCategory returns the category an updated transaction will carry.
// A stored reference that no longer resolves counts as no category.
func (s *transactionService) effectiveCategory(ctx context.Context, original *domain.Transaction, requested *string) (*domain.Category, error) {
	if requested != nil {
		return s.categoryRepo.FindCategoryByID(ctx, *requested)
	}
	if original.CategoryID == nil {
		return nil, nil
	}
	category, err := s.categoryRepo.FindCategoryByID(ctx, *original.CategoryID)
	if errors.Is(err, apperrors.ErrNotFound) {
		return nil, nil
	}
	return category, err
}

func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest) (*portssvc.TransactionResult, error) {
	if req.AmountCents != nil {
		if err := domain.ValidateTransactionAmount(req.AmountCents.Int64()); err != nil {
			return nil, err
		}
	}

	original, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, original.AccountID); err != nil {
		return nil, err
	}
	targetAccountID := original.AccountID
	if req.AccountID != nil {
		targetAccountID = *req.AccountID
		if _, err := s.accountRepo.FindAccountByID(ctx, targetAccountID); err != nil {
			return nil, err
		}
	}
	category, err := s.effectiveCategory(ctx, original, req.CategoryID)
	if err != nil {
		return nil, err
	}

	amount := original.AmountCents
	if req.AmountCents != nil {
		amount = req.AmountCents.Int64()
	}
	if s.signCheckOnUpdate && category != nil {
		if err := domain.CheckAmountDirection(category.Direction, amount); err != nil {
			return nil, err
		}
	}

	var updated domain.Transaction
	balances := make(map[string]int64, 2)
	err = s.withinTx(ctx, func(tx portsrepo.Tx) error {
		current, err := tx.Transactions().FindTransactionByID(ctx, transactionID)
		if err != nil {
			return err
		}
		locked, err := lockAccounts(ctx, tx, current.AccountID, targetAccountID)
		if err != nil {
			return err
		}

		updated = *current
		updated.AccountID = targetAccountID
		updated.AmountCents = amount
		if req.CategoryID != nil {
			categoryID := *req.CategoryID
			updated.CategoryID = &categoryID
		}
		if req.Date != nil {
			updated.Date = normalizeDate(*req.Date)
		}
		if req.Description != nil {
			updated.Description = req.Description
		}
		if err := tx.Transactions().UpdateTransaction(ctx, updated); err != nil {
			return err
		}

		if current.AccountID == updated.AccountID {
			delta, err := domain.AmountDelta(current.AmountCents, updated.AmountCents)
			if err != nil {
				return err
			}
			bal, err := locked.adjust(ctx, tx, updated.AccountID, delta)
			if err != nil {
				return err
			}
			balances[updated.AccountID] = bal
			return nil
		}

		oldBal, err := locked.adjust(ctx, tx, current.AccountID, -current.AmountCents)
		if err != nil {
			return err
		}
		newBal, err := locked.adjust(ctx, tx, updated.AccountID, updated.AmountCents)
		if err != nil {
			return err
		}
		balances[current.AccountID] = oldBal
		balances[updated.AccountID] = newBal
		return nil
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		}
		return nil, err
	}

	s.LogInfo(ctx, "Transaction updated",
		slog.String("transaction_id", transactionID),
		slog.Int("accounts_touched", len(balances)))
	return &portssvc.TransactionResult{Transaction: updated, Balances: balances}, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string) error {
	original, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if errors.Is(err, apperrors.ErrNotFound) {
		s.LogDebug(ctx, "Delete of unknown transaction ignored", slog.String("transaction_id", transactionID))
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := s.accountRepo.FindAccountByID(ctx, original.AccountID); err != nil {
		return err
	}

	var balance int64
	deleted := true
	err = s.withinTx(ctx, func(tx portsrepo.Tx) error {
		current, err := tx.Transactions().FindTransactionByID(ctx, transactionID)
		if errors.Is(err, apperrors.ErrNotFound) {
			// removed by a concurrent writer
			deleted = false
			return nil
		}
		if err != nil {
			return err
		}
		locked, err := lockAccounts(ctx, tx, current.AccountID)
		if err != nil {
			return err
		}
		if err := tx.Transactions().DeleteTransaction(ctx, transactionID); err != nil {
			return err
		}
		balance, err = locked.adjust(ctx, tx, current.AccountID, -current.AmountCents)
		return err
	})
	if err != nil {
		if !isClientError(err) {
			s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		}
		return err
	}

	if deleted {
		s.LogInfo(ctx, "Transaction deleted",
			slog.String("transaction_id", transactionID),
			slog.Int64("balance_cents", balance))
	}
	return nil
}

// isClientError reports whether err is one the caller caused and that
// does not deserve an error log line.
func isClientError(err error) bool {
	return errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrCategoryMismatch)
}
