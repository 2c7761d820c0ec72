package sqlitedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker/internal/models"
	"github.com/SscSPs/budget_tracker/internal/utils/mapping"
)

const transactionColumns = `id, account_id, category_id, amount_cents, date, description, transfer_id, created_at`

// SQLiteTransactionRepository reads transactions and opens units of work.
type SQLiteTransactionRepository struct {
	db *sql.DB
}

var _ portsrepo.TransactionRepositoryFacade = (*SQLiteTransactionRepository)(nil)

func transactionWhere(f portsrepo.TransactionFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if f.AccountID != nil {
		conds = append(conds, "account_id = ?")
		args = append(args, *f.AccountID)
	}
	if f.CategoryID != nil {
		conds = append(conds, "category_id = ?")
		args = append(args, *f.CategoryID)
	}
	if f.From != nil {
		conds = append(conds, "date >= ?")
		args = append(args, formatTime(*f.From))
	}
	if f.ToExclusive != nil {
		conds = append(conds, "date < ?")
		args = append(args, formatTime(*f.ToExclusive))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanTransaction(row scanner) (domain.Transaction, error) {
	var (
		m             models.Transaction
		date, created string
	)
	if err := row.Scan(&m.TransactionID, &m.AccountID, &m.CategoryID, &m.AmountCents, &date, &m.Description, &m.TransferID, &created); err != nil {
		return domain.Transaction{}, err
	}
	var err error
	if m.Date, err = parseTime(date); err != nil {
		return domain.Transaction{}, err
	}
	if m.CreatedAt, err = parseTime(created); err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

func findTransaction(ctx context.Context, db dbtx, transactionID string) (*domain.Transaction, error) {
	txn, err := scanTransaction(db.QueryRowContext(ctx, `SELECT `+transactionColumns+` FROM "transaction" WHERE id = ?`, transactionID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

func (r *SQLiteTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return findTransaction(ctx, r.db, transactionID)
}

func (r *SQLiteTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	where, args := transactionWhere(filter)
	limit, offset := filter.Page()
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM "transaction"`+where+` ORDER BY date DESC, created_at DESC, id DESC LIMIT ? OFFSET ?`,
		args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		txns = append(txns, txn)
	}
	return txns, rows.Err()
}

func (r *SQLiteTransactionRepository) SumTransactions(ctx context.Context, filter portsrepo.TransactionFilter) (int64, error) {
	where, args := transactionWhere(filter)
	var total int64
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM "transaction"`+where, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("sum transactions: %w", err)
	}
	return total, nil
}

func (r *SQLiteTransactionRepository) SummarizeTransactions(ctx context.Context, filter portsrepo.TransactionFilter) (portsrepo.TransactionSummary, error) {
	where, args := transactionWhere(filter)
	var summary portsrepo.TransactionSummary

	err := r.db.QueryRowContext(ctx, `SELECT
		COALESCE(SUM(CASE WHEN amount_cents > 0 THEN amount_cents ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN amount_cents < 0 THEN amount_cents ELSE 0 END), 0)
		FROM "transaction"`+where, args...).Scan(&summary.IncomeCents, &summary.ExpensesCents)
	if err != nil {
		return summary, fmt.Errorf("summarize transactions: %w", err)
	}

	// NULL sorts first in ascending order.
	rows, err := r.db.QueryContext(ctx,
		`SELECT category_id, SUM(amount_cents), COUNT(*) FROM "transaction"`+where+` GROUP BY category_id ORDER BY category_id`,
		args...)
	if err != nil {
		return summary, fmt.Errorf("group transactions by category: %w", err)
	}
	defer rows.Close()

	summary.ByCategory = []domain.CategoryTotal{}
	for rows.Next() {
		var ct domain.CategoryTotal
		if err := rows.Scan(&ct.CategoryID, &ct.TotalCents, &ct.Transactions); err != nil {
			return summary, fmt.Errorf("scan category total: %w", err)
		}
		summary.ByCategory = append(summary.ByCategory, ct)
	}
	return summary, rows.Err()
}

func (r *SQLiteTransactionRepository) Begin(ctx context.Context) (portsrepo.Tx, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, internalError("failed to begin transaction", err)
	}
	return &sqliteUnitOfWork{tx: tx}, nil
}

type sqliteTxTransactions struct {
	db dbtx
}

var _ portsrepo.TransactionTxRepository = (*sqliteTxTransactions)(nil)

func (w *sqliteTxTransactions) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return findTransaction(ctx, w.db, transactionID)
}

func (w *sqliteTxTransactions) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	_, err := w.db.ExecContext(ctx, `INSERT INTO "transaction" (`+transactionColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.TransactionID, m.AccountID, m.CategoryID, m.AmountCents, formatTime(m.Date), m.Description, m.TransferID, formatTime(m.CreatedAt))
	if err != nil {
		return fmt.Errorf("save transaction %s: %w", m.TransactionID, mapSQLiteError(err))
	}
	return nil
}

func (w *sqliteTxTransactions) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	res, err := w.db.ExecContext(ctx,
		`UPDATE "transaction" SET account_id = ?, category_id = ?, amount_cents = ?, date = ?, description = ? WHERE id = ?`,
		m.AccountID, m.CategoryID, m.AmountCents, formatTime(m.Date), m.Description, m.TransactionID)
	if err != nil {
		return fmt.Errorf("update transaction %s: %w", m.TransactionID, mapSQLiteError(err))
	}
	return rowsAffected(res, apperrors.ErrTransactionNotFound)
}

func (w *sqliteTxTransactions) DeleteTransaction(ctx context.Context, transactionID string) error {
	res, err := w.db.ExecContext(ctx, `DELETE FROM "transaction" WHERE id = ?`, transactionID)
	if err != nil {
		return fmt.Errorf("delete transaction %s: %w", transactionID, mapSQLiteError(err))
	}
	return rowsAffected(res, apperrors.ErrTransactionNotFound)
}
