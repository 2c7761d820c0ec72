package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/SscSPs/budget_tracker/internal/core/domain"
	portsrepo "github.com/SscSPs/budget_tracker/internal/core/ports/repositories"
	"github.com/SscSPs/budget_tracker/internal/models"
	"github.com/SscSPs/budget_tracker/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const transactionColumns = `id, account_id, category_id, amount_cents, date, description, transfer_id, created_at`

// PgxTransactionRepository reads transactions and opens units of work.
type PgxTransactionRepository struct {
	BaseRepository
	db querier
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}, db: pool}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// transactionWhere renders the filter predicates with $n placeholders.
func transactionWhere(f portsrepo.TransactionFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.AccountID != nil {
		add("account_id = $%d", *f.AccountID)
	}
	if f.CategoryID != nil {
		add("category_id = $%d", *f.CategoryID)
	}
	if f.From != nil {
		add("date >= $%d", f.From.UTC())
	}
	if f.ToExclusive != nil {
		add("date < $%d", f.ToExclusive.UTC())
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var m models.Transaction
	err := row.Scan(&m.TransactionID, &m.AccountID, &m.CategoryID, &m.AmountCents, &m.Date, &m.Description, &m.TransferID, &m.CreatedAt)
	if err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

func findTransaction(ctx context.Context, db querier, transactionID string) (*domain.Transaction, error) {
	txn, err := scanTransaction(db.QueryRow(ctx, `SELECT `+transactionColumns+` FROM "transaction" WHERE id = $1;`, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return &txn, nil
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return findTransaction(ctx, r.db, transactionID)
}

// ListTransactions returns one page, newest first.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.TransactionFilter) ([]domain.Transaction, error) {
	where, args := transactionWhere(filter)
	limit, offset := filter.Page()
	args = append(args, limit, offset)
	query := fmt.Sprintf(`SELECT %s FROM "transaction"%s ORDER BY date DESC, created_at DESC, id DESC LIMIT $%d OFFSET $%d;`,
		transactionColumns, where, len(args)-1, len(args))

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

func (r *PgxTransactionRepository) SumTransactions(ctx context.Context, filter portsrepo.TransactionFilter) (int64, error) {
	where, args := transactionWhere(filter)
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COALESCE(SUM(amount_cents), 0) FROM "transaction"`+where+`;`, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum transactions: %w", err)
	}
	return total, nil
}

func (r *PgxTransactionRepository) SummarizeTransactions(ctx context.Context, filter portsrepo.TransactionFilter) (portsrepo.TransactionSummary, error) {
	where, args := transactionWhere(filter)
	var summary portsrepo.TransactionSummary

	totals := `SELECT
		COALESCE(SUM(CASE WHEN amount_cents > 0 THEN amount_cents ELSE 0 END), 0),
		COALESCE(SUM(CASE WHEN amount_cents < 0 THEN amount_cents ELSE 0 END), 0)
		FROM "transaction"` + where + `;`
	if err := r.db.QueryRow(ctx, totals, args...).Scan(&summary.IncomeCents, &summary.ExpensesCents); err != nil {
		return summary, fmt.Errorf("failed to summarize transactions: %w", err)
	}

	grouped := `SELECT category_id, SUM(amount_cents), COUNT(*) FROM "transaction"` + where +
		` GROUP BY category_id ORDER BY category_id NULLS FIRST;`
	rows, err := r.db.Query(ctx, grouped, args...)
	if err != nil {
		return summary, fmt.Errorf("failed to group transactions by category: %w", err)
	}
	defer rows.Close()

	summary.ByCategory = []domain.CategoryTotal{}
	for rows.Next() {
		var ct domain.CategoryTotal
		if err := rows.Scan(&ct.CategoryID, &ct.TotalCents, &ct.Transactions); err != nil {
			return summary, fmt.Errorf("failed to scan category total: %w", err)
		}
		summary.ByCategory = append(summary.ByCategory, ct)
	}
	if err := rows.Err(); err != nil {
		return summary, fmt.Errorf("error iterating category totals: %w", err)
	}
	return summary, nil
}

// Begin opens a unit of work backed by a database transaction.
func (r *PgxTransactionRepository) Begin(ctx context.Context) (portsrepo.Tx, error) {
	tx, err := r.beginTx(ctx)
	if err != nil {
		return nil, err
	}
	return &pgxUnitOfWork{base: &r.BaseRepository, tx: tx}, nil
}

// pgxTxTransactions writes transactions through an open database transaction.
type pgxTxTransactions struct {
	db querier
}

var _ portsrepo.TransactionTxRepository = (*pgxTxTransactions)(nil)

func (w *pgxTxTransactions) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	return findTransaction(ctx, w.db, transactionID)
}

func (w *pgxTxTransactions) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `INSERT INTO "transaction" (` + transactionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8);`
	_, err := w.db.Exec(ctx, query, m.TransactionID, m.AccountID, m.CategoryID, m.AmountCents, m.Date.UTC(), m.Description, m.TransferID, m.CreatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, mapPgError(err))
	}
	return nil
}

func (w *pgxTxTransactions) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `UPDATE "transaction" SET account_id = $2, category_id = $3, amount_cents = $4, date = $5, description = $6 WHERE id = $1;`
	tag, err := w.db.Exec(ctx, query, m.TransactionID, m.AccountID, m.CategoryID, m.AmountCents, m.Date.UTC(), m.Description)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}

func (w *pgxTxTransactions) DeleteTransaction(ctx context.Context, transactionID string) error {
	tag, err := w.db.Exec(ctx, `DELETE FROM "transaction" WHERE id = $1;`, transactionID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, mapPgError(err))
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
