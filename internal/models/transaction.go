package models

import "time"

// Transaction is the persisted form of a transaction row.
type Transaction struct {
	TransactionID string    `db:"id"`
	AccountID     string    `db:"account_id"`
	CategoryID    *string   `db:"category_id"` // Nullable, cleared when the category goes away
	AmountCents   int64     `db:"amount_cents"`
	Date          time.Time `db:"date"`
	Description   *string   `db:"description"`
	TransferID    *string   `db:"transfer_id"`
	CreatedAt     time.Time `db:"created_at"`
}
