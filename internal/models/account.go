package models

import "time"

// Account is the persisted form of an account row.
type Account struct {
	AccountID    string    `db:"id"`
	Name         string    `db:"name"`
	AccountType  string    `db:"type"`
	BankID       *string   `db:"bank_id"` // Nullable
	Currency     string    `db:"currency"`
	BalanceCents int64     `db:"balance_cents"`
	CreatedAt    time.Time `db:"created_at"`
}
