package models

import "time"

// Bank is the persisted form of a bank row.
type Bank struct {
	BankID      string    `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}
