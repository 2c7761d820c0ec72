package domain

import "time"

// Bank is a financial institution that accounts may reference.
type Bank struct {
	BankID      string    `json:"bankID"`
	Name        string    `json:"name"` // unique
	Description *string   `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}
