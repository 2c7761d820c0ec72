package domain

import (
	"fmt"
	"math"
	"time"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
)

// Transaction is a signed movement of money on one account. Positive amounts
// are income, negative amounts are expenses. Zero is never stored.
type Transaction struct {
	TransactionID string    `json:"transactionID"`
	AccountID     string    `json:"accountID"`
	CategoryID    *string   `json:"categoryID,omitempty"` // nil once the category is deleted
	AmountCents   int64     `json:"amountCents"`
	Date          time.Time `json:"date"` // effective date, the axis for point-in-time queries
	Description   *string   `json:"description,omitempty"`
	TransferID    *string   `json:"transferID,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// Transfer moves money from one account to another. The record is
// persisted but no operation creates transfers yet.
type Transfer struct {
	TransferID      string    `json:"transferID"`
	SourceAccountID string    `json:"sourceAccountID"`
	TargetAccountID string    `json:"targetAccountID"`
	AmountCents     int64     `json:"amountCents"` // positive
	Date            time.Time `json:"date"`
	Description     *string   `json:"description,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ValidateTransactionAmount rejects zero amounts. math.MinInt64 is rejected
// too, since reverting it would need its negation.
func ValidateTransactionAmount(amountCents int64) error {
	if amountCents == 0 {
		return apperrors.ErrInvalidAmount
	}
	if amountCents == math.MinInt64 {
		return fmt.Errorf("%w: %d cannot be reverted", apperrors.ErrInvalidAmount, amountCents)
	}
	return nil
}

// ApplyDelta returns balanceCents+deltaCents, or ErrInvalidAmount when the
// result does not fit in an int64.
func ApplyDelta(balanceCents, deltaCents int64) (int64, error) {
	sum := balanceCents + deltaCents
	if (deltaCents > 0 && sum < balanceCents) || (deltaCents < 0 && sum > balanceCents) {
		return 0, fmt.Errorf("%w: balance %d plus %d overflows", apperrors.ErrInvalidAmount, balanceCents, deltaCents)
	}
	return sum, nil
}

// AmountDelta returns toCents-fromCents, or ErrInvalidAmount when the
// difference does not fit in an int64.
func AmountDelta(fromCents, toCents int64) (int64, error) {
	diff := toCents - fromCents
	if (fromCents < 0 && diff < toCents) || (fromCents > 0 && diff > toCents) {
		return 0, fmt.Errorf("%w: change from %d to %d overflows", apperrors.ErrInvalidAmount, fromCents, toCents)
	}
	return diff, nil
}
