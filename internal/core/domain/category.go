package domain

import "github.com/SscSPs/budget_tracker/internal/apperrors"

// CategoryDirection declares whether a category collects income or expenses.
type CategoryDirection string

const (
	Income  CategoryDirection = "INCOME"
	Expense CategoryDirection = "EXPENSE"
)

// IsValid reports whether d is INCOME or EXPENSE.
func (d CategoryDirection) IsValid() bool {
	return d == Income || d == Expense
}

// Category labels transactions. (Name, Direction) is unique.
type Category struct {
	CategoryID  string            `json:"categoryID"`
	Name        string            `json:"name"`
	Direction   CategoryDirection `json:"type"`
	Description *string           `json:"description,omitempty"`
}

// DirectionOf returns the direction implied by the sign of amountCents.
// Zero has no direction; callers reject it before asking.
func DirectionOf(amountCents int64) CategoryDirection {
	if amountCents > 0 {
		return Income
	}
	return Expense
}

// CheckAmountDirection verifies that the sign of amountCents agrees with the
// declared direction: INCOME needs a positive amount, EXPENSE a negative one.
func CheckAmountDirection(declared CategoryDirection, amountCents int64) error {
	detected := DirectionOf(amountCents)
	if detected != declared {
		return &apperrors.CategoryMismatchError{
			Detected: string(detected),
			Declared: string(declared),
		}
	}
	return nil
}
