package dto

import (
	"fmt"
	"math"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/shopspring/decimal"
)

var (
	maxCents = decimal.NewFromInt(math.MaxInt64)
	minCents = decimal.NewFromInt(math.MinInt64)
)

// Cents is a signed amount in minor units. Decoding rejects any JSON value
// that is not an integral number representable as int64.
type Cents int64

func (c *Cents) UnmarshalJSON(b []byte) error {
	d, err := decimal.NewFromString(string(b))
	if err != nil {
		return fmt.Errorf("%w: %s is not a number", apperrors.ErrInvalidAmount, string(b))
	}
	if !d.IsInteger() {
		return fmt.Errorf("%w: %s is not a whole number of cents", apperrors.ErrInvalidAmount, d.String())
	}
	if d.GreaterThan(maxCents) || d.LessThan(minCents) {
		return fmt.Errorf("%w: %s is out of range", apperrors.ErrInvalidAmount, d.String())
	}
	*c = Cents(d.IntPart())
	return nil
}

// Int64 returns the amount as a plain integer.
func (c Cents) Int64() int64 {
	return int64(c)
}

// CentsPtr is a helper for optional amounts in update requests.
func CentsPtr(v int64) *Cents {
	c := Cents(v)
	return &c
}
