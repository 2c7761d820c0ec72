package handlers

import (
	"fmt"
	"time"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
)

const dateOnly = "2006-01-02"

// parseDateParam accepts RFC 3339 or a bare YYYY-MM-DD, which is read as
// midnight in loc.
func parseDateParam(value string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	t, err := time.ParseInLocation(dateOnly, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not an RFC 3339 timestamp or YYYY-MM-DD date", apperrors.ErrValidation, value)
	}
	return t, nil
}

// optionalDateParam parses value when present and returns nil otherwise.
func optionalDateParam(value string, loc *time.Location) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	t, err := parseDateParam(value, loc)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
