package pgsql

import (
	"errors"
	"testing"

	"github.com/SscSPs/budget_tracker/internal/apperrors"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestMapPgError(t *testing.T) {
	tests := []struct {
		name string
		code string
		want error
	}{
		{"unique", "23505", apperrors.ErrDuplicate},
		{"foreign key", "23503", apperrors.ErrConstraintViolation},
		{"check on amount", "23514", apperrors.ErrConstraintViolation},
		{"not null", "23502", apperrors.ErrConstraintViolation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := mapPgError(&pgconn.PgError{Code: tt.code, ConstraintName: "transaction_amount_cents_check"})
			assert.ErrorIs(t, err, tt.want)
		})
	}

	// numeric_value_out_of_range is not a constraint the caller can fix
	other := &pgconn.PgError{Code: "22003"}
	assert.Same(t, other, mapPgError(other))

	plain := errors.New("connection reset")
	assert.Equal(t, plain, mapPgError(plain))
}
