package utils

import (
	"testing"
	"time"

	"github.com/SscSPs/budget_tracker/internal/core/domain"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCentsToDecimal(t *testing.T) {
	assert.Equal(t, "1250", CentsToDecimal(125000).String())
	assert.Equal(t, "-0.05", CentsToDecimal(-5).String())
	assert.Equal(t, "-50.00 EUR", FormatCents(-5000, domain.Currency("EUR")))
	assert.Equal(t, "0.00 EUR", FormatCents(0, domain.Currency("EUR")))
}

func TestIssueAccessToken(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	signed, err := IssueAccessToken("secret-secret-secret", "budget-tracker", "owner", time.Hour, now)
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	_, err = jwt.ParseWithClaims(signed, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret-secret-secret"), nil
	})
	require.NoError(t, err)
	assert.Equal(t, "owner", claims.Subject)
	assert.Equal(t, "budget-tracker", claims.Issuer)
	assert.True(t, claims.ExpiresAt.Time.Equal(now.Add(time.Hour)))

	_, err = IssueAccessToken("", "budget-tracker", "owner", time.Hour, now)
	assert.Error(t, err)
	_, err = IssueAccessToken("secret", "budget-tracker", "", time.Hour, now)
	assert.Error(t, err)
}
