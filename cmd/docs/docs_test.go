package docs_test

import (
	"encoding/json"
	"testing"

	_ "github.com/SscSPs/budget_tracker/cmd/docs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

type swaggerDoc struct {
	BasePath    string                                `json:"basePath"`
	Paths       map[string]map[string]json.RawMessage `json:"paths"`
	Definitions map[string]json.RawMessage            `json:"definitions"`
}

func TestRegisteredDocListsEveryRoute(t *testing.T) {
	raw, err := swag.ReadDoc()
	require.NoError(t, err)

	var doc swaggerDoc
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))
	assert.Equal(t, "/api/v1", doc.BasePath)

	routes := map[string][]string{
		"/banks":                   {"get", "post"},
		"/banks/{id}":              {"get", "put", "delete"},
		"/accounts":                {"get", "post"},
		"/accounts/{id}":           {"get", "put", "delete"},
		"/accounts/{id}/balance":   {"get"},
		"/categories":              {"get", "post"},
		"/categories/{id}":         {"get", "put", "delete"},
		"/transactions":            {"get", "post"},
		"/transactions/{id}":       {"get", "put", "delete"},
		"/reports/monthly-summary": {"get"},
		"/reports/capital":         {"get"},
		"/reports/accounts":        {"get"},
	}
	for path, methods := range routes {
		require.Contains(t, doc.Paths, path)
		for _, m := range methods {
			assert.Contains(t, doc.Paths[path], m, "%s %s", m, path)
		}
	}

	for _, def := range []string{"dto.CreateTransactionRequest", "dto.TransactionMutationResponse", "dto.MonthlySummaryResponse", "handlers.ErrorResponse"} {
		assert.Contains(t, doc.Definitions, def)
	}
}
