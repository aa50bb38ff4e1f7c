package spec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specview/specview/pkg/errdefs"
	"github.com/specview/specview/pkg/render"
)

func mustOp(t *testing.T, store *Store, id string) *Operation {
	t.Helper()
	op, ok := store.GetOperation(id)
	require.True(t, ok, "operation %s", id)
	return op
}

func TestGetHeadersNoHeadersAnywhere(t *testing.T) {
	store := loadFixture(t, "simple-api.yaml")

	for _, id := range []string{"getHealth", "listUsers", "createUser", "getUser"} {
		_, err := store.GetHeaders(mustOp(t, store, id), "")
		assert.ErrorIs(t, err, errdefs.ErrNoHeaders, id)
	}
}

func TestGetHeadersUndefinedStatusCode(t *testing.T) {
	store := loadFixture(t, "complex-api.yaml")
	op := mustOp(t, store, "listUsers")

	// listUsers defines 200 and 401 only.
	_, err := store.GetHeaders(op, "500")
	require.Error(t, err)
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeStatusCode))
	assert.Contains(t, err.Error(), "500")
	assert.Contains(t, err.Error(), "200")
	assert.Contains(t, err.Error(), "401")
}

func TestGetHeadersSpecificStatus(t *testing.T) {
	store := loadFixture(t, "complex-api.yaml")
	op := mustOp(t, store, "listUsers")

	headers, err := store.GetHeaders(op, "401")
	require.NoError(t, err)
	require.Len(t, headers, 1)
	require.Contains(t, headers, "401")
	assert.Contains(t, headers["401"], "WWW-Authenticate")
}

func TestGetHeadersPrefersSuccessResponses(t *testing.T) {
	store := loadFixture(t, "complex-api.yaml")
	op := mustOp(t, store, "setUserRoles")

	// Both 200 and 403 define headers; only the success response survives.
	headers, err := store.GetHeaders(op, "")
	require.NoError(t, err)
	require.Len(t, headers, 1)
	require.Contains(t, headers, "200")
	assert.Contains(t, headers["200"], "X-Role-Count")
}

func TestGetHeadersErrorOnlyFallback(t *testing.T) {
	store := loadFixture(t, "complex-api.yaml")

	content := `
openapi: 3.0.3
info:
  title: Error Headers API
  version: 1.0.0
paths:
  /thing:
    get:
      operationId: getThing
      responses:
        '200':
          description: ok
        '429':
          description: throttled
          headers:
            Retry-After:
              schema:
                type: integer
                minimum: 0
`
	require.NoError(t, store.LoadBytes([]byte(content), "inline"))
	op := mustOp(t, store, "getThing")

	// No success response defines headers, so the 429 headers surface.
	headers, err := store.GetHeaders(op, "")
	require.NoError(t, err)
	require.Contains(t, headers, "429")
	assert.Contains(t, headers["429"], "Retry-After")
}

func TestGetHeadersStatusWithoutHeaders(t *testing.T) {
	store := loadFixture(t, "complex-api.yaml")
	op := mustOp(t, store, "setUserRoles")

	// 403 has headers but getAuditLog's 200 has none.
	audit := mustOp(t, store, "getAuditLog")
	_, err := store.GetHeaders(audit, "200")
	assert.ErrorIs(t, err, errdefs.ErrNoHeaders)

	headers, err := store.GetHeaders(op, "403")
	require.NoError(t, err)
	assert.Contains(t, headers["403"], "X-Denied-Reason")
}

func TestGetHeadersSchemaSummaries(t *testing.T) {
	store := loadFixture(t, "complex-api.yaml")
	op := mustOp(t, store, "listUsers")

	headers, err := store.GetHeaders(op, "200")
	require.NoError(t, err)
	byName := headers["200"]

	assert.Equal(t, "integer (min: 0, max: 10000)",
		render.HeaderSchema(byName["X-RateLimit-Limit"]))
	assert.Equal(t, "string, uuid",
		render.HeaderSchema(byName["X-Request-Id"]))
}

func TestGetHeadersNilOperation(t *testing.T) {
	store := loadFixture(t, "complex-api.yaml")
	_, err := store.GetHeaders(nil, "")
	assert.ErrorIs(t, err, errdefs.ErrNoHeaders)
}
