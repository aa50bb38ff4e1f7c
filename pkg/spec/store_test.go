package spec

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func loadFixture(t *testing.T, name string) *Store {
	t.Helper()
	store := NewStore(zaptest.NewLogger(t))
	err := store.Load(context.Background(), filepath.Join("testdata", name))
	require.NoError(t, err)
	return store
}

func TestStoreEmptyState(t *testing.T) {
	store := NewStore(zaptest.NewLogger(t))

	assert.False(t, store.HasSchema())
	assert.Nil(t, store.Document())
	assert.Empty(t, store.Source())
	assert.Nil(t, store.Tags())
	assert.Empty(t, store.FindOperations(""))

	_, ok := store.GetMetadata()
	assert.False(t, ok)
	_, ok = store.GetOperation("getHealth")
	assert.False(t, ok)
	_, ok = store.GetOperationByMethodPath("GET", "/health")
	assert.False(t, ok)
}

func TestStoreLoadSimple(t *testing.T) {
	store := loadFixture(t, "simple-api.yaml")

	require.True(t, store.HasSchema())
	meta, ok := store.GetMetadata()
	require.True(t, ok)
	assert.Equal(t, "Simple API", meta.Title)
	assert.Equal(t, "1.0.0", meta.Version)

	op, ok := store.GetOperation("getHealth")
	require.True(t, ok)
	assert.Equal(t, "GET", op.Method)
	assert.Equal(t, "/health", op.Path)
	assert.Equal(t, "Health check", op.Summary)
}

func TestStoreLookupByMethodPath(t *testing.T) {
	store := loadFixture(t, "simple-api.yaml")

	op, ok := store.GetOperationByMethodPath("get", "/users/{userId}")
	require.True(t, ok)
	assert.Equal(t, "getUser", op.ID)
	assert.Equal(t, []string{"userId"}, op.PathVars)

	// The path must match the document text, template braces included.
	_, ok = store.GetOperationByMethodPath("GET", "/users/123")
	assert.False(t, ok)
}

func TestStoreIndexOrder(t *testing.T) {
	store := loadFixture(t, "simple-api.yaml")

	ops := store.FindOperations("")
	require.Len(t, ops, 4)
	// Document path order, then method order within a path.
	assert.Equal(t, "getHealth", ops[0].ID)
	assert.Equal(t, "listUsers", ops[1].ID)
	assert.Equal(t, "createUser", ops[2].ID)
	assert.Equal(t, "getUser", ops[3].ID)
}

func TestFindOperations(t *testing.T) {
	store := loadFixture(t, "simple-api.yaml")

	matches := store.FindOperations("user")
	assert.Len(t, matches, 3)

	// Case-insensitive across id, summary, description, and path.
	matches = store.FindOperations("HEALTH")
	require.Len(t, matches, 1)
	assert.Equal(t, "getHealth", matches[0].ID)

	assert.Empty(t, store.FindOperations("no-such-thing"))
}

func TestStoreTags(t *testing.T) {
	store := loadFixture(t, "complex-api.yaml")
	assert.Equal(t, []string{"users", "admin"}, store.Tags())
}

func TestStoreSwapLeavesNoResidue(t *testing.T) {
	store := loadFixture(t, "complex-api.yaml")

	_, ok := store.GetOperation("setUserRoles")
	require.True(t, ok)

	err := store.Load(context.Background(), filepath.Join("testdata", "simple-api.yaml"))
	require.NoError(t, err)

	// Operations unique to the old document must be gone.
	_, ok = store.GetOperation("setUserRoles")
	assert.False(t, ok)
	_, ok = store.GetOperation("ping")
	assert.False(t, ok)

	meta, _ := store.GetMetadata()
	assert.Equal(t, "Simple API", meta.Title)
	assert.Equal(t, []string{"users"}, store.Tags())
	assert.Len(t, store.FindOperations(""), 4)
}

func TestStoreFailedLoadKeepsPrevious(t *testing.T) {
	store := loadFixture(t, "simple-api.yaml")

	err := store.Load(context.Background(), filepath.Join("testdata", "missing.yaml"))
	require.Error(t, err)

	assert.True(t, store.HasSchema())
	meta, _ := store.GetMetadata()
	assert.Equal(t, "Simple API", meta.Title)
}

func TestStoreClear(t *testing.T) {
	store := loadFixture(t, "simple-api.yaml")

	store.Clear()
	assert.False(t, store.HasSchema())
	assert.Empty(t, store.FindOperations(""))

	// Idempotent.
	store.Clear()
	assert.False(t, store.HasSchema())
}

func TestStoreLoadBytes(t *testing.T) {
	store := NewStore(zaptest.NewLogger(t))
	content := `
openapi: 3.0.3
info:
  title: Inline API
  version: 0.1.0
paths:
  /ping:
    get:
      operationId: ping
      responses:
        '204':
          description: ok
`
	require.NoError(t, store.LoadBytes([]byte(content), "db:inline"))
	assert.Equal(t, "db:inline", store.Source())
	_, ok := store.GetOperation("ping")
	assert.True(t, ok)
}
