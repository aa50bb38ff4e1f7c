package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specview/specview/pkg/errdefs"
)

const sampleYAML = `
openapi: 3.0.3
info:
  title: Ordered API
  version: 1.0.0
paths:
  /zebra:
    get:
      operationId: getZebra
      responses:
        '200':
          description: ok
  /alpha:
    get:
      operationId: getAlpha
      responses:
        '200':
          description: ok
  /middle:
    get:
      operationId: getMiddle
      responses:
        '200':
          description: ok
`

const sampleJSON = `{
  "openapi": "3.0.3",
  "info": {"title": "JSON API", "version": "2.0.0"},
  "paths": {
    "/b": {"get": {"operationId": "getB", "responses": {"200": {"description": "ok"}}}},
    "/a": {"get": {"operationId": "getA", "responses": {"200": {"description": "ok"}}}}
  }
}`

func TestLoadBytesPreservesPathOrder(t *testing.T) {
	doc, err := LoadBytes([]byte(sampleYAML), "inline")
	require.NoError(t, err)
	assert.Equal(t, []string{"/zebra", "/alpha", "/middle"}, doc.PathOrder)
	assert.Equal(t, "yaml", doc.Format)
	assert.Equal(t, "Ordered API", doc.Doc.Info.Title)
}

func TestLoadBytesJSON(t *testing.T) {
	doc, err := LoadBytes([]byte(sampleJSON), "inline")
	require.NoError(t, err)
	assert.Equal(t, "json", doc.Format)
	assert.Equal(t, []string{"/b", "/a"}, doc.PathOrder)
}

func TestLoadBytesRejectsNonSpec(t *testing.T) {
	_, err := LoadBytes([]byte(`{"hello": "world"}`), "inline")
	require.Error(t, err)
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeLoad))

	_, err = LoadBytes([]byte(`: not yaml at all [`), "inline")
	require.Error(t, err)
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeLoad))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "api.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	doc, err := Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, doc.Source)
	assert.Len(t, doc.PathOrder, 3)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeLoad))
}

func TestLoadFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(sampleYAML))
	}))
	defer srv.Close()

	doc, err := Load(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, srv.URL, doc.Source)
	assert.Equal(t, "Ordered API", doc.Doc.Info.Title)
}

func TestLoadFromURLNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := Load(context.Background(), srv.URL)
	require.Error(t, err)
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeNetwork))
}
