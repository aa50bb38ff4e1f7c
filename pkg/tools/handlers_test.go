package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/specview/specview/pkg/errdefs"
	"github.com/specview/specview/pkg/spec"
)

const fixtureYAML = `
openapi: 3.0.3
info:
  title: Widget API
  version: 1.4.0
  description: Widgets and their parts.
servers:
  - url: https://widgets.example.com
security:
  - bearerAuth: []
tags:
  - name: widgets
    description: Widget CRUD
paths:
  /widgets:
    get:
      operationId: listWidgets
      summary: List widgets
      tags: [widgets]
      responses:
        '200':
          description: A page of widgets
          headers:
            X-Total-Count:
              schema:
                type: integer
                minimum: 0
          content:
            application/json:
              schema:
                type: array
                items:
                  type: object
                  properties:
                    id:
                      type: string
                      format: uuid
                    name:
                      type: string
    post:
      operationId: createWidget
      summary: Create a widget
      tags: [widgets]
      requestBody:
        required: true
        content:
          application/json:
            schema:
              type: object
              required: [name]
              properties:
                name:
                  type: string
                  maxLength: 50
                weight:
                  type: number
                  minimum: 0
      responses:
        '201':
          description: Created
        '401':
          description: Unauthorized
  /widgets/{widgetId}:
    delete:
      operationId: deleteWidget
      summary: Delete a widget
      tags: [widgets]
      parameters:
        - name: widgetId
          in: path
          required: true
          schema:
            type: string
      responses:
        '204':
          description: Deleted
components:
  securitySchemes:
    bearerAuth:
      type: http
      scheme: bearer
      bearerFormat: JWT
`

func newTestToolset(t *testing.T) *Toolset {
	t.Helper()
	store := spec.NewStore(zaptest.NewLogger(t))
	require.NoError(t, store.LoadBytes([]byte(fixtureYAML), "inline"))
	return NewToolset(store, zaptest.NewLogger(t), 0)
}

func newEmptyToolset(t *testing.T) *Toolset {
	t.Helper()
	return NewToolset(spec.NewStore(zaptest.NewLogger(t)), zaptest.NewLogger(t), 0)
}

func TestToolsAnswerWithoutSchema(t *testing.T) {
	ts := newEmptyToolset(t)
	ctx := context.Background()

	for _, def := range ts.defs() {
		if def.name == "help" {
			continue
		}
		args := map[string]any{}
		if def.name == "search_operations" {
			args["query"] = "x"
		}
		text, err := def.run(ctx, args)
		require.NoError(t, err, def.name)
		assert.Equal(t, noSchemaText, text, def.name)
	}
}

func TestListOperations(t *testing.T) {
	ts := newTestToolset(t)

	text, err := ts.runListOperations(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Contains(t, text, "3 operations")
	assert.Contains(t, text, "GET /widgets")
	assert.Contains(t, text, "(listWidgets)")
	assert.Contains(t, text, "DELETE /widgets/{widgetId}")

	minimal, err := ts.runListOperations(context.Background(),
		map[string]any{"detail_level": "minimal"})
	require.NoError(t, err)
	assert.Contains(t, minimal, "POST /widgets")
	assert.NotContains(t, minimal, "createWidget")

	compact, err := ts.runListOperations(context.Background(),
		map[string]any{"compact": true})
	require.NoError(t, err)
	assert.Equal(t, minimal, compact)
}

func TestListOperationsTagFilter(t *testing.T) {
	ts := newTestToolset(t)

	text, err := ts.runListOperations(context.Background(),
		map[string]any{"tag": "widgets"})
	require.NoError(t, err)
	assert.Contains(t, text, "3 operations")

	text, err = ts.runListOperations(context.Background(),
		map[string]any{"tag": "nonexistent"})
	require.NoError(t, err)
	assert.Equal(t, "No operations found.", text)
}

func TestListOperationsFields(t *testing.T) {
	ts := newTestToolset(t)

	text, err := ts.runListOperations(context.Background(),
		map[string]any{"fields": []any{"id", "path"}})
	require.NoError(t, err)
	assert.Contains(t, text, "listWidgets")
	assert.Contains(t, text, "/widgets")
	assert.NotContains(t, text, "List widgets")
}

func TestSearchOperations(t *testing.T) {
	ts := newTestToolset(t)

	text, err := ts.runSearchOperations(context.Background(),
		map[string]any{"query": "delete"})
	require.NoError(t, err)
	assert.Contains(t, text, "deleteWidget")
	assert.NotContains(t, text, "createWidget")

	text, err = ts.runSearchOperations(context.Background(),
		map[string]any{"query": "zzz"})
	require.NoError(t, err)
	assert.Contains(t, text, `No operations match "zzz"`)

	// Empty query matches everything.
	text, err = ts.runSearchOperations(context.Background(),
		map[string]any{"query": ""})
	require.NoError(t, err)
	assert.Contains(t, text, "3 operations")
}

func TestResolveOperationErrors(t *testing.T) {
	ts := newTestToolset(t)

	_, err := ts.resolveOperation(map[string]any{})
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeMissingParameters))

	_, err = ts.resolveOperation(map[string]any{"method": "GET"})
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeMissingParameters))

	_, err = ts.resolveOperation(map[string]any{"operation_id": "nope"})
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeNotFound))

	_, err = ts.resolveOperation(map[string]any{"method": "GET", "path": "/nope"})
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeNotFound))

	op, err := ts.resolveOperation(map[string]any{"method": "get", "path": "/widgets"})
	require.NoError(t, err)
	assert.Equal(t, "listWidgets", op.ID)
}

func TestOperationDetails(t *testing.T) {
	ts := newTestToolset(t)

	text, err := ts.runOperationDetails(context.Background(),
		map[string]any{"operation_id": "createWidget"})
	require.NoError(t, err)
	assert.Contains(t, text, "POST /widgets")
	assert.Contains(t, text, "Request body (required)")
	assert.Contains(t, text, "application/json: object")
	assert.Contains(t, text, "201: Created")
	assert.Contains(t, text, "bearerAuth")
}

func TestOperationSummary(t *testing.T) {
	ts := newTestToolset(t)

	text, err := ts.runOperationSummary(context.Background(),
		map[string]any{"operation_id": "listWidgets"})
	require.NoError(t, err)
	assert.Equal(t, "GET /widgets (listWidgets): List widgets", text)
}

func TestRequestSchema(t *testing.T) {
	ts := newTestToolset(t)

	text, err := ts.runRequestSchema(context.Background(),
		map[string]any{"operation_id": "createWidget"})
	require.NoError(t, err)
	assert.Contains(t, text, "Request schema for POST /widgets")
	assert.Contains(t, text, `"maxLength": 50`)

	text, err = ts.runRequestSchema(context.Background(),
		map[string]any{"operation_id": "listWidgets"})
	require.NoError(t, err)
	assert.Contains(t, text, "defines no request body")
}

func TestRequestSchemaPaging(t *testing.T) {
	ts := newTestToolset(t)

	full, err := ts.runRequestSchema(context.Background(),
		map[string]any{"operation_id": "createWidget"})
	require.NoError(t, err)

	paged, err := ts.runRequestSchema(context.Background(),
		map[string]any{"operation_id": "createWidget", "chunk_size": float64(40)})
	require.NoError(t, err)
	assert.Contains(t, paged, "chunk 1 of")
	assert.Contains(t, paged, "request index 1")

	// Concatenating every chunk reproduces the unpaged schema text.
	var rebuilt strings.Builder
	for i := 0; ; i++ {
		text, err := ts.runRequestSchema(context.Background(), map[string]any{
			"operation_id": "createWidget",
			"chunk_size":   float64(40),
			"index":        float64(i),
		})
		require.NoError(t, err)
		body := text[strings.Index(text, "\n")+1:]
		if footer := strings.Index(body, "\n--- chunk"); footer >= 0 {
			body = body[:footer]
		}
		rebuilt.WriteString(body)
		if !strings.Contains(text, "request index") {
			break
		}
	}
	assert.Equal(t, full[strings.Index(full, "\n")+1:], rebuilt.String())
}

func TestRequestSchemaIndexOutOfRange(t *testing.T) {
	ts := newTestToolset(t)

	_, err := ts.runRequestSchema(context.Background(), map[string]any{
		"operation_id": "createWidget",
		"chunk_size":   float64(40),
		"index":        float64(999),
	})
	require.Error(t, err)
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeOutOfRange))
}

func TestResponseSchemaDefaultStatus(t *testing.T) {
	ts := newTestToolset(t)

	// listWidgets defines 200 with a body.
	text, err := ts.runResponseSchema(context.Background(),
		map[string]any{"operation_id": "listWidgets"})
	require.NoError(t, err)
	assert.Contains(t, text, "status 200")
	assert.Contains(t, text, `"uuid"`)

	// deleteWidget has only 204 with no content.
	text, err = ts.runResponseSchema(context.Background(),
		map[string]any{"operation_id": "deleteWidget"})
	require.NoError(t, err)
	assert.Contains(t, text, "no body schema")
}

func TestResponseSchemaStatusCoercion(t *testing.T) {
	ts := newTestToolset(t)

	// Numeric status codes address the same response as strings.
	_, errNum := ts.runResponseSchema(context.Background(),
		map[string]any{"operation_id": "createWidget", "status_code": float64(500)})
	require.Error(t, errNum)
	assert.True(t, errdefs.IsType(errNum, errdefs.ErrorTypeStatusCode))
	assert.Contains(t, errNum.Error(), `"500"`)

	_, errStr := ts.runResponseSchema(context.Background(),
		map[string]any{"operation_id": "createWidget", "status_code": "500"})
	require.Error(t, errStr)
	assert.Equal(t, errNum.Error(), errStr.Error())
}

func TestGetHeadersTool(t *testing.T) {
	ts := newTestToolset(t)

	text, err := ts.runGetHeaders(context.Background(),
		map[string]any{"operation_id": "listWidgets"})
	require.NoError(t, err)
	assert.Contains(t, text, "X-Total-Count")
	assert.Contains(t, text, "integer (min: 0)")

	// Operation without any response headers yields the fixed sentinel.
	text, err = ts.runGetHeaders(context.Background(),
		map[string]any{"operation_id": "deleteWidget"})
	require.NoError(t, err)
	assert.Equal(t, "No headers defined for any response in this operation.", text)

	// Undefined status propagates as a status-code error naming the code.
	_, err = ts.runGetHeaders(context.Background(),
		map[string]any{"operation_id": "listWidgets", "status_code": float64(418)})
	require.Error(t, err)
	assert.True(t, errdefs.IsType(err, errdefs.ErrorTypeStatusCode))
	assert.Contains(t, err.Error(), "418")
}

func TestOperationExamplesGenerated(t *testing.T) {
	ts := newTestToolset(t)

	text, err := ts.runOperationExamples(context.Background(),
		map[string]any{"operation_id": "createWidget"})
	require.NoError(t, err)
	assert.Contains(t, text, "generated from schema")
	assert.Contains(t, text, `"name"`)

	// Deterministic across calls.
	again, err := ts.runOperationExamples(context.Background(),
		map[string]any{"operation_id": "createWidget"})
	require.NoError(t, err)
	assert.Equal(t, text, again)
}

func TestAuthRequirements(t *testing.T) {
	ts := newTestToolset(t)

	text, err := ts.runAuthRequirements(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Contains(t, text, "bearerAuth: http, scheme bearer (JWT)")
	assert.Contains(t, text, "Global requirements")

	text, err = ts.runAuthRequirements(context.Background(),
		map[string]any{"operation_id": "listWidgets"})
	require.NoError(t, err)
	assert.Contains(t, text, "bearerAuth")
}

func TestServerInfo(t *testing.T) {
	ts := newTestToolset(t)

	text, err := ts.runServerInfo(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Contains(t, text, "Title: Widget API")
	assert.Contains(t, text, "Version: 1.4.0")
	assert.Contains(t, text, "https://widgets.example.com")
	assert.Contains(t, text, "Operations: 3")
}

func TestListTags(t *testing.T) {
	ts := newTestToolset(t)

	text, err := ts.runListTags(context.Background(), map[string]any{})
	require.NoError(t, err)
	assert.Contains(t, text, "widgets (3 operations)")
	assert.Contains(t, text, "Widget CRUD")
}

func TestHelpNamesEveryTool(t *testing.T) {
	ts := newTestToolset(t)

	text, err := ts.runHelp(context.Background(), map[string]any{})
	require.NoError(t, err)
	for _, def := range ts.defs() {
		assert.Contains(t, text, def.name)
	}
}

func TestRenderErrorGuidance(t *testing.T) {
	ts := newTestToolset(t)

	notFound := errdefs.Newf(errdefs.ErrorTypeNotFound, "operation %q not found", "x")
	assert.Contains(t, ts.renderError(notFound), "search_operations")

	missing := errdefs.New(errdefs.ErrorTypeMissingParameters, "no operation specified", "")
	assert.Contains(t, ts.renderError(missing), "operation_id, or method and path")

	status := errdefs.New(errdefs.ErrorTypeStatusCode, `status code "500" is not defined`, "")
	assert.Contains(t, ts.renderError(status), "get_operation_details")
}
