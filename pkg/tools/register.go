// Package tools registers the spec-exploration tools on an MCP server and
// converts store query results into text envelopes.
//
// The package owns parameter validation and coercion; the core packages it
// calls into (spec, chunk, render) receive already-validated values.
package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/xeipuuv/gojsonschema"
	"go.uber.org/zap"

	"github.com/specview/specview/pkg/chunk"
	"github.com/specview/specview/pkg/errdefs"
	"github.com/specview/specview/pkg/sample"
	"github.com/specview/specview/pkg/spec"
)

// Toolset binds the store and rendering defaults to the registered tools.
type Toolset struct {
	store     *spec.Store
	logger    *zap.Logger
	chunkSize int
	gen       *sample.Generator
}

// NewToolset creates a toolset over store. defaultChunkSize is used when a
// caller omits chunk_size; non-positive values fall back to
// chunk.DefaultChunkSize.
func NewToolset(store *spec.Store, logger *zap.Logger, defaultChunkSize int) *Toolset {
	if logger == nil {
		logger = zap.NewNop()
	}
	if defaultChunkSize <= 0 {
		defaultChunkSize = chunk.DefaultChunkSize
	}
	return &Toolset{
		store:     store,
		logger:    logger,
		chunkSize: defaultChunkSize,
		gen:       sample.NewGenerator(1),
	}
}

type toolDef struct {
	name        string
	description string
	schema      string
	run         func(ctx context.Context, args map[string]any) (string, error)
}

// Register adds every tool to server. Tool input schemas are declared once as
// JSON: the same document is advertised over MCP and enforced on each call.
func (t *Toolset) Register(server *mcp.Server) error {
	for _, def := range t.defs() {
		compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(def.schema))
		if err != nil {
			return fmt.Errorf("compile %s schema: %w", def.name, err)
		}
		var advertised jsonschema.Schema
		if err := json.Unmarshal([]byte(def.schema), &advertised); err != nil {
			return fmt.Errorf("parse %s schema: %w", def.name, err)
		}

		run := def.run
		name := def.name
		handler := func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			raw := rawArguments(req)
			if err := validateArgs(compiled, raw); err != nil {
				return errorResult(t.renderError(err)), nil
			}
			var args map[string]any
			if err := json.Unmarshal(raw, &args); err != nil {
				return errorResult("Arguments could not be parsed as a JSON object."), nil
			}
			text, err := run(ctx, args)
			if err != nil {
				t.logger.Debug("tool call failed",
					zap.String("tool", name), zap.Error(err))
				return errorResult(t.renderError(err)), nil
			}
			return textResult(text), nil
		}

		server.AddTool(&mcp.Tool{
			Name:        def.name,
			Description: def.description,
			InputSchema: &advertised,
		}, handler)
	}
	return nil
}

func (t *Toolset) defs() []toolDef {
	return []toolDef{
		{
			name:        "list_operations",
			description: "List every operation in the loaded OpenAPI document. Optional tag filter, detail_level (minimal|standard|full), and fields selection.",
			schema:      schemaListOperations,
			run:         t.runListOperations,
		},
		{
			name:        "search_operations",
			description: "Find operations whose id, summary, description, or path contains the query (case-insensitive substring match). An empty query returns all operations.",
			schema:      schemaSearchOperations,
			run:         t.runSearchOperations,
		},
		{
			name:        "get_operation_details",
			description: "Full details for one operation, addressed by operation_id or by method plus path: parameters, request body, responses, security.",
			schema:      schemaOperationRef,
			run:         t.runOperationDetails,
		},
		{
			name:        "get_operation_summary",
			description: "One-line summary of an operation, addressed by operation_id or by method plus path.",
			schema:      schemaOperationRef,
			run:         t.runOperationSummary,
		},
		{
			name:        "get_request_schema",
			description: "The JSON schema of an operation's request body. Large schemas are paged: pass chunk_size and index to navigate.",
			schema:      schemaPagedOperationRef,
			run:         t.runRequestSchema,
		},
		{
			name:        "get_response_schema",
			description: "The JSON schema of an operation's response body for a status code (defaults to the success response). Large schemas are paged via chunk_size and index.",
			schema:      schemaResponseSchema,
			run:         t.runResponseSchema,
		},
		{
			name:        "get_operation_examples",
			description: "Request and response examples for an operation. When the document defines none, deterministic examples are synthesized from the schemas and marked as generated.",
			schema:      schemaPagedOperationRef,
			run:         t.runOperationExamples,
		},
		{
			name:        "get_headers",
			description: "Response headers of an operation, each with a one-line schema summary. Optionally restricted to one status_code (matched literally; wildcard keys like 2XX only match themselves).",
			schema:      schemaGetHeaders,
			run:         t.runGetHeaders,
		},
		{
			name:        "get_auth_requirements",
			description: "Security schemes and requirements declared by the document, or the effective requirements of one operation when operation_id is given.",
			schema:      schemaAuthRequirements,
			run:         t.runAuthRequirements,
		},
		{
			name:        "get_server_info",
			description: "Title, version, description, servers, and size statistics of the loaded document.",
			schema:      schemaEmpty,
			run:         t.runServerInfo,
		},
		{
			name:        "list_tags",
			description: "All tags referenced by operations, with operation counts and tag descriptions where defined.",
			schema:      schemaEmpty,
			run:         t.runListTags,
		},
		{
			name:        "help",
			description: "Describe the available tools, their parameters, and how paging works.",
			schema:      schemaEmpty,
			run:         t.runHelp,
		},
	}
}

// rawArguments renders the request arguments back to JSON bytes regardless of
// how the SDK surfaced them.
func rawArguments(req *mcp.CallToolRequest) []byte {
	if req == nil || req.Params == nil || req.Params.Arguments == nil {
		return []byte("{}")
	}
	raw, err := json.Marshal(req.Params.Arguments)
	if err != nil || len(raw) == 0 || string(raw) == "null" {
		return []byte("{}")
	}
	return raw
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// renderError turns a failure into user-facing guidance. Raw error dumps
// never reach the client.
func (t *Toolset) renderError(err error) string {
	var e *errdefs.Error
	msg := err.Error()
	if errors.As(err, &e) {
		msg = e.Message
		if e.Detail != "" {
			msg += ". " + e.Detail
		}
	}
	switch errdefs.GetType(err) {
	case errdefs.ErrorTypeMissingParameters:
		return msg + ". Provide operation_id, or method and path together. Call the help tool for parameter details."
	case errdefs.ErrorTypeNotFound:
		return msg + ". Use search_operations or list_operations to find valid operations."
	case errdefs.ErrorTypeStatusCode:
		return msg + ". Use get_operation_details to see which responses the operation defines."
	case errdefs.ErrorTypeInvalidParameter, errdefs.ErrorTypeOutOfRange:
		return msg + ". Call the help tool for parameter details."
	default:
		return msg
	}
}
