package tools

import (
	"context"
	"fmt"
	"strings"
)

const helpPreamble = `This server answers questions about one loaded OpenAPI document.

Addressing an operation: most tools take either operation_id, or method and
path together. The path must match the document literally, including template
braces, e.g. /users/{userId}.

Paging: get_request_schema, get_response_schema, and get_operation_examples
page large payloads. Pass chunk_size (bytes per chunk, default %d) and index
(zero-based). When a result is paged, a footer names the current chunk and the
index of the next one.

status_code: accepts a string or a number; 500 and "500" are equivalent. Codes
are matched literally against the document, so "2XX" only matches a response
the document keys as 2XX.

Tools:
`

// runHelp lists every registered tool with its description. The list is built
// from the same definitions Register advertises, so it cannot drift.
func (t *Toolset) runHelp(_ context.Context, _ map[string]any) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, helpPreamble, t.chunkSize)
	for _, def := range t.defs() {
		fmt.Fprintf(&b, "  %s: %s\n", def.name, def.description)
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
