package spec

import (
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/yosida95/uritemplate/v3"

	"github.com/specview/specview/pkg/loader"
)

// Operation is one (method, path) combination in the loaded document. The
// Raw pointer reaches into the document tree and is owned by the snapshot it
// was built with.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	Description string
	Tags        []string
	// PathVars are the template variable names of Path, e.g. ["userId"] for
	// /users/{userId}.
	PathVars []string
	Raw      *openapi3.Operation
}

// methodOrder is the canonical method order used when indexing a path item.
var methodOrder = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS", "TRACE", "CONNECT"}

func buildSnapshot(doc *loader.Document) *snapshot {
	snap := &snapshot{
		doc:    doc.Doc,
		source: doc.Source,
		byID:   make(map[string]*Operation),
		byPath: make(map[string]*Operation),
	}
	if doc.Doc.Info != nil {
		snap.meta = Metadata{
			Title:       doc.Doc.Info.Title,
			Version:     doc.Doc.Info.Version,
			Description: doc.Doc.Info.Description,
		}
	}

	seenTags := make(map[string]bool)
	for _, path := range doc.PathOrder {
		item := doc.Doc.Paths.Value(path)
		if item == nil {
			continue
		}
		for _, method := range methodOrder {
			raw := operationFor(item, method)
			if raw == nil {
				continue
			}
			op := &Operation{
				ID:          raw.OperationID,
				Method:      method,
				Path:        path,
				Summary:     raw.Summary,
				Description: raw.Description,
				Tags:        raw.Tags,
				PathVars:    pathVars(path),
				Raw:         raw,
			}
			snap.ops = append(snap.ops, op)
			// Duplicate operationIds reflect spec authoring and are not
			// defended against: last write wins.
			if op.ID != "" {
				snap.byID[op.ID] = op
			}
			snap.byPath[method+" "+path] = op
			for _, tag := range op.Tags {
				if !seenTags[tag] {
					seenTags[tag] = true
					snap.tags = append(snap.tags, tag)
				}
			}
		}
	}
	return snap
}

func operationFor(item *openapi3.PathItem, method string) *openapi3.Operation {
	switch method {
	case "GET":
		return item.Get
	case "POST":
		return item.Post
	case "PUT":
		return item.Put
	case "PATCH":
		return item.Patch
	case "DELETE":
		return item.Delete
	case "HEAD":
		return item.Head
	case "OPTIONS":
		return item.Options
	case "TRACE":
		return item.Trace
	case "CONNECT":
		return item.Connect
	}
	return nil
}

// pathVars extracts template variable names from an OpenAPI path, which is a
// valid RFC 6570 URI template. Malformed templates yield no variables.
func pathVars(path string) []string {
	if !strings.Contains(path, "{") {
		return nil
	}
	tmpl, err := uritemplate.New(path)
	if err != nil {
		return nil
	}
	return tmpl.Varnames()
}

// FindOperations returns operations whose id, summary, description, or path
// contains query, case-insensitively. An empty query returns all operations
// in index order. No schema loaded returns an empty slice, not an error.
func (s *Store) FindOperations(query string) []*Operation {
	snap := s.state.Load()
	if snap == nil {
		return nil
	}
	if query == "" {
		return snap.ops
	}
	needle := strings.ToLower(query)
	var matches []*Operation
	for _, op := range snap.ops {
		if strings.Contains(strings.ToLower(op.ID), needle) ||
			strings.Contains(strings.ToLower(op.Summary), needle) ||
			strings.Contains(strings.ToLower(op.Description), needle) ||
			strings.Contains(strings.ToLower(op.Path), needle) {
			matches = append(matches, op)
		}
	}
	return matches
}

// GetOperation looks an operation up by its operationId.
func (s *Store) GetOperation(operationID string) (*Operation, bool) {
	snap := s.state.Load()
	if snap == nil {
		return nil, false
	}
	op, ok := snap.byID[operationID]
	return op, ok
}

// GetOperationByMethodPath looks an operation up by method (case-insensitive)
// and path (exact string, no template normalization).
func (s *Store) GetOperationByMethodPath(method, path string) (*Operation, bool) {
	snap := s.state.Load()
	if snap == nil {
		return nil, false
	}
	op, ok := snap.byPath[strings.ToUpper(method)+" "+path]
	return op, ok
}
