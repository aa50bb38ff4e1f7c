// Package render converts schema fragments into deterministic one-line
// descriptions for tool output.
//
// Source documents are untyped trees, so the package first normalizes a
// kin-openapi schema reference into a closed set of tagged node variants and
// then formats over that sum type instead of probing properties ad hoc.
package render

import (
	"github.com/getkin/kin-openapi/openapi3"
)

// Kind is the tag of a normalized schema node.
type Kind string

const (
	KindString  Kind = "string"
	KindInteger Kind = "integer"
	KindNumber  Kind = "number"
	KindBoolean Kind = "boolean"
	KindArray   Kind = "array"
	KindObject  Kind = "object"
	KindUnknown Kind = "unknown"
)

// Node is a normalized schema fragment. Only the keys the formatter and the
// example generator inspect are carried over; everything else is dropped at
// normalization time.
type Node struct {
	Kind       Kind
	Items      *Node
	Properties map[string]*Node
	Required   []string
	Enum       []any
	MinLength  *uint64
	MaxLength  *uint64
	Minimum    *float64
	Maximum    *float64
	Pattern    string
	Format     string
	Example    any
}

// Normalize converts a schema reference into a Node. Returns nil when the
// fragment is absent entirely.
//
// A bare $ref is never resolved: it normalizes to an unknown node. The same
// holds for allOf/oneOf/anyOf without a direct type key. Both rules keep the
// formatter shape-only.
func Normalize(ref *openapi3.SchemaRef) *Node {
	if ref == nil {
		return nil
	}
	if ref.Ref != "" {
		return &Node{Kind: KindUnknown}
	}
	s := ref.Value
	if s == nil {
		return nil
	}
	if len(s.AllOf) > 0 || len(s.OneOf) > 0 || len(s.AnyOf) > 0 {
		if s.Type == nil || len(*s.Type) == 0 {
			return &Node{Kind: KindUnknown}
		}
	}

	n := &Node{
		Kind:    kindOf(s.Type),
		Pattern: s.Pattern,
		Format:  s.Format,
		Example: s.Example,
	}
	if len(s.Enum) > 0 {
		n.Enum = s.Enum
	}
	if s.MinLength > 0 {
		min := s.MinLength
		n.MinLength = &min
	}
	n.MaxLength = s.MaxLength
	n.Minimum = s.Min
	n.Maximum = s.Max
	if n.Kind == KindArray {
		n.Items = Normalize(s.Items)
	}
	if n.Kind == KindObject && len(s.Properties) > 0 {
		n.Properties = make(map[string]*Node, len(s.Properties))
		for name, prop := range s.Properties {
			if child := Normalize(prop); child != nil {
				n.Properties[name] = child
			}
		}
		n.Required = s.Required
	}
	return n
}

func kindOf(t *openapi3.Types) Kind {
	if t == nil || len(*t) == 0 {
		return KindUnknown
	}
	switch (*t)[0] {
	case "string":
		return KindString
	case "integer":
		return KindInteger
	case "number":
		return KindNumber
	case "boolean":
		return KindBoolean
	case "array":
		return KindArray
	case "object":
		return KindObject
	default:
		return KindUnknown
	}
}
