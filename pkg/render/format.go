package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// unknownType is the fallback for fragments the formatter cannot describe.
const unknownType = "unknown"

// enumInlineLimit is the largest enum rendered value-by-value; longer enums
// collapse to a count.
const enumInlineLimit = 5

// HeaderSchema describes a response header's schema in one line, e.g.
// "string, uuid" or "integer (min: 0, max: 100)". It is total: any fragment
// it cannot describe comes back as "unknown".
func HeaderSchema(header *openapi3.Header) string {
	if header == nil {
		return unknownType
	}
	return Describe(Normalize(header.Schema))
}

// Describe formats a normalized node per the header-summary rules. The node's
// deprecated/example/default/const keys are never inspected: the description
// is schema-shape only.
func Describe(n *Node) string {
	if n == nil {
		return unknownType
	}

	base := string(n.Kind)
	if n.Kind == KindArray && n.Items != nil && n.Items.Kind != KindUnknown {
		base = "array[" + string(n.Items.Kind) + "]"
	}

	// Exactly one modifier applies, in priority order.
	switch {
	case len(n.Enum) > 0:
		if len(n.Enum) <= enumInlineLimit {
			values := make([]string, len(n.Enum))
			for i, v := range n.Enum {
				values[i] = formatValue(v)
			}
			return base + " (" + strings.Join(values, " | ") + ")"
		}
		return base + fmt.Sprintf(" (enum[%d])", len(n.Enum))
	case n.MinLength != nil || n.MaxLength != nil:
		var parts []string
		if n.MinLength != nil {
			parts = append(parts, "minLength: "+strconv.FormatUint(*n.MinLength, 10))
		}
		if n.MaxLength != nil {
			parts = append(parts, "maxLength: "+strconv.FormatUint(*n.MaxLength, 10))
		}
		return base + " (" + strings.Join(parts, ", ") + ")"
	case n.Minimum != nil || n.Maximum != nil:
		var parts []string
		if n.Minimum != nil {
			parts = append(parts, "min: "+formatFloat(*n.Minimum))
		}
		if n.Maximum != nil {
			parts = append(parts, "max: "+formatFloat(*n.Maximum))
		}
		return base + " (" + strings.Join(parts, ", ") + ")"
	case n.Pattern != "":
		return base + ", pattern"
	case n.Format != "":
		return base + ", " + n.Format
	}
	return base
}

func formatValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return formatFloat(val)
	default:
		return fmt.Sprintf("%v", v)
	}
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
