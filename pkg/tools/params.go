package tools

import (
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cast"
	"github.com/xeipuuv/gojsonschema"

	"github.com/specview/specview/pkg/errdefs"
)

// validateArgs checks raw call arguments against the tool's declared schema.
// Violations become invalid_parameter errors naming the offending field and
// its constraint.
func validateArgs(compiled *gojsonschema.Schema, raw []byte) error {
	result, err := compiled.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return errdefs.Wrap(err, errdefs.ErrorTypeInvalidParameter, "arguments are not valid JSON")
	}
	if result.Valid() {
		return nil
	}
	violations := make([]string, 0, len(result.Errors()))
	for _, verr := range result.Errors() {
		violations = append(violations, fmt.Sprintf("%s: %s", verr.Field(), verr.Description()))
	}
	return errdefs.New(errdefs.ErrorTypeInvalidParameter,
		"invalid tool arguments", strings.Join(violations, "; "))
}

// stringParam returns args[key] as a string. Numeric values are coerced, so
// a caller passing status_code: 500 gets the literal "500".
func stringParam(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return ""
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return ""
	}
	// JSON numbers arrive as float64; render integral values without the
	// trailing ".0" cast would not produce but fmt would.
	if f, isFloat := v.(float64); isFloat && f == math.Trunc(f) {
		return fmt.Sprintf("%d", int64(f))
	}
	return s
}

// intParam returns args[key] as an int, or def when absent. Fractional,
// negative-when-disallowed, or non-numeric values fail with an
// invalid_parameter error naming the field.
func intParam(args map[string]any, key string, def int) (int, error) {
	v, ok := args[key]
	if !ok || v == nil {
		return def, nil
	}
	if f, isFloat := v.(float64); isFloat && f != math.Trunc(f) {
		return 0, errdefs.New(errdefs.ErrorTypeInvalidParameter,
			key+" must be an integer", fmt.Sprintf("got %v", v))
	}
	n, err := cast.ToIntE(v)
	if err != nil {
		return 0, errdefs.New(errdefs.ErrorTypeInvalidParameter,
			key+" must be an integer", fmt.Sprintf("got %v", v))
	}
	return n, nil
}

// boolParam returns args[key] as a bool, defaulting to false.
func boolParam(args map[string]any, key string) bool {
	v, ok := args[key]
	if !ok || v == nil {
		return false
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return false
	}
	return b
}

// stringSetParam returns args[key] as a set of strings.
func stringSetParam(args map[string]any, key string) map[string]bool {
	v, ok := args[key]
	if !ok || v == nil {
		return nil
	}
	values, err := cast.ToStringSliceE(v)
	if err != nil || len(values) == 0 {
		return nil
	}
	set := make(map[string]bool, len(values))
	for _, s := range values {
		set[s] = true
	}
	return set
}
