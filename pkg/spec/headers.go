package spec

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/specview/specview/pkg/errdefs"
)

// GetHeaders returns the response headers of op, keyed by status code and
// then by header name.
//
// With a statusCode, only that response is consulted; a status the operation
// does not define fails with a status_code error naming the queried code.
// Status codes are compared as literal strings: wildcard codes like "2XX"
// match only if the document defines that exact key.
//
// Without a statusCode, headers come from all responses, except that when any
// numeric 2xx response defines headers, only 2xx responses are included.
// Error-response headers surface only when no success response defines any.
//
// An operation with no responses, or whose responses define no headers,
// returns errdefs.ErrNoHeaders so the caller can render "no headers" instead
// of an empty table.
func (s *Store) GetHeaders(op *Operation, statusCode string) (map[string]map[string]*openapi3.Header, error) {
	if op == nil || op.Raw == nil {
		return nil, errdefs.ErrNoHeaders
	}
	responses := responseMap(op.Raw)
	if len(responses) == 0 {
		return nil, errdefs.ErrNoHeaders
	}

	if statusCode != "" {
		ref, ok := responses[statusCode]
		if !ok {
			return nil, errdefs.New(errdefs.ErrorTypeStatusCode,
				fmt.Sprintf("status code %q is not defined for this operation", statusCode),
				"defined status codes: "+strings.Join(definedStatuses(responses), ", "))
		}
		headers := responseHeaders(ref)
		if len(headers) == 0 {
			return nil, errdefs.ErrNoHeaders
		}
		return map[string]map[string]*openapi3.Header{statusCode: headers}, nil
	}

	all := make(map[string]map[string]*openapi3.Header)
	successHasHeaders := false
	for status, ref := range responses {
		headers := responseHeaders(ref)
		if len(headers) == 0 {
			continue
		}
		all[status] = headers
		if isSuccessStatus(status) {
			successHasHeaders = true
		}
	}
	if len(all) == 0 {
		return nil, errdefs.ErrNoHeaders
	}
	if successHasHeaders {
		for status := range all {
			if !isSuccessStatus(status) {
				delete(all, status)
			}
		}
	}
	return all, nil
}

func responseMap(op *openapi3.Operation) map[string]*openapi3.ResponseRef {
	if op.Responses == nil {
		return nil
	}
	return op.Responses.Map()
}

func responseHeaders(ref *openapi3.ResponseRef) map[string]*openapi3.Header {
	if ref == nil || ref.Value == nil || len(ref.Value.Headers) == 0 {
		return nil
	}
	headers := make(map[string]*openapi3.Header, len(ref.Value.Headers))
	for name, href := range ref.Value.Headers {
		if href == nil {
			continue
		}
		headers[name] = href.Value
	}
	return headers
}

// isSuccessStatus reports whether status is a literal numeric 2xx code.
// Wildcards like "2XX" are not treated as success here: they only appear in
// results when no numeric 2xx response defines headers.
func isSuccessStatus(status string) bool {
	code, err := strconv.Atoi(status)
	return err == nil && code >= 200 && code < 300
}

func definedStatuses(responses map[string]*openapi3.ResponseRef) []string {
	statuses := make([]string, 0, len(responses))
	for status := range responses {
		statuses = append(statuses, status)
	}
	sort.Strings(statuses)
	return statuses
}
