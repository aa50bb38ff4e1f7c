package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"

	"github.com/specview/specview/pkg/chunk"
	"github.com/specview/specview/pkg/errdefs"
	"github.com/specview/specview/pkg/render"
	"github.com/specview/specview/pkg/spec"
)

// noSchemaText is returned by every query tool while no document is loaded.
// It is guidance, not an error: clients poll tools before loading a spec.
const noSchemaText = "No OpenAPI document is loaded. Load one via the server's spec source configuration or the /reload endpoint, then retry."

// noHeadersText is the fixed sentinel for operations without response headers.
const noHeadersText = "No headers defined for any response in this operation."

// resolveOperation finds the operation addressed by the call arguments:
// operation_id wins, method+path is the fallback.
func (t *Toolset) resolveOperation(args map[string]any) (*spec.Operation, error) {
	id := stringParam(args, "operation_id")
	method := stringParam(args, "method")
	path := stringParam(args, "path")

	if id != "" {
		op, ok := t.store.GetOperation(id)
		if !ok {
			return nil, errdefs.Newf(errdefs.ErrorTypeNotFound, "operation %q not found", id)
		}
		return op, nil
	}
	if method != "" && path != "" {
		op, ok := t.store.GetOperationByMethodPath(method, path)
		if !ok {
			return nil, errdefs.Newf(errdefs.ErrorTypeNotFound,
				"no operation for %s %s", strings.ToUpper(method), path)
		}
		return op, nil
	}
	if method != "" || path != "" {
		return nil, errdefs.New(errdefs.ErrorTypeMissingParameters,
			"method and path must be provided together", "")
	}
	return nil, errdefs.New(errdefs.ErrorTypeMissingParameters,
		"no operation specified", "")
}

// paginateText pages text per the chunk_size and index arguments. A payload
// that fits in one chunk at index 0 is returned verbatim; otherwise a footer
// carries the navigation metadata.
func (t *Toolset) paginateText(text string, args map[string]any) (string, error) {
	size, err := intParam(args, "chunk_size", t.chunkSize)
	if err != nil {
		return "", err
	}
	index, err := intParam(args, "index", 0)
	if err != nil {
		return "", err
	}
	c, err := chunk.Paginate(text, size, index)
	if err != nil {
		return "", err
	}
	total := chunk.Total(c.TotalLength, c.ChunkSize)
	if total == 1 && c.Index == 0 {
		return c.Text, nil
	}
	var b strings.Builder
	b.WriteString(c.Text)
	fmt.Fprintf(&b, "\n--- chunk %d of %d (bytes %d-%d of %d)",
		c.Index+1, total, c.StartOffset, c.EndOffset, c.TotalLength)
	if c.HasNext {
		fmt.Fprintf(&b, "; request index %d for the next chunk", c.NextIndex)
	}
	b.WriteString(" ---")
	return b.String(), nil
}

func (t *Toolset) runListOperations(_ context.Context, args map[string]any) (string, error) {
	if !t.store.HasSchema() {
		return noSchemaText, nil
	}
	ops := t.store.FindOperations("")
	if tag := stringParam(args, "tag"); tag != "" {
		filtered := ops[:0:0]
		for _, op := range ops {
			for _, opTag := range op.Tags {
				if opTag == tag {
					filtered = append(filtered, op)
					break
				}
			}
		}
		ops = filtered
	}
	if len(ops) == 0 {
		return "No operations found.", nil
	}

	level := stringParam(args, "detail_level")
	if level == "" {
		level = "standard"
	}
	if boolParam(args, "compact") {
		level = "minimal"
	}
	fields := stringSetParam(args, "fields")

	var b strings.Builder
	fmt.Fprintf(&b, "%d operations:\n", len(ops))
	for _, op := range ops {
		b.WriteString(renderOperationLine(op, level, fields))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// renderOperationLine formats one operation for list and search output.
// An explicit fields selection overrides the detail level.
func renderOperationLine(op *spec.Operation, level string, fields map[string]bool) string {
	if len(fields) > 0 {
		var parts []string
		if fields["method"] {
			parts = append(parts, op.Method)
		}
		if fields["path"] {
			parts = append(parts, op.Path)
		}
		if fields["id"] && op.ID != "" {
			parts = append(parts, op.ID)
		}
		if fields["summary"] && op.Summary != "" {
			parts = append(parts, op.Summary)
		}
		if fields["description"] && op.Description != "" {
			parts = append(parts, firstLine(op.Description))
		}
		if fields["tags"] && len(op.Tags) > 0 {
			parts = append(parts, "["+strings.Join(op.Tags, ", ")+"]")
		}
		return strings.Join(parts, "  ")
	}

	switch level {
	case "minimal":
		return fmt.Sprintf("%s %s", op.Method, op.Path)
	case "full":
		line := fmt.Sprintf("%s %s", op.Method, op.Path)
		if op.ID != "" {
			line += "  (" + op.ID + ")"
		}
		if op.Summary != "" {
			line += "\n  " + op.Summary
		}
		if op.Description != "" {
			line += "\n  " + firstLine(op.Description)
		}
		if len(op.Tags) > 0 {
			line += "\n  tags: " + strings.Join(op.Tags, ", ")
		}
		return line
	default: // standard
		line := fmt.Sprintf("%s %s", op.Method, op.Path)
		if op.ID != "" {
			line += "  (" + op.ID + ")"
		}
		if op.Summary != "" {
			line += "  - " + op.Summary
		}
		return line
	}
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}

func (t *Toolset) runSearchOperations(_ context.Context, args map[string]any) (string, error) {
	if !t.store.HasSchema() {
		return noSchemaText, nil
	}
	query := stringParam(args, "query")
	matches := t.store.FindOperations(query)
	if len(matches) == 0 {
		return fmt.Sprintf("No operations match %q.", query), nil
	}
	var b strings.Builder
	fmt.Fprintf(&b, "%d operations match %q:\n", len(matches), query)
	for _, op := range matches {
		b.WriteString(renderOperationLine(op, "standard", nil))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (t *Toolset) runOperationDetails(_ context.Context, args map[string]any) (string, error) {
	if !t.store.HasSchema() {
		return noSchemaText, nil
	}
	op, err := t.resolveOperation(args)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s %s\n", op.Method, op.Path)
	if op.ID != "" {
		fmt.Fprintf(&b, "operationId: %s\n", op.ID)
	}
	if op.Summary != "" {
		fmt.Fprintf(&b, "summary: %s\n", op.Summary)
	}
	if op.Description != "" {
		fmt.Fprintf(&b, "description: %s\n", op.Description)
	}
	if len(op.Tags) > 0 {
		fmt.Fprintf(&b, "tags: %s\n", strings.Join(op.Tags, ", "))
	}
	if len(op.PathVars) > 0 {
		fmt.Fprintf(&b, "path variables: %s\n", strings.Join(op.PathVars, ", "))
	}

	if params := op.Raw.Parameters; len(params) > 0 {
		b.WriteString("\nParameters:\n")
		for _, pref := range params {
			if pref == nil || pref.Value == nil {
				continue
			}
			p := pref.Value
			required := ""
			if p.Required {
				required = ", required"
			}
			fmt.Fprintf(&b, "  %s (%s%s): %s", p.Name, p.In, required,
				render.Describe(render.Normalize(p.Schema)))
			if p.Description != "" {
				fmt.Fprintf(&b, " - %s", firstLine(p.Description))
			}
			b.WriteByte('\n')
		}
	}

	if body := op.Raw.RequestBody; body != nil && body.Value != nil {
		b.WriteString("\nRequest body")
		if body.Value.Required {
			b.WriteString(" (required)")
		}
		b.WriteString(":\n")
		for _, mediaType := range sortedKeys(body.Value.Content) {
			mt := body.Value.Content[mediaType]
			fmt.Fprintf(&b, "  %s: %s\n", mediaType,
				render.Describe(render.Normalize(mt.Schema)))
		}
	}

	if responses := responseMapOf(op); len(responses) > 0 {
		b.WriteString("\nResponses:\n")
		for _, status := range sortedKeys(responses) {
			ref := responses[status]
			if ref == nil || ref.Value == nil {
				continue
			}
			desc := ""
			if ref.Value.Description != nil {
				desc = firstLine(*ref.Value.Description)
			}
			fmt.Fprintf(&b, "  %s: %s", status, desc)
			if n := len(ref.Value.Headers); n > 0 {
				fmt.Fprintf(&b, " [%d headers]", n)
			}
			for _, mediaType := range sortedKeys(ref.Value.Content) {
				mt := ref.Value.Content[mediaType]
				fmt.Fprintf(&b, "\n    %s: %s", mediaType,
					render.Describe(render.Normalize(mt.Schema)))
			}
			b.WriteByte('\n')
		}
	}

	if sec := effectiveSecurity(op, t.store.Document()); len(sec) > 0 {
		b.WriteString("\nSecurity:\n")
		b.WriteString(renderSecurityRequirements(sec, "  "))
	}

	return strings.TrimRight(b.String(), "\n"), nil
}

func (t *Toolset) runOperationSummary(_ context.Context, args map[string]any) (string, error) {
	if !t.store.HasSchema() {
		return noSchemaText, nil
	}
	op, err := t.resolveOperation(args)
	if err != nil {
		return "", err
	}
	line := fmt.Sprintf("%s %s", op.Method, op.Path)
	if op.ID != "" {
		line += " (" + op.ID + ")"
	}
	if op.Summary != "" {
		line += ": " + op.Summary
	} else if op.Description != "" {
		line += ": " + firstLine(op.Description)
	}
	return line, nil
}

func (t *Toolset) runRequestSchema(_ context.Context, args map[string]any) (string, error) {
	if !t.store.HasSchema() {
		return noSchemaText, nil
	}
	op, err := t.resolveOperation(args)
	if err != nil {
		return "", err
	}
	body := op.Raw.RequestBody
	if body == nil || body.Value == nil || len(body.Value.Content) == 0 {
		return fmt.Sprintf("%s %s defines no request body.", op.Method, op.Path), nil
	}
	mediaType, mt := preferredMediaType(body.Value.Content)
	if mt == nil || mt.Schema == nil {
		return fmt.Sprintf("%s %s declares a %s request body without a schema.",
			op.Method, op.Path, mediaType), nil
	}
	text, err := schemaJSON(mt.Schema)
	if err != nil {
		return "", err
	}
	header := fmt.Sprintf("Request schema for %s %s (%s):\n", op.Method, op.Path, mediaType)
	paged, err := t.paginateText(text, args)
	if err != nil {
		return "", err
	}
	return header + paged, nil
}

func (t *Toolset) runResponseSchema(_ context.Context, args map[string]any) (string, error) {
	if !t.store.HasSchema() {
		return noSchemaText, nil
	}
	op, err := t.resolveOperation(args)
	if err != nil {
		return "", err
	}
	responses := responseMapOf(op)
	if len(responses) == 0 {
		return fmt.Sprintf("%s %s defines no responses.", op.Method, op.Path), nil
	}

	status := stringParam(args, "status_code")
	if status == "" {
		status = defaultStatus(responses)
	} else if _, ok := responses[status]; !ok {
		return "", errdefs.New(errdefs.ErrorTypeStatusCode,
			fmt.Sprintf("status code %q is not defined for this operation", status),
			"defined status codes: "+strings.Join(sortedKeys(responses), ", "))
	}

	ref := responses[status]
	if ref == nil || ref.Value == nil || len(ref.Value.Content) == 0 {
		return fmt.Sprintf("Response %s of %s %s has no body schema.",
			status, op.Method, op.Path), nil
	}
	mediaType, mt := preferredMediaType(ref.Value.Content)
	if mt == nil || mt.Schema == nil {
		return fmt.Sprintf("Response %s of %s %s declares %s content without a schema.",
			status, op.Method, op.Path, mediaType), nil
	}
	text, err := schemaJSON(mt.Schema)
	if err != nil {
		return "", err
	}
	header := fmt.Sprintf("Response schema for %s %s, status %s (%s):\n",
		op.Method, op.Path, status, mediaType)
	paged, err := t.paginateText(text, args)
	if err != nil {
		return "", err
	}
	return header + paged, nil
}

// defaultStatus picks the response to describe when the caller names none:
// 200 if defined, else the lowest numeric 2xx, else the first key in sorted
// order.
func defaultStatus(responses map[string]*openapi3.ResponseRef) string {
	if _, ok := responses["200"]; ok {
		return "200"
	}
	statuses := sortedKeys(responses)
	for _, status := range statuses {
		if code, err := strconv.Atoi(status); err == nil && code >= 200 && code < 300 {
			return status
		}
	}
	return statuses[0]
}

func (t *Toolset) runOperationExamples(_ context.Context, args map[string]any) (string, error) {
	if !t.store.HasSchema() {
		return noSchemaText, nil
	}
	op, err := t.resolveOperation(args)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Examples for %s %s:\n", op.Method, op.Path)
	found := false

	if body := op.Raw.RequestBody; body != nil && body.Value != nil {
		for _, mediaType := range sortedKeys(body.Value.Content) {
			mt := body.Value.Content[mediaType]
			if text := mediaTypeExamples(mt); text != "" {
				fmt.Fprintf(&b, "\nRequest (%s):\n%s\n", mediaType, text)
				found = true
			}
		}
	}
	responses := responseMapOf(op)
	for _, status := range sortedKeys(responses) {
		ref := responses[status]
		if ref == nil || ref.Value == nil {
			continue
		}
		for _, mediaType := range sortedKeys(ref.Value.Content) {
			mt := ref.Value.Content[mediaType]
			if text := mediaTypeExamples(mt); text != "" {
				fmt.Fprintf(&b, "\nResponse %s (%s):\n%s\n", status, mediaType, text)
				found = true
			}
		}
	}

	if !found {
		// Nothing authored in the document: synthesize from the schemas so the
		// caller still gets concrete values to work from.
		generated := false
		if body := op.Raw.RequestBody; body != nil && body.Value != nil {
			if _, mt := preferredMediaType(body.Value.Content); mt != nil && mt.Schema != nil {
				if text := t.generatedExample(mt.Schema); text != "" {
					fmt.Fprintf(&b, "\nRequest (generated from schema):\n%s\n", text)
					generated = true
				}
			}
		}
		if len(responses) > 0 {
			status := defaultStatus(responses)
			if ref := responses[status]; ref != nil && ref.Value != nil {
				if _, mt := preferredMediaType(ref.Value.Content); mt != nil && mt.Schema != nil {
					if text := t.generatedExample(mt.Schema); text != "" {
						fmt.Fprintf(&b, "\nResponse %s (generated from schema):\n%s\n", status, text)
						generated = true
					}
				}
			}
		}
		if !generated {
			return fmt.Sprintf("%s %s defines no examples and no schemas to generate them from.",
				op.Method, op.Path), nil
		}
	}

	return t.paginateText(strings.TrimRight(b.String(), "\n"), args)
}

// mediaTypeExamples renders the authored examples of one media type, or ""
// when none exist.
func mediaTypeExamples(mt *openapi3.MediaType) string {
	if mt == nil {
		return ""
	}
	if mt.Example != nil {
		if text, err := json.MarshalIndent(mt.Example, "", "  "); err == nil {
			return string(text)
		}
	}
	if len(mt.Examples) > 0 {
		var parts []string
		for _, name := range sortedKeys(mt.Examples) {
			ref := mt.Examples[name]
			if ref == nil || ref.Value == nil || ref.Value.Value == nil {
				continue
			}
			text, err := json.MarshalIndent(ref.Value.Value, "", "  ")
			if err != nil {
				continue
			}
			parts = append(parts, fmt.Sprintf("%s:\n%s", name, text))
		}
		return strings.Join(parts, "\n")
	}
	return ""
}

func (t *Toolset) generatedExample(ref *openapi3.SchemaRef) string {
	value := t.gen.Value(render.Normalize(ref))
	if value == nil {
		return ""
	}
	text, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return ""
	}
	return string(text)
}

func (t *Toolset) runGetHeaders(_ context.Context, args map[string]any) (string, error) {
	if !t.store.HasSchema() {
		return noSchemaText, nil
	}
	op, err := t.resolveOperation(args)
	if err != nil {
		return "", err
	}
	status := stringParam(args, "status_code")
	headers, err := t.store.GetHeaders(op, status)
	if err != nil {
		if err == errdefs.ErrNoHeaders {
			return noHeadersText, nil
		}
		return "", err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Response headers for %s %s:\n", op.Method, op.Path)
	for _, code := range sortedKeys(headers) {
		fmt.Fprintf(&b, "\nStatus %s:\n", code)
		byName := headers[code]
		for _, name := range sortedKeys(byName) {
			header := byName[name]
			required := ""
			if header != nil && header.Required {
				required = ", required"
			}
			fmt.Fprintf(&b, "  %s: %s%s", name, render.HeaderSchema(header), required)
			if header != nil && header.Description != "" {
				fmt.Fprintf(&b, " - %s", firstLine(header.Description))
			}
			b.WriteByte('\n')
		}
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func (t *Toolset) runAuthRequirements(_ context.Context, args map[string]any) (string, error) {
	if !t.store.HasSchema() {
		return noSchemaText, nil
	}
	doc := t.store.Document()

	var b strings.Builder
	if id := stringParam(args, "operation_id"); id != "" {
		op, ok := t.store.GetOperation(id)
		if !ok {
			return "", errdefs.Newf(errdefs.ErrorTypeNotFound, "operation %q not found", id)
		}
		sec := effectiveSecurity(op, doc)
		if len(sec) == 0 {
			return fmt.Sprintf("%s %s requires no authentication.", op.Method, op.Path), nil
		}
		fmt.Fprintf(&b, "Security requirements for %s %s:\n", op.Method, op.Path)
		b.WriteString(renderSecurityRequirements(sec, "  "))
		return strings.TrimRight(b.String(), "\n"), nil
	}

	schemes := documentSecuritySchemes(doc)
	if len(schemes) == 0 && len(doc.Security) == 0 {
		return "The document declares no security schemes.", nil
	}
	if len(schemes) > 0 {
		b.WriteString("Security schemes:\n")
		for _, name := range sortedKeys(schemes) {
			b.WriteString(renderSecurityScheme(name, schemes[name]))
		}
	}
	if len(doc.Security) > 0 {
		b.WriteString("\nGlobal requirements (any one suffices):\n")
		b.WriteString(renderSecurityRequirements(doc.Security, "  "))
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

// effectiveSecurity is the operation's own security when declared (including
// an explicit empty list, which disables the global default), otherwise the
// document default.
func effectiveSecurity(op *spec.Operation, doc *openapi3.T) openapi3.SecurityRequirements {
	if op.Raw.Security != nil {
		return *op.Raw.Security
	}
	if doc == nil {
		return nil
	}
	return doc.Security
}

func documentSecuritySchemes(doc *openapi3.T) map[string]*openapi3.SecuritySchemeRef {
	if doc == nil || doc.Components == nil {
		return nil
	}
	return doc.Components.SecuritySchemes
}

func renderSecurityScheme(name string, ref *openapi3.SecuritySchemeRef) string {
	if ref == nil || ref.Value == nil {
		return fmt.Sprintf("  %s: unknown\n", name)
	}
	s := ref.Value
	line := fmt.Sprintf("  %s: %s", name, s.Type)
	switch s.Type {
	case "http":
		line += ", scheme " + s.Scheme
		if s.BearerFormat != "" {
			line += " (" + s.BearerFormat + ")"
		}
	case "apiKey":
		line += fmt.Sprintf(", %s %q", s.In, s.Name)
	case "oauth2":
		if s.Flows != nil {
			var flows []string
			if s.Flows.AuthorizationCode != nil {
				flows = append(flows, "authorizationCode")
			}
			if s.Flows.ClientCredentials != nil {
				flows = append(flows, "clientCredentials")
			}
			if s.Flows.Implicit != nil {
				flows = append(flows, "implicit")
			}
			if s.Flows.Password != nil {
				flows = append(flows, "password")
			}
			if len(flows) > 0 {
				line += ", flows: " + strings.Join(flows, ", ")
			}
		}
	case "openIdConnect":
		if s.OpenIdConnectUrl != "" {
			line += ", " + s.OpenIdConnectUrl
		}
	}
	if s.Description != "" {
		line += " - " + firstLine(s.Description)
	}
	return line + "\n"
}

func renderSecurityRequirements(reqs openapi3.SecurityRequirements, indent string) string {
	var b strings.Builder
	for _, req := range reqs {
		for _, name := range sortedKeys(req) {
			scopes := req[name]
			if len(scopes) > 0 {
				fmt.Fprintf(&b, "%s%s (scopes: %s)\n", indent, name, strings.Join(scopes, ", "))
			} else {
				fmt.Fprintf(&b, "%s%s\n", indent, name)
			}
		}
	}
	return b.String()
}

func (t *Toolset) runServerInfo(_ context.Context, _ map[string]any) (string, error) {
	meta, ok := t.store.GetMetadata()
	if !ok {
		return noSchemaText, nil
	}
	doc := t.store.Document()

	var b strings.Builder
	fmt.Fprintf(&b, "Title: %s\n", meta.Title)
	fmt.Fprintf(&b, "Version: %s\n", meta.Version)
	if meta.Description != "" {
		fmt.Fprintf(&b, "Description: %s\n", firstLine(meta.Description))
	}
	if source := t.store.Source(); source != "" {
		fmt.Fprintf(&b, "Source: %s\n", source)
	}
	if len(doc.Servers) > 0 {
		b.WriteString("Servers:\n")
		for _, server := range doc.Servers {
			fmt.Fprintf(&b, "  %s", server.URL)
			if server.Description != "" {
				fmt.Fprintf(&b, " - %s", firstLine(server.Description))
			}
			b.WriteByte('\n')
		}
	}
	ops := t.store.FindOperations("")
	pathCount := 0
	if doc.Paths != nil {
		pathCount = doc.Paths.Len()
	}
	schemaCount := 0
	if doc.Components != nil {
		schemaCount = len(doc.Components.Schemas)
	}
	fmt.Fprintf(&b, "Paths: %d\nOperations: %d\nComponent schemas: %d\nTags: %d",
		pathCount, len(ops), schemaCount, len(t.store.Tags()))
	return b.String(), nil
}

func (t *Toolset) runListTags(_ context.Context, _ map[string]any) (string, error) {
	if !t.store.HasSchema() {
		return noSchemaText, nil
	}
	tags := t.store.Tags()
	if len(tags) == 0 {
		return "No tags are referenced by any operation.", nil
	}

	counts := make(map[string]int)
	for _, op := range t.store.FindOperations("") {
		for _, tag := range op.Tags {
			counts[tag]++
		}
	}
	descriptions := make(map[string]string)
	if doc := t.store.Document(); doc != nil {
		for _, tag := range doc.Tags {
			if tag != nil {
				descriptions[tag.Name] = tag.Description
			}
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d tags:\n", len(tags))
	for _, tag := range tags {
		fmt.Fprintf(&b, "  %s (%d operations)", tag, counts[tag])
		if desc := descriptions[tag]; desc != "" {
			fmt.Fprintf(&b, " - %s", firstLine(desc))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n"), nil
}

func responseMapOf(op *spec.Operation) map[string]*openapi3.ResponseRef {
	if op.Raw.Responses == nil {
		return nil
	}
	return op.Raw.Responses.Map()
}

// preferredMediaType picks the media type to describe: application/json when
// present, otherwise the first in sorted order.
func preferredMediaType(content openapi3.Content) (string, *openapi3.MediaType) {
	if mt, ok := content["application/json"]; ok {
		return "application/json", mt
	}
	for _, name := range sortedKeys(content) {
		return name, content[name]
	}
	return "", nil
}

// schemaJSON renders a resolved schema as indented JSON.
func schemaJSON(ref *openapi3.SchemaRef) (string, error) {
	if ref == nil || ref.Value == nil {
		return "", errdefs.New(errdefs.ErrorTypeInternal, "schema is empty", "")
	}
	text, err := json.MarshalIndent(ref.Value, "", "  ")
	if err != nil {
		return "", errdefs.Wrap(err, errdefs.ErrorTypeInternal, "schema could not be serialized")
	}
	return string(text), nil
}

func sortedKeys[M ~map[string]V, V any](m M) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
