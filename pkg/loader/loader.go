// Package loader reads OpenAPI documents from local files or HTTP(S) URLs
// and parses them into kin-openapi trees.
//
// The loader intentionally skips full meta-schema validation: a document only
// needs a minimally usable structure (top-level paths and info) to be served.
package loader

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/getkin/kin-openapi/openapi3"
	"gopkg.in/yaml.v3"

	"github.com/specview/specview/pkg/errdefs"
)

const fetchTimeout = 30 * time.Second

// Document is a parsed OpenAPI document together with the raw bytes it came
// from and the path order as authored.
type Document struct {
	Doc *openapi3.T
	// Raw is the source bytes, kept so callers can re-serialize or hash the
	// document as authored.
	Raw []byte
	// PathOrder lists the keys of the top-level paths object in document
	// order. kin-openapi stores paths in a Go map, so the order has to be
	// recovered from the raw bytes.
	PathOrder []string
	Format    string // "json" or "yaml"
	Source    string
	LoadedAt  time.Time
}

// Load reads and parses an OpenAPI document from a file path or an HTTP(S)
// URL.
func Load(ctx context.Context, source string) (*Document, error) {
	var (
		data []byte
		err  error
	)
	if isURL(source) {
		data, err = fetch(ctx, source)
	} else {
		data, err = readFile(source)
	}
	if err != nil {
		return nil, err
	}
	return LoadBytes(data, source)
}

// LoadBytes parses an OpenAPI document from raw bytes. source is recorded for
// diagnostics only.
func LoadBytes(data []byte, source string) (*Document, error) {
	format := "yaml"
	if json.Valid(data) {
		format = "json"
	}

	l := openapi3.NewLoader()
	doc, err := l.LoadFromData(data)
	if err != nil {
		return nil, errdefs.Wrap(err, errdefs.ErrorTypeLoad, "failed to parse OpenAPI document")
	}
	if doc.Paths == nil || doc.Info == nil {
		return nil, errdefs.New(errdefs.ErrorTypeLoad,
			"document is not a usable OpenAPI specification",
			"top-level paths and info are required")
	}

	order, err := pathOrder(data)
	if err != nil {
		// Order recovery is best-effort; fall back to whatever kin-openapi
		// holds, sorted for determinism.
		order = doc.Paths.InMatchingOrder()
	}

	return &Document{
		Doc:       doc,
		Raw:       data,
		PathOrder: order,
		Format:    format,
		Source:    source,
		LoadedAt:  time.Now(),
	}, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

func readFile(path string) ([]byte, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, errdefs.New(errdefs.ErrorTypeLoad, "spec file not found", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errdefs.Wrap(err, errdefs.ErrorTypeLoad, "failed to read spec file")
	}
	return data, nil
}

func fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errdefs.Wrap(err, errdefs.ErrorTypeNetwork, "failed to create request")
	}

	client := &http.Client{Timeout: fetchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errdefs.Wrap(err, errdefs.ErrorTypeNetwork, "failed to fetch spec from URL")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errdefs.New(errdefs.ErrorTypeNetwork,
			fmt.Sprintf("HTTP %d when fetching spec", resp.StatusCode), url)
	}
	return io.ReadAll(resp.Body)
}

// pathOrder extracts the top-level paths keys in authored order. YAML is a
// superset of JSON, so a single yaml.v3 parse covers both formats.
func pathOrder(data []byte) ([]string, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if len(root.Content) == 0 {
		return nil, fmt.Errorf("empty document")
	}
	doc := root.Content[0]
	if doc.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("top level is not a mapping")
	}
	for i := 0; i+1 < len(doc.Content); i += 2 {
		if doc.Content[i].Value != "paths" {
			continue
		}
		paths := doc.Content[i+1]
		if paths.Kind != yaml.MappingNode {
			return nil, fmt.Errorf("paths is not a mapping")
		}
		order := make([]string, 0, len(paths.Content)/2)
		for j := 0; j+1 < len(paths.Content); j += 2 {
			order = append(order, paths.Content[j].Value)
		}
		return order, nil
	}
	return nil, fmt.Errorf("no paths key")
}
