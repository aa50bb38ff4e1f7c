// Package spec holds the in-memory index over a single loaded OpenAPI
// document and answers the queries the MCP tools are built on.
package spec

import (
	"context"
	"sync/atomic"

	"github.com/getkin/kin-openapi/openapi3"
	"go.uber.org/zap"

	"github.com/specview/specview/pkg/loader"
)

// Metadata is the info block of the loaded document.
type Metadata struct {
	Title       string
	Version     string
	Description string
}

// snapshot is the complete store state built by one load. It is immutable
// after construction and replaced wholesale, so a reader never observes a
// document without its index.
type snapshot struct {
	doc    *openapi3.T
	source string
	ops    []*Operation
	byID   map[string]*Operation
	byPath map[string]*Operation // key: "METHOD path"
	tags   []string
	meta   Metadata
}

// Store owns the currently loaded document. Instances are independent;
// handlers receive one by reference rather than through package state, so
// tests and multi-tenant setups can run isolated stores side by side.
//
// Load and Clear publish a fully built snapshot with a single atomic
// assignment. Concurrent readers see either the old or the new state, never
// a mix. Query methods never fail on the empty state: they return empty or
// absent results so callers can render a uniform "no schema" message.
type Store struct {
	state  atomic.Pointer[snapshot]
	logger *zap.Logger
}

// NewStore creates an empty store.
func NewStore(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{logger: logger}
}

// Load reads, parses, and indexes the document at source (file path or URL),
// then replaces the store's state. On failure the prior state is untouched.
func (s *Store) Load(ctx context.Context, source string) error {
	doc, err := loader.Load(ctx, source)
	if err != nil {
		return err
	}
	return s.install(doc)
}

// LoadBytes is Load for an in-memory document, e.g. one fetched from the
// spec database.
func (s *Store) LoadBytes(data []byte, source string) error {
	doc, err := loader.LoadBytes(data, source)
	if err != nil {
		return err
	}
	return s.install(doc)
}

func (s *Store) install(doc *loader.Document) error {
	snap := buildSnapshot(doc)
	s.state.Store(snap)
	s.logger.Info("spec loaded",
		zap.String("source", doc.Source),
		zap.String("title", snap.meta.Title),
		zap.String("version", snap.meta.Version),
		zap.Int("operations", len(snap.ops)),
	)
	return nil
}

// Clear resets the store to the never-loaded state. Idempotent.
func (s *Store) Clear() {
	s.state.Store(nil)
	s.logger.Info("spec cleared")
}

// HasSchema reports whether a document is currently loaded.
func (s *Store) HasSchema() bool {
	return s.state.Load() != nil
}

// Document returns the loaded document, or nil.
func (s *Store) Document() *openapi3.T {
	if snap := s.state.Load(); snap != nil {
		return snap.doc
	}
	return nil
}

// Source returns the source the current document was loaded from.
func (s *Store) Source() string {
	if snap := s.state.Load(); snap != nil {
		return snap.source
	}
	return ""
}

// GetMetadata returns the document's info block; ok is false iff no schema
// is loaded.
func (s *Store) GetMetadata() (Metadata, bool) {
	snap := s.state.Load()
	if snap == nil {
		return Metadata{}, false
	}
	return snap.meta, true
}

// Tags returns every tag referenced by an operation, in first-seen index
// order.
func (s *Store) Tags() []string {
	if snap := s.state.Load(); snap != nil {
		return snap.tags
	}
	return nil
}
