// Package server wires the spec store, the MCP tool surface, and the chosen
// transport into a runnable process.
package server

import (
	"context"
	"database/sql"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"

	"github.com/specview/specview/pkg/spec"
	"github.com/specview/specview/pkg/storage"
	"github.com/specview/specview/pkg/tools"
	"github.com/specview/specview/pkg/watch"
)

const serverName = "specview"

const serverInstructions = "Query the loaded OpenAPI document: list and search operations, " +
	"inspect request/response schemas and headers, and review auth requirements. " +
	"Call the help tool for parameter conventions and paging."

// Server is one running specview instance.
type Server struct {
	cfg     *Config
	version string
	logger  *zap.Logger
	store   *spec.Store
	mcp     *mcp.Server

	db      *sql.DB
	repo    *storage.Repository
	watcher *watch.Watcher
}

// New builds a server from cfg. The spec is not loaded yet; call LoadInitial
// before Run.
func New(cfg *Config, version string, logger *zap.Logger) (*Server, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	store := spec.NewStore(logger.Named("store"))

	mcpServer := mcp.NewServer(
		&mcp.Implementation{Name: serverName, Version: version},
		&mcp.ServerOptions{Instructions: serverInstructions},
	)
	toolset := tools.NewToolset(store, logger.Named("tools"), cfg.ChunkSize)
	if err := toolset.Register(mcpServer); err != nil {
		return nil, err
	}

	return &Server{
		cfg:     cfg,
		version: version,
		logger:  logger,
		store:   store,
		mcp:     mcpServer,
	}, nil
}

// Store exposes the spec store, mainly for tests and the shell.
func (s *Server) Store() *spec.Store {
	return s.store
}

// LoadInitial loads the configured document. With neither a spec source nor
// a database configured, the server starts empty and tools answer with
// load guidance until a reload supplies a document.
func (s *Server) LoadInitial(ctx context.Context) error {
	if s.cfg.DatabaseMode() {
		db, err := storage.Open(ctx, s.cfg.DatabaseURL, s.logger.Named("storage"))
		if err != nil {
			return err
		}
		if err := storage.Migrate(ctx, db); err != nil {
			db.Close()
			return err
		}
		s.db = db
		s.repo = storage.NewRepository(db)
		return s.loadFromDatabase(ctx)
	}
	if s.cfg.SpecSource != "" {
		return s.store.Load(ctx, s.cfg.SpecSource)
	}
	s.logger.Info("no spec source configured, starting empty")
	return nil
}

func (s *Server) loadFromDatabase(ctx context.Context) error {
	doc, err := s.repo.GetByName(ctx, s.cfg.SpecName)
	if err != nil {
		return err
	}
	return s.store.LoadBytes([]byte(doc.Content), "db:"+doc.Name)
}

// Reload re-reads the configured document and swaps it in atomically. A
// failed reload leaves the previous document serving.
func (s *Server) Reload(ctx context.Context) error {
	if s.cfg.DatabaseMode() {
		return s.loadFromDatabase(ctx)
	}
	if s.cfg.SpecSource != "" {
		return s.store.Load(ctx, s.cfg.SpecSource)
	}
	return nil
}

// Run serves until ctx is canceled. With watch enabled, file changes reload
// the document while serving.
func (s *Server) Run(ctx context.Context) error {
	defer s.Close()

	if s.cfg.Watch {
		watcher, err := watch.New(s.cfg.SpecSource, s.Reload, 0, s.logger.Named("watch"))
		if err != nil {
			return err
		}
		s.watcher = watcher
		watcher.Start(ctx)
	}

	if s.cfg.Transport == TransportHTTP {
		return s.runHTTP(ctx)
	}
	s.logger.Info("serving over stdio", zap.String("version", s.version))
	return s.mcp.Run(ctx, &mcp.StdioTransport{})
}

// Close releases held resources. Safe to call more than once.
func (s *Server) Close() {
	if s.watcher != nil {
		if err := s.watcher.Stop(); err != nil {
			s.logger.Warn("stopping watcher", zap.Error(err))
		}
		s.watcher = nil
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			s.logger.Warn("closing database", zap.Error(err))
		}
		s.db = nil
	}
}
