package server

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

type healthResponse struct {
	Status     string `json:"status"`
	Service    string `json:"service"`
	Version    string `json:"version"`
	SpecLoaded bool   `json:"spec_loaded"`
	SpecTitle  string `json:"spec_title,omitempty"`
}

type reloadResponse struct {
	Success bool   `json:"success"`
	Source  string `json:"source,omitempty"`
	Error   string `json:"error,omitempty"`
}

func (s *Server) runHTTP(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/reload", s.handleReload)

	streamable := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.mcp
	}, nil)
	mux.Handle(s.cfg.BasePath, streamable)
	mux.Handle(s.cfg.BasePath+"/", streamable)

	httpServer := &http.Server{
		Addr:    s.cfg.HTTPAddr,
		Handler: s.requestLogger(mux),
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("serving over http",
			zap.String("addr", s.cfg.HTTPAddr),
			zap.String("base_path", s.cfg.BasePath),
			zap.String("version", s.version),
		)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// requestLogger tags each request with an id and logs its outcome.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := r.Header.Get("X-Request-Id")
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", requestID)

		start := time.Now()
		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		s.logger.Debug("http request",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", recorder.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	resp := healthResponse{
		Status:     "healthy",
		Service:    serverName,
		Version:    s.version,
		SpecLoaded: s.store.HasSchema(),
	}
	if meta, ok := s.store.GetMetadata(); ok {
		resp.SpecTitle = meta.Title
	}
	writeJSON(w, http.StatusOK, resp, s.logger)
}

func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err := s.Reload(r.Context()); err != nil {
		s.logger.Error("reload failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError,
			reloadResponse{Success: false, Error: err.Error()}, s.logger)
		return
	}
	writeJSON(w, http.StatusOK,
		reloadResponse{Success: true, Source: s.store.Source()}, s.logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encoding response", zap.Error(err))
	}
}
