// Package storage persists OpenAPI documents in PostgreSQL so a fleet of
// servers can share one catalog of named specs instead of shipping files.
package storage

import (
	"context"
	"database/sql"
	"strings"
	"time"

	_ "github.com/lib/pq" // PostgreSQL driver
	"go.uber.org/zap"

	"github.com/specview/specview/pkg/errdefs"
)

const (
	maxOpenConns = 25
	maxIdleConns = 25
	pingTimeout  = 5 * time.Second
)

// Open connects to the PostgreSQL instance at databaseURL and verifies the
// connection with a ping.
func Open(ctx context.Context, databaseURL string, logger *zap.Logger) (*sql.DB, error) {
	if databaseURL == "" {
		return nil, errdefs.New(errdefs.ErrorTypeDatabase, "database URL is empty", "")
	}
	if !strings.HasPrefix(databaseURL, "postgres://") && !strings.HasPrefix(databaseURL, "postgresql://") {
		return nil, errdefs.New(errdefs.ErrorTypeDatabase,
			"database URL must be a PostgreSQL connection string", "")
	}

	db, err := sql.Open("postgres", databaseURL)
	if err != nil {
		return nil, errdefs.Wrap(err, errdefs.ErrorTypeDatabase, "open database")
	}

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, errdefs.Wrap(err, errdefs.ErrorTypeDatabase, "ping database")
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)

	if logger != nil {
		logger.Info("database connected", zap.String("host", redactURL(databaseURL)))
	}
	return db, nil
}

// Migrate creates the spec_documents table and its indexes. Idempotent.
func Migrate(ctx context.Context, db *sql.DB) error {
	query := `
	CREATE TABLE IF NOT EXISTS spec_documents (
		id SERIAL PRIMARY KEY,
		name VARCHAR(255) UNIQUE NOT NULL,
		title VARCHAR(500),
		version VARCHAR(100),
		content TEXT NOT NULL,
		format VARCHAR(10) DEFAULT 'yaml',
		content_size INTEGER,
		is_active BOOLEAN DEFAULT true,
		created_at TIMESTAMP(6) DEFAULT NOW(),
		updated_at TIMESTAMP(6) DEFAULT NOW()
	);

	CREATE INDEX IF NOT EXISTS idx_spec_documents_name ON spec_documents(name);
	CREATE INDEX IF NOT EXISTS idx_spec_documents_is_active ON spec_documents(is_active);
	`
	if _, err := db.ExecContext(ctx, query); err != nil {
		return errdefs.Wrap(err, errdefs.ErrorTypeDatabase, "create spec_documents table")
	}
	return nil
}

// redactURL strips credentials from a connection string for logging.
func redactURL(url string) string {
	if i := strings.LastIndex(url, "@"); i >= 0 {
		return "***@" + url[i+1:]
	}
	return "***"
}
