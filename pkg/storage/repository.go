package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/specview/specview/pkg/errdefs"
)

// Repository runs the spec_documents queries.
type Repository struct {
	db *sql.DB
}

// NewRepository wraps db in a repository.
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const specColumns = "id, name, title, version, content, format, content_size, is_active, created_at, updated_at"

// Create inserts doc and fills in its generated columns.
func (r *Repository) Create(ctx context.Context, doc *SpecDocument) error {
	query := `
		INSERT INTO spec_documents (name, title, version, content, format, content_size, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		doc.Name, doc.Title, doc.Version, doc.Content, doc.Format, doc.ContentSize, doc.IsActive,
	).Scan(&doc.ID, &doc.CreatedAt, &doc.UpdatedAt)
	if err != nil {
		return errdefs.Wrap(err, errdefs.ErrorTypeDatabase, "insert spec document")
	}
	return nil
}

// GetByName fetches one document by its unique name.
func (r *Repository) GetByName(ctx context.Context, name string) (*SpecDocument, error) {
	query := "SELECT " + specColumns + " FROM spec_documents WHERE name = $1"
	doc := &SpecDocument{}
	err := r.db.QueryRowContext(ctx, query, name).Scan(
		&doc.ID, &doc.Name, &doc.Title, &doc.Version, &doc.Content,
		&doc.Format, &doc.ContentSize, &doc.IsActive, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, errdefs.Newf(errdefs.ErrorTypeNotFound, "spec document %q not found", name)
	}
	if err != nil {
		return nil, errdefs.Wrap(err, errdefs.ErrorTypeDatabase, "get spec document")
	}
	return doc, nil
}

// List returns all documents, newest first.
func (r *Repository) List(ctx context.Context) ([]*SpecDocument, error) {
	return r.list(ctx, "SELECT "+specColumns+" FROM spec_documents ORDER BY created_at DESC")
}

// Active returns the active documents, newest first.
func (r *Repository) Active(ctx context.Context) ([]*SpecDocument, error) {
	return r.list(ctx, "SELECT "+specColumns+" FROM spec_documents WHERE is_active = true ORDER BY created_at DESC")
}

func (r *Repository) list(ctx context.Context, query string) ([]*SpecDocument, error) {
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, errdefs.Wrap(err, errdefs.ErrorTypeDatabase, "list spec documents")
	}
	defer rows.Close()

	var docs []*SpecDocument
	for rows.Next() {
		doc := &SpecDocument{}
		err := rows.Scan(
			&doc.ID, &doc.Name, &doc.Title, &doc.Version, &doc.Content,
			&doc.Format, &doc.ContentSize, &doc.IsActive, &doc.CreatedAt, &doc.UpdatedAt,
		)
		if err != nil {
			return nil, errdefs.Wrap(err, errdefs.ErrorTypeDatabase, "scan spec document")
		}
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, errdefs.Wrap(err, errdefs.ErrorTypeDatabase, "iterate spec documents")
	}
	return docs, nil
}

// Update rewrites an existing document's content and metadata.
func (r *Repository) Update(ctx context.Context, doc *SpecDocument) error {
	query := `
		UPDATE spec_documents
		SET title = $2, version = $3, content = $4, format = $5, content_size = $6,
		    is_active = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		doc.ID, doc.Title, doc.Version, doc.Content, doc.Format, doc.ContentSize, doc.IsActive,
	).Scan(&doc.UpdatedAt)
	if err == sql.ErrNoRows {
		return errdefs.Newf(errdefs.ErrorTypeNotFound, "spec document %d not found", doc.ID)
	}
	if err != nil {
		return errdefs.Wrap(err, errdefs.ErrorTypeDatabase, "update spec document")
	}
	return nil
}

// SetActive toggles a document's active flag.
func (r *Repository) SetActive(ctx context.Context, id int, active bool) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE spec_documents SET is_active = $2, updated_at = NOW() WHERE id = $1", id, active)
	if err != nil {
		return errdefs.Wrap(err, errdefs.ErrorTypeDatabase, "set active flag")
	}
	return requireAffected(result, id)
}

// Delete removes a document.
func (r *Repository) Delete(ctx context.Context, id int) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM spec_documents WHERE id = $1", id)
	if err != nil {
		return errdefs.Wrap(err, errdefs.ErrorTypeDatabase, "delete spec document")
	}
	return requireAffected(result, id)
}

func requireAffected(result sql.Result, id int) error {
	n, err := result.RowsAffected()
	if err != nil {
		return errdefs.Wrap(err, errdefs.ErrorTypeDatabase, "rows affected")
	}
	if n == 0 {
		return errdefs.New(errdefs.ErrorTypeNotFound,
			fmt.Sprintf("spec document %d not found", id), "")
	}
	return nil
}
