package storage

import "time"

// SpecDocument is one row of the spec_documents table: a named OpenAPI
// document with its raw content.
type SpecDocument struct {
	ID          int        `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Title       *string    `json:"title,omitempty" db:"title"`
	Version     *string    `json:"version,omitempty" db:"version"`
	Content     string     `json:"content" db:"content"`
	Format      string     `json:"format" db:"format"`
	ContentSize int        `json:"content_size" db:"content_size"`
	IsActive    bool       `json:"is_active" db:"is_active"`
	CreatedAt   *time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// NewSpecDocument builds a document row for insertion. Format should be
// "yaml" or "json"; size is derived from the content.
func NewSpecDocument(name, content, format string) *SpecDocument {
	return &SpecDocument{
		Name:        name,
		Content:     content,
		Format:      format,
		ContentSize: len(content),
		IsActive:    true,
	}
}
