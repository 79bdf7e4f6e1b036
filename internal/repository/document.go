package repository

import (
	"context"

	"studiosync/internal/model"
)

// DocumentRepository defines data access for document metadata using SQL queries only.
// No business logic here — strictly persistence operations. Blob bytes are
// handled by the storage layer; these rows only reference them.
type DocumentRepository interface {
	// Create inserts a new document record.
	// The caller should provide required fields (e.g., ID, CreatedAt) according to the database schema defaults.
	// Returns the stored document (may include values set by the DB).
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID. Missing rows surface as sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByClient returns all documents of one client newest first, with
	// label name and color joined in for labeled documents.
	ListByClient(ctx context.Context, clientID string) ([]model.Document, error)

	// UpdateLabel sets or clears (nil) the label reference of a document.
	// Returns sql.ErrNoRows if the document does not exist.
	UpdateLabel(ctx context.Context, id string, labelID *string) error

	// Delete removes a document by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
