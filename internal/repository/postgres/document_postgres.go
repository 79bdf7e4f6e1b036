package postgres

import (
	"context"
	"database/sql"

	"studiosync/internal/model"
	"studiosync/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, client_id, file_name, original_name, storage_path, file_type, file_size, label_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, client_id, file_name, original_name, storage_path, file_type, file_size, label_id, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.ClientID,
		doc.Filename,
		doc.OriginalName,
		doc.StoragePath,
		doc.ContentType,
		doc.Size,
		doc.LabelID,
		doc.CreatedAt,
	)
	var out model.Document
	if err := row.Scan(
		&out.ID,
		&out.ClientID,
		&out.Filename,
		&out.OriginalName,
		&out.StoragePath,
		&out.ContentType,
		&out.Size,
		&out.LabelID,
		&out.CreatedAt,
	); err != nil {
		return nil, translateUnique(err)
	}
	return &out, nil
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `
		SELECT id, client_id, file_name, original_name, storage_path, file_type, file_size, label_id, created_at
		FROM documents
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.ClientID,
		&d.Filename,
		&d.OriginalName,
		&d.StoragePath,
		&d.ContentType,
		&d.Size,
		&d.LabelID,
		&d.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListByClient returns all documents of a client newest first with joined label info.
func (r *DocumentPostgres) ListByClient(ctx context.Context, clientID string) ([]model.Document, error) {
	const q = `
		SELECT d.id, d.client_id, d.file_name, d.original_name, d.storage_path, d.file_type, d.file_size, d.label_id, d.created_at,
		       l.name, l.color_code
		FROM documents d
		LEFT JOIN document_labels l ON d.label_id = l.id
		WHERE d.client_id = $1
		ORDER BY d.created_at DESC, d.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q, clientID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		var d model.Document
		if err := rows.Scan(
			&d.ID,
			&d.ClientID,
			&d.Filename,
			&d.OriginalName,
			&d.StoragePath,
			&d.ContentType,
			&d.Size,
			&d.LabelID,
			&d.CreatedAt,
			&d.LabelName,
			&d.LabelColor,
		); err != nil {
			return nil, err
		}
		items = append(items, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// UpdateLabel sets or clears the label reference of a document.
func (r *DocumentPostgres) UpdateLabel(ctx context.Context, id string, labelID *string) error {
	const q = `UPDATE documents SET label_id = $1 WHERE id = $2`
	res, err := r.db.ExecContext(ctx, q, labelID, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	// Ignore rows affected: deletes are idempotent at this layer.
	_, _ = res.RowsAffected()
	return nil
}
