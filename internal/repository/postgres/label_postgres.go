package postgres

import (
	"context"
	"database/sql"

	"studiosync/internal/model"
	"studiosync/internal/repository"
)

// LabelPostgres is a PostgreSQL implementation of repository.LabelRepository.
type LabelPostgres struct {
	db *sql.DB
}

// NewLabelPostgres creates a new LabelPostgres repository.
func NewLabelPostgres(db *sql.DB) *LabelPostgres {
	return &LabelPostgres{db: db}
}

var _ repository.LabelRepository = (*LabelPostgres)(nil)

// List returns the full label taxonomy ordered by name.
func (r *LabelPostgres) List(ctx context.Context) ([]model.Label, error) {
	const q = `
		SELECT id, name, color_code
		FROM document_labels
		ORDER BY name ASC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Label, 0)
	for rows.Next() {
		var l model.Label
		if err := rows.Scan(&l.ID, &l.Name, &l.ColorCode); err != nil {
			return nil, err
		}
		items = append(items, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}
