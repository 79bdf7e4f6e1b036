package postgres

import (
	"context"
	"database/sql"

	"studiosync/internal/model"
	"studiosync/internal/repository"
)

// ClientPostgres is a PostgreSQL implementation of repository.ClientRepository.
type ClientPostgres struct {
	db *sql.DB
}

// NewClientPostgres creates a new ClientPostgres repository.
func NewClientPostgres(db *sql.DB) *ClientPostgres {
	return &ClientPostgres{db: db}
}

var _ repository.ClientRepository = (*ClientPostgres)(nil)

// Create inserts a new client row and returns the stored record.
func (r *ClientPostgres) Create(ctx context.Context, c *model.Client) (*model.Client, error) {
	const q = `
		INSERT INTO clients (id, company_name, vat_number, email, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, company_name, vat_number, email, status, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.CompanyName,
		c.VATNumber,
		c.Email,
		c.Status,
		c.CreatedAt,
	)
	var out model.Client
	if err := row.Scan(
		&out.ID,
		&out.CompanyName,
		&out.VATNumber,
		&out.Email,
		&out.Status,
		&out.CreatedAt,
	); err != nil {
		return nil, translateUnique(err)
	}
	return &out, nil
}

// FindByID fetches a single client by its ID.
func (r *ClientPostgres) FindByID(ctx context.Context, id string) (*model.Client, error) {
	const q = `
		SELECT id, company_name, vat_number, email, status, created_at
		FROM clients
		WHERE id = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, id))
}

// FindByVAT fetches a single client by its VAT number.
func (r *ClientPostgres) FindByVAT(ctx context.Context, vat string) (*model.Client, error) {
	const q = `
		SELECT id, company_name, vat_number, email, status, created_at
		FROM clients
		WHERE vat_number = $1
	`
	return r.scanOne(r.db.QueryRowContext(ctx, q, vat))
}

func (r *ClientPostgres) scanOne(row *sql.Row) (*model.Client, error) {
	var c model.Client
	if err := row.Scan(
		&c.ID,
		&c.CompanyName,
		&c.VATNumber,
		&c.Email,
		&c.Status,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// List returns all clients newest first with their account username joined in.
func (r *ClientPostgres) List(ctx context.Context) ([]model.Client, error) {
	const q = `
		SELECT c.id, c.company_name, c.vat_number, c.email, c.status, c.created_at,
		       COALESCE(u.username, '')
		FROM clients c
		LEFT JOIN users u ON u.client_id = c.id
		ORDER BY c.created_at DESC, c.id DESC
	`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Client, 0)
	for rows.Next() {
		var c model.Client
		if err := rows.Scan(
			&c.ID,
			&c.CompanyName,
			&c.VATNumber,
			&c.Email,
			&c.Status,
			&c.CreatedAt,
			&c.Username,
		); err != nil {
			return nil, err
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Update mutates the business fields of an existing client.
func (r *ClientPostgres) Update(ctx context.Context, c *model.Client) error {
	const q = `
		UPDATE clients
		SET company_name = $1, vat_number = $2, email = $3
		WHERE id = $4
	`
	res, err := r.db.ExecContext(ctx, q, c.CompanyName, c.VATNumber, c.Email, c.ID)
	if err != nil {
		return translateUnique(err)
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

// Delete removes a client row. The schema cascades to the client's account
// and document rows, so one statement clears all client-owned metadata.
func (r *ClientPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM clients WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
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
