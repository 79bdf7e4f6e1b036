package repository

import (
	"context"

	"studiosync/internal/model"
)

// ClientRepository defines data access for client entities using SQL queries only.
// No business logic here — strictly persistence operations.
type ClientRepository interface {
	// Create inserts a new client record and returns the stored client
	// (may include values set by the DB, e.g. status and created_at).
	Create(ctx context.Context, c *model.Client) (*model.Client, error)

	// FindByID returns a client by its ID. Missing rows surface as sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.Client, error)

	// FindByVAT returns a client by its VAT number.
	FindByVAT(ctx context.Context, vat string) (*model.Client, error)

	// List returns all clients newest first, with the username of each
	// client's account joined in.
	List(ctx context.Context) ([]model.Client, error)

	// Update mutates the business fields (company name, VAT, email) of an
	// existing client. Returns sql.ErrNoRows if the client does not exist.
	Update(ctx context.Context, c *model.Client) error

	// Delete removes a client row. The schema cascades the delete to the
	// client's account and document rows. Returns sql.ErrNoRows if the
	// client does not exist.
	Delete(ctx context.Context, id string) error
}

// UserRepository defines data access for portal accounts.
type UserRepository interface {
	// Create inserts a new user record and returns the stored user.
	Create(ctx context.Context, u *model.User) (*model.User, error)

	// FindByID returns a user by its ID. Missing rows surface as sql.ErrNoRows.
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByUsername returns a user by exact, case-sensitive username match.
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// SetPassword replaces the stored credential digest and marks the
	// account active. Returns sql.ErrNoRows if the user does not exist.
	SetPassword(ctx context.Context, id, passwordHash string) error
}

// LabelRepository defines read access to the document label taxonomy.
// Labels are seeded by migration and managed outside this service.
type LabelRepository interface {
	// List returns all labels ordered by name.
	List(ctx context.Context) ([]model.Label, error)
}
