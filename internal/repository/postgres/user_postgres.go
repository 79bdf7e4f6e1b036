package postgres

import (
	"context"
	"database/sql"

	"studiosync/internal/model"
	"studiosync/internal/repository"
)

// UserPostgres is a PostgreSQL implementation of repository.UserRepository.
type UserPostgres struct {
	db *sql.DB
}

// NewUserPostgres creates a new UserPostgres repository.
func NewUserPostgres(db *sql.DB) *UserPostgres {
	return &UserPostgres{db: db}
}

var _ repository.UserRepository = (*UserPostgres)(nil)

// Create inserts a new user row and returns the stored record.
func (r *UserPostgres) Create(ctx context.Context, u *model.User) (*model.User, error) {
	const q = `
		INSERT INTO users (id, username, password_hash, role, client_id, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, username, password_hash, role, client_id, is_active, created_at
	`
	row := r.db.QueryRowContext(ctx, q,
		u.ID,
		u.Username,
		u.PasswordHash,
		u.Role,
		u.ClientID,
		u.Active,
		u.CreatedAt,
	)
	var out model.User
	if err := scanUser(row, &out); err != nil {
		return nil, translateUnique(err)
	}
	return &out, nil
}

// FindByID fetches a single user by its ID.
func (r *UserPostgres) FindByID(ctx context.Context, id string) (*model.User, error) {
	const q = `
		SELECT id, username, password_hash, role, client_id, is_active, created_at
		FROM users
		WHERE id = $1
	`
	var u model.User
	if err := scanUser(r.db.QueryRowContext(ctx, q, id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByUsername fetches a single user by exact username match.
// The column collation is case-sensitive, so "Acme1" and "acme1" are distinct.
func (r *UserPostgres) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	const q = `
		SELECT id, username, password_hash, role, client_id, is_active, created_at
		FROM users
		WHERE username = $1
	`
	var u model.User
	if err := scanUser(r.db.QueryRowContext(ctx, q, username), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// SetPassword replaces the credential digest and activates the account.
func (r *UserPostgres) SetPassword(ctx context.Context, id, passwordHash string) error {
	const q = `UPDATE users SET password_hash = $1, is_active = TRUE WHERE id = $2`
	res, err := r.db.ExecContext(ctx, q, passwordHash, id)
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

func scanUser(row *sql.Row, u *model.User) error {
	return row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.ClientID,
		&u.Active,
		&u.CreatedAt,
	)
}
