package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"studiosync/internal/repository"
)

// uniqueViolation is the PostgreSQL error code for unique constraint violations.
const uniqueViolation = "23505"

// translateUnique maps constraint violations to repository.ErrDuplicate and
// passes everything else through unchanged.
func translateUnique(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}
