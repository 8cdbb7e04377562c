package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrDuplicate marks a write rejected by a uniqueness constraint. The
// lessons table carries a partial unique index over active bookings, so
// this is how a lost booking race surfaces.
var ErrDuplicate = errors.New("duplicate record")

// ErrNotFound marks an update/delete that matched no row.
var ErrNotFound = errors.New("record not found")

const uniqueViolationCode = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
