package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"gitlab.com/campusfound/campusfound-backend/pkg/errorx"
)

var (
	ErrNoRowsAffected = errors.New("no rows affected")
	ErrNilFunc        = errors.New("update function cannot be nil")
)

const uniqueViolationCode = "23505"

// mapConstraintErr converts a unique-constraint violation into a
// duplicate-entry error, leaving other errors untouched.
func mapConstraintErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return errorx.NewDuplicateEntry().WithCause(err)
	}
	return err
}
