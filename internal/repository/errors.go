package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Sentinel errors surfaced by repositories. Services translate these into
// their own error vocabulary.
var (
	// ErrDuplicate signals a unique-constraint violation (code 23505).
	ErrDuplicate = errors.New("duplicate record")
)

// isUniqueViolation reports whether err is a PostgreSQL unique-constraint
// violation. The schema's uniqueness constraints are the source of truth for
// duplicate detection, so concurrent identical inserts cannot race past an
// application-level check.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
