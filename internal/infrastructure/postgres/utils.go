package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Código SQLSTATE de unique_violation.
const pgUniqueViolation = "23505"

// isUniqueViolation detecta el choque contra un índice único (en particular el
// de numeración por ámbito) para que el caller decida si reintenta.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
