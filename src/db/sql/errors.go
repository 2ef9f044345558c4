package db

import (
	"errors"

	"github.com/VersaceXcodes/personal-finance-tracker-app-u1v9u6/src/apperr"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	uniqueViolation     = "23505"
	foreignKeyViolation = "23503"
	numericOutOfRange   = "22003"
)

// dbError maps a pgx error onto an apperr kind. what names the record for
// not-found messages, e.g. "account 4".
func dbError(err error, what string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFoundf("%s not found", what)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case uniqueViolation:
			return apperr.Conflictf("%s already exists", what)
		case foreignKeyViolation:
			return apperr.Validationf("%s references a record that does not exist", what)
		case numericOutOfRange:
			return apperr.Validationf("%s: amount is out of range", what)
		}
	}
	return apperr.Wrap(err, "database error")
}
