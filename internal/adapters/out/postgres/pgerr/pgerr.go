// Package pgerr translates PostgreSQL driver errors into the errs family so
// that callers never depend on driver types.
package pgerr

import (
	"errors"

	"mes/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
)

// SQLSTATE codes the application reacts to.
const (
	UniqueViolation      = "23505"
	ForeignKeyViolation  = "23503"
	SerializationFailure = "40001"
	DeadlockDetected     = "40P01"
)

// Translate maps a driver error onto the errs family. Errors that carry no
// SQLSTATE, and codes without a mapping, are returned unchanged.
//
// param names the aggregate the statement was written for and ends up in the
// error message.
func Translate(param string, err error) error {
	if err == nil {
		return nil
	}

	code := Code(err)
	switch code {
	case UniqueViolation:
		return errs.NewValueIsInvalidErrorWithCause(param, err)
	case ForeignKeyViolation:
		return errs.NewRuleIsViolatedErrorWithCause(param+" is referenced by or references a missing record", err)
	case SerializationFailure, DeadlockDetected:
		return errs.NewVersionIsInvalidError(param, err)
	default:
		return err
	}
}

// Code extracts the SQLSTATE of err from either lib/pq or pgx, or returns "".
func Code(err error) string {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}
