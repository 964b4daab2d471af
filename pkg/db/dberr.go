package db

import (
	"errors"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// IsNotFound reports whether the error is a missing-row lookup.
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsUniqueViolation reports whether the error is a unique constraint failure.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if code := pgErrorCode(err); code != "" {
		return code == pgUniqueViolation
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}

// IsForeignKeyViolation reports whether the error is a referential failure,
// e.g. deleting a client still referenced by quotes or orders.
func IsForeignKeyViolation(err error) bool {
	if err == nil {
		return false
	}
	if code := pgErrorCode(err); code != "" {
		return code == pgForeignKeyViolation
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}

var (
	pgDetailKeyRe  = regexp.MustCompile(`Key \(([^)]+)\)=`)
	sqliteUniqueRe = regexp.MustCompile(`UNIQUE constraint failed: \w+\.(\w+)`)
)

// ConflictField extracts the column that caused a unique violation, when
// derivable from the driver error detail. The empty string means the column
// could not be determined.
func ConflictField(err error) string {
	if err == nil {
		return ""
	}

	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) && pgxErr.Code == pgUniqueViolation {
		if field := fieldFromDetail(pgxErr.Detail); field != "" {
			return field
		}
		return fieldFromConstraint(pgxErr.ConstraintName, pgxErr.TableName)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
		if field := fieldFromDetail(pqErr.Detail); field != "" {
			return field
		}
		return fieldFromConstraint(pqErr.Constraint, pqErr.Table)
	}

	if m := sqliteUniqueRe.FindStringSubmatch(err.Error()); m != nil {
		return m[1]
	}

	return ""
}

func pgErrorCode(err error) string {
	var pgxErr *pgconn.PgError
	if errors.As(err, &pgxErr) {
		return pgxErr.Code
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code)
	}
	return ""
}

func fieldFromDetail(detail string) string {
	if m := pgDetailKeyRe.FindStringSubmatch(detail); m != nil {
		return m[1]
	}
	return ""
}

// fieldFromConstraint falls back to the Postgres default constraint naming,
// <table>_<column>_key.
func fieldFromConstraint(constraint, table string) string {
	if constraint == "" {
		return ""
	}
	field := strings.TrimSuffix(constraint, "_key")
	if table != "" {
		field = strings.TrimPrefix(field, table+"_")
	}
	return field
}
