package catalog

import (
	"database/sql"
	"errors"
	"strings"
)

var (
	// ErrNotFound marks lookups that matched no catalog row.
	ErrNotFound = errors.New("not found")
	// ErrValidation marks writes rejected by a storage constraint the caller
	// can correct (e.g. a rating outside the 1-10 range).
	ErrValidation = errors.New("validation error")
)

// SQLite primary result code for constraint violations plus the extended
// codes the resolver and rating upsert care about.
const (
	sqliteConstraintCode           = 19
	sqliteConstraintCheckCode      = 275
	sqliteConstraintPrimaryKeyCode = 1555
	sqliteConstraintUniqueCode     = 2067
)

func sqliteCode(err error) int {
	var coder interface{ Code() int }
	if errors.As(err, &coder) {
		return coder.Code()
	}
	return 0
}

// isUniqueViolation reports whether err is a UNIQUE or PRIMARY KEY
// constraint failure. The resolver treats these as "another writer created
// the row first" and re-reads instead of failing.
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	switch sqliteCode(err) {
	case sqliteConstraintUniqueCode, sqliteConstraintPrimaryKeyCode:
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") ||
		strings.Contains(msg, "PRIMARY KEY constraint failed")
}

// isCheckViolation reports whether err is a CHECK constraint failure.
func isCheckViolation(err error) bool {
	if err == nil {
		return false
	}
	if code := sqliteCode(err); code == sqliteConstraintCheckCode {
		return true
	}
	return strings.Contains(err.Error(), "CHECK constraint failed")
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
