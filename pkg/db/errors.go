package db

import "strings"

// IsUniqueViolation reports whether err came from a violated unique
// constraint. With a non-empty constraintName it matches that constraint
// only; otherwise it falls back on the generic driver wording (Postgres
// in production, sqlite in tests).
func IsUniqueViolation(err error, constraintName string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if constraintName != "" {
		return strings.Contains(msg, constraintName)
	}
	return strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "UNIQUE constraint failed")
}
