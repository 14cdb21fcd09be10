package mysql

import (
	"database/sql"
	"strings"
)

// nullIfEmpty stores blank strings as NULL
func nullIfEmpty(s string) sql.NullString {
	if strings.TrimSpace(s) == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
