package store

import "database/sql"

func fromNullString(ns sql.NullString) string {
	if !ns.Valid {
		return ""
	}
	return ns.String
}

// boolToInt converts a boolean to 1/0 for SQLite.
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// clampMinutes keeps the reminder lead inside [1,120].
func clampMinutes(m int) int {
	if m < 1 {
		return 1
	}
	if m > 120 {
		return 120
	}
	return m
}
