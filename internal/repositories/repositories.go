package repositories

import "strings"

// isUniqueErr reports whether err is a SQLite unique-constraint violation on the
// given column. SQLite message form: "UNIQUE constraint failed: table.column".
func isUniqueErr(err error, col string) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") && strings.Contains(msg, strings.ToLower(col))
}
