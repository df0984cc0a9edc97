package model

import (
	"strings"
	"unicode"
)

// SnakeCase converts a schema name like "EmployeeDivision" or "employee
// division" into a table name like "employee_division".
func SnakeCase(name string) string {
	var sb strings.Builder
	sb.Grow(len(name) + 4)

	previousLower := false
	for _, r := range name {
		switch {
		case unicode.IsUpper(r):
			if previousLower {
				sb.WriteByte('_')
			}
			sb.WriteRune(unicode.ToLower(r))
			previousLower = false
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			sb.WriteRune(r)
			previousLower = true
		default:
			// Whitespace, dashes, and the rest collapse into one underscore.
			if sb.Len() > 0 && !strings.HasSuffix(sb.String(), "_") {
				sb.WriteByte('_')
			}
			previousLower = false
		}
	}
	return strings.Trim(sb.String(), "_")
}
