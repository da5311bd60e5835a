package store

import (
	"errors"
	"strconv"
	"strings"
)

var ErrNotReadOnly = errors.New("only SELECT and WITH queries are allowed")

// CheckReadOnly accepts queries starting with SELECT or WITH. It is a first
// filter only: each backend runs the query in a read-only database session.
func CheckReadOnly(query string) error {
	fields := strings.Fields(query)
	if len(fields) == 0 {
		return ErrNotReadOnly
	}
	switch strings.ToUpper(fields[0]) {
	case "SELECT", "WITH":
		return nil
	default:
		return ErrNotReadOnly
	}
}

// PositionalArgs orders params keyed "1", "2", ... into a driver argument list.
// Numbering stops at the first missing key.
func PositionalArgs(params map[string]any) []any {
	args := make([]any, 0, len(params))
	for i := 1; i <= len(params); i++ {
		val, ok := params[strconv.Itoa(i)]
		if !ok {
			break
		}
		args = append(args, val)
	}
	return args
}
