package sqlite

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// parseDSN turns sqlite://<path>[?query] into a modernc driver DSN.
// Relative paths resolve against the working directory and ~/ against the
// user's home.
func parseDSN(dsn string) (string, error) {
	rest, ok := strings.CutPrefix(dsn, "sqlite://")
	if !ok {
		return "", fmt.Errorf("invalid sqlite DSN scheme, expected sqlite://")
	}
	if rest == ":memory:" {
		return rest, nil
	}

	path, query, hasQuery := strings.Cut(rest, "?")
	path, err := url.PathUnescape(path)
	if err != nil {
		return "", fmt.Errorf("unescaping path: %w", err)
	}
	if path == "" {
		return "", fmt.Errorf("sqlite DSN has no database path")
	}

	switch {
	case strings.HasPrefix(path, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	case filepath.IsAbs(path), strings.HasPrefix(path, "./"), strings.HasPrefix(path, "../"):
	default:
		path = "./" + path
	}

	if hasQuery {
		return path + "?" + query, nil
	}
	return path, nil
}
