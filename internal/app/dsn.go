package app

import "strings"

// sqliteDSN turns a plain file path into a modernc sqlite URI with the
// pragmas the loaders need. Paths already in URI form pass through untouched
// so operators can override pragmas per environment.
func sqliteDSN(path string) string {
	trimmed := strings.TrimSpace(path)
	if strings.HasPrefix(trimmed, "file:") {
		return trimmed
	}

	return "file:" + trimmed +
		"?_pragma=busy_timeout(5000)" +
		"&_pragma=journal_mode(WAL)" +
		"&_pragma=foreign_keys(1)"
}
