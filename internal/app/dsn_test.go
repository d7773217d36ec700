package app

import (
	"strings"
	"testing"
)

func TestSQLiteDSN(t *testing.T) {
	t.Run("wraps plain paths", func(t *testing.T) {
		got := sqliteDSN("baseball_stats.db")
		if !strings.HasPrefix(got, "file:baseball_stats.db?") {
			t.Fatalf("expected file URI, got %q", got)
		}
		if !strings.Contains(got, "busy_timeout(5000)") {
			t.Fatalf("expected busy_timeout pragma in %q", got)
		}
	})

	t.Run("keeps explicit URIs", func(t *testing.T) {
		in := "file:stats.db?_pragma=journal_mode(DELETE)"
		if got := sqliteDSN(in); got != in {
			t.Fatalf("expected URI unchanged, got %q", got)
		}
	})

	t.Run("trims whitespace", func(t *testing.T) {
		got := sqliteDSN("  stats.db ")
		if !strings.HasPrefix(got, "file:stats.db?") {
			t.Fatalf("expected trimmed path, got %q", got)
		}
	})
}
