package textnorm

import "testing"

func TestStripAccents(t *testing.T) {
	cases := map[string]string{
		"Ôhtáni":          "Ohtani",
		"José Ramírez":    "Jose Ramirez",
		"plain":           "plain",
		"":                "",
		"Teoscar Hernánd": "Teoscar Hernand",
	}
	for in, want := range cases {
		if got := StripAccents(in); got != want {
			t.Fatalf("StripAccents(%q) = %q, want %q", in, got, want)
		}
		// Stripping is idempotent.
		if got := StripAccents(StripAccents(in)); got != want {
			t.Fatalf("StripAccents not idempotent for %q: got %q", in, got)
		}
	}
}

func TestStripMarkers(t *testing.T) {
	if got := StripMarkers("Shohei Ohtani*#"); got != "Shohei Ohtani" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := StripMarkers("  Aaron Judge+ "); got != "Aaron Judge" {
		t.Fatalf("unexpected: %q", got)
	}
}

func TestParseYear(t *testing.T) {
	t.Run("two digit", func(t *testing.T) {
		got, err := ParseYear("22")
		if err != nil || got != 2022 {
			t.Fatalf("got %d, %v", got, err)
		}
	})

	t.Run("four digit", func(t *testing.T) {
		got, err := ParseYear("1998")
		if err != nil || got != 1998 {
			t.Fatalf("got %d, %v", got, err)
		}
	})

	t.Run("rejects other shapes", func(t *testing.T) {
		for _, token := range []string{"", "2", "202", "20222", "2x", "abcd", "-22"} {
			if _, err := ParseYear(token); err == nil {
				t.Fatalf("expected error for %q", token)
			}
		}
	})
}

func TestParseAwards(t *testing.T) {
	cases := map[string]string{
		"MVP-1AS":    "MVP-1, AS",
		"CYA-1MVP-13": "CYA-1, MVP-13",
		"ASGGSS":     "AS, GG, SS",
		"MVP-25":     "MVP-25",
		"":           "",
		"ROY-2AS":    "ROY-2, AS",
	}
	for in, want := range cases {
		if got := ParseAwards(in); got != want {
			t.Fatalf("ParseAwards(%q) = %q, want %q", in, got, want)
		}
	}

	t.Run("unparseable input passes through", func(t *testing.T) {
		if got := ParseAwards("xyz"); got != "xyz" {
			t.Fatalf("unexpected: %q", got)
		}
	})
}

func TestParsePositions(t *testing.T) {
	cases := map[string]string{
		"*6/D":    "*SS / DH",
		"*98/HD4": "*RF, CF / PH, DH, 2B",
		"*D1/H97": "*DH, P / PH, RF, LF",
		"7":       "LF",
		"":        "",
		"77/7":    "LF / LF",
	}
	for in, want := range cases {
		if got := ParsePositions(in); got != want {
			t.Fatalf("ParsePositions(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNormalizeStatToken(t *testing.T) {
	cases := []struct {
		token, key, label string
	}{
		{"W-L%", "w_l_pct", "W-L%"},
		{"so/9", "so9", "SO/9"},
		{"OPS+", "ops_plus", "OPS+"},
		{"2B", "doubles", "2B"},
		{"era", "era", "ERA"},
		{"Rbat+", "rbat_plus", "Rbat+"},
		{"so/bb", "so_bb", "SO/BB"},
	}
	for _, tc := range cases {
		key, label := NormalizeStatToken(tc.token)
		if key != tc.key || label != tc.label {
			t.Fatalf("NormalizeStatToken(%q) = (%q, %q), want (%q, %q)", tc.token, key, label, tc.key, tc.label)
		}
	}
}

func TestCategory(t *testing.T) {
	if Category("era") != CategoryPitcher {
		t.Fatal("era should be pitcher-only")
	}
	if Category("ops") != CategoryHitter {
		t.Fatal("ops should be hitter-only")
	}
	if Category("hr") != CategoryCommon {
		t.Fatal("hr should be common")
	}
}

func TestTeamStatKey(t *testing.T) {
	if got := TeamStatKey(CategoryPitcher, "so_bb"); got != "so_w" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := TeamStatKey(CategoryHitter, "gidp"); got != "gdp" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := TeamStatKey(CategoryPitcher, "era"); got != "era" {
		t.Fatalf("unexpected: %q", got)
	}
	if got := TeamStatKey(CategoryHitter, "awards"); got != "" {
		t.Fatalf("metadata keys have no team column, got %q", got)
	}
}
