package cli

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/dugout-cli/dugout/internal/domain/matchup"
	"github.com/dugout-cli/dugout/internal/domain/platoon"
	"github.com/dugout-cli/dugout/internal/domain/statline"
	"github.com/dugout-cli/dugout/internal/platform/style"
	"github.com/dugout-cli/dugout/internal/usecase"
)

func plainRenderer() (*Renderer, *bytes.Buffer) {
	var buf bytes.Buffer
	return NewRenderer(&buf, style.New(false)), &buf
}

func TestRenderer_Report_Layout(t *testing.T) {
	t.Parallel()

	renderer, buf := plainRenderer()
	renderer.Report(usecase.Report{
		Header:  "Mike Trout (HITTER)",
		Columns: []usecase.ReportColumn{{Label: "Season", Key: "year"}, {Label: "HR", Key: "hr"}},
		Widths:  []int{6, 2},
		Historical: []usecase.ReportRow{
			{Cells: []usecase.ReportCell{{Text: "2021"}, {Text: "8"}}},
			{
				Cells:     []usecase.ReportCell{{Text: "2023"}, {Text: "18"}},
				GapBefore: "[Did not play in 2022]",
			},
		},
		Current: []usecase.ReportRow{
			{Cells: []usecase.ReportCell{{Text: "2025"}, {Text: "24"}}},
		},
		CurrentGap: "[Did not play in 2024]",
	})

	lines := strings.Split(buf.String(), "\n")
	want := []string{
		"",
		"Mike Trout (HITTER)",
		"===================",
		"Season  HR",
		"2021    8 ",
		"[Did not play in 2022]",
		"2023    18",
		"[Did not play in 2024]",
		"",
		"2025    24",
		"",
	}
	for i, line := range want {
		if i >= len(lines) || lines[i] != line {
			t.Fatalf("line %d:\n got %q\nwant %q\nfull output:\n%s", i, lines[i], line, buf.String())
		}
	}
}

func TestRenderer_Report_ComparisonFooter(t *testing.T) {
	t.Parallel()

	renderer, buf := plainRenderer()
	renderer.Report(usecase.Report{
		Header:  "Gerrit Cole (PITCHER)",
		Columns: []usecase.ReportColumn{{Label: "Season", Key: "year"}, {Label: "ERA", Key: "era"}},
		Widths:  []int{13, 4},
		Historical: []usecase.ReportRow{
			{Cells: []usecase.ReportCell{{Text: "2024"}, {Text: "3.41"}}},
		},
		ComparisonLabel: "Team Avg",
		ComparisonRows:  [][]string{{"2024 Team Avg", "3.74"}},
	})

	out := buf.String()
	// Footer separator spans all columns plus the two-space gutters.
	if !strings.Contains(out, "\n"+strings.Repeat("-", 13+4+2)+"\n") {
		t.Fatalf("missing footer separator:\n%s", out)
	}
	if !strings.Contains(out, "2024 Team Avg  3.74") {
		t.Fatalf("missing footer row:\n%s", out)
	}
}

func TestRenderer_Report_StylesAfterPadding(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	renderer := NewRenderer(&buf, style.New(true))
	renderer.Report(usecase.Report{
		Header:  "Paul Skenes (PITCHER)",
		Columns: []usecase.ReportColumn{{Label: "Season", Key: "year"}, {Label: "ERA", Key: "era"}},
		Widths:  []int{6, 4},
		Historical: []usecase.ReportRow{
			{Cells: []usecase.ReportCell{{Text: "2024"}, {Text: "1.96", Role: style.RoleMLBLeader}}},
		},
	})

	// The padded cell sits inside the escape sequence, keeping alignment
	// independent of styling.
	if !strings.Contains(buf.String(), "2024    \x1b[1;3m1.96\x1b[0m") {
		t.Fatalf("expected styled padded cell:\n%q", buf.String())
	}
}

func TestRenderer_Comparison(t *testing.T) {
	t.Parallel()

	renderer, buf := plainRenderer()
	renderer.Comparison(usecase.Comparison{
		Title:     "Aaron Judge vs Shohei Ohtani* (2025)",
		LeftName:  "Aaron Judge",
		RightName: "Shohei Ohtani*",
		Rows: []usecase.CompareRow{
			{Label: "HR", Left: usecase.CompareCell{Text: "28"}, Right: usecase.CompareCell{Text: "32", Role: style.RoleBetter}},
			{Label: "OPS+", Left: usecase.CompareCell{Text: "218", Role: style.RoleBetter}, Right: usecase.CompareCell{Text: "182"}},
		},
	})

	out := buf.String()
	if !strings.Contains(out, "Aaron Judge vs Shohei Ohtani* (2025)\n"+strings.Repeat("=", 80)) {
		t.Fatalf("missing title block:\n%s", out)
	}
	header := "Stat  Aaron Judge  Shohei Ohtani*"
	if !strings.Contains(out, header+"\n"+strings.Repeat("-", len(header))) {
		t.Fatalf("missing header block:\n%s", out)
	}
	if !strings.Contains(out, "HR    28           32") {
		t.Fatalf("missing aligned row:\n%s", out)
	}
}

func TestRenderer_Matchup_Views(t *testing.T) {
	t.Parallel()

	res := usecase.MatchupResult{
		BatterName:  "Rafael Devers",
		PitcherName: "Gerrit Cole",
		Stats: []matchup.Stat{
			{Year: "2023", Games: 3, PA: 12, AB: 11, H: 4, HR: 1, BA: 0.364, OBP: 0.417, SLG: 0.727, OPS: 1.144},
			{Year: "2024", Games: 2, PA: 8, AB: 7, H: 1, BA: 0.143, OBP: 0.25, SLG: 0.143, OPS: 0.393},
			{Year: matchup.CareerYear, Games: 12, PA: 40, AB: 36, H: 11, HR: 2, BA: 0.306, OBP: 0.375, SLG: 0.556, OPS: 0.931},
		},
	}

	renderer, buf := plainRenderer()
	if err := renderer.Matchup(res, "all"); err != nil {
		t.Fatalf("all view error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Rafael Devers vs Gerrit Cole (Career Breakdown)") {
		t.Fatalf("missing breakdown title:\n%s", out)
	}
	if strings.Contains(out, "career") {
		t.Fatalf("career row must not appear in the yearly table:\n%s", out)
	}
	if !strings.Contains(out, "0.364") && !strings.Contains(out, ".364") {
		t.Fatalf("missing 2023 average:\n%s", out)
	}

	renderer, buf = plainRenderer()
	if err := renderer.Matchup(res, ""); err != nil {
		t.Fatalf("career view error: %v", err)
	}
	out = buf.String()
	if !strings.Contains(out, "Rafael Devers vs Gerrit Cole (Career)") {
		t.Fatalf("missing career title:\n%s", out)
	}
	if !strings.Contains(out, "Games  12") {
		t.Fatalf("missing label/value row:\n%s", out)
	}

	renderer, buf = plainRenderer()
	if err := renderer.Matchup(res, "23"); err != nil {
		t.Fatalf("year view error: %v", err)
	}
	if !strings.Contains(buf.String(), "Rafael Devers vs Gerrit Cole (2023)") {
		t.Fatalf("two-digit year should expand:\n%s", buf.String())
	}

	renderer, _ = plainRenderer()
	if err := renderer.Matchup(res, "2019"); !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("missing year should be ErrNotFound, got %v", err)
	}

	// Non-numeric tokens keep their spelling instead of growing a "20" prefix.
	renderer, _ = plainRenderer()
	err := renderer.Matchup(res, "ab")
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("garbage token should be ErrNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "for ab") || strings.Contains(err.Error(), "20ab") {
		t.Fatalf("token should not be expanded: %v", err)
	}
}

func TestRenderer_Platoon_Views(t *testing.T) {
	t.Parallel()

	career := usecase.PlatoonResult{
		PlayerName: "Aaron Judge",
		Kind:       statline.KindHitter,
		Years: []platoon.YearSplits{{
			Year:  platoon.CareerYear,
			Left:  platoon.Split{Side: platoon.SideLeft, PA: 812, AB: 700, H: 204, HR: 52, RBI: 148, BA: 0.291, OBP: 0.401, SLG: 0.62, OPS: 1.021},
			Right: platoon.Split{Side: platoon.SideRight, PA: 2310, AB: 2000, H: 564, HR: 143, RBI: 370, BA: 0.282, OBP: 0.392, SLG: 0.601, OPS: 0.993},
		}},
	}

	renderer, buf := plainRenderer()
	renderer.Platoon(career, nil)
	out := buf.String()
	if !strings.Contains(out, "Aaron Judge - Platoon Splits (Career)") {
		t.Fatalf("missing career title:\n%s", out)
	}
	if !strings.Contains(out, "vs LHP") || !strings.Contains(out, "vs RHP") {
		t.Fatalf("missing handedness rows:\n%s", out)
	}
	if !strings.Contains(out, strings.Repeat("-", 100)) {
		t.Fatalf("missing separator:\n%s", out)
	}
	if !strings.Contains(out, "0.291") {
		t.Fatalf("missing left-side average:\n%s", out)
	}

	yearly := usecase.PlatoonResult{
		PlayerName: "Tarik Skubal",
		Kind:       statline.KindPitcher,
		AllYears:   true,
		Years: []platoon.YearSplits{
			{
				Year:  "2024",
				Left:  platoon.Split{Side: platoon.SideLeft, PA: 180, BA: 0.198, OPS: 0.512, IP: "45.1"},
				Right: platoon.Split{Side: platoon.SideRight, PA: 560, BA: 0.214, OPS: 0.581, IP: "147.0"},
			},
		},
	}

	renderer, buf = plainRenderer()
	renderer.Platoon(yearly, nil)
	out = buf.String()
	if !strings.Contains(out, "Tarik Skubal - Platoon Splits (Year-by-Year)") {
		t.Fatalf("missing yearly title:\n%s", out)
	}
	if !strings.Contains(out, "LHB") || !strings.Contains(out, "RHB") {
		t.Fatalf("pitcher splits describe batters:\n%s", out)
	}
	if !strings.Contains(out, "45.1") {
		t.Fatalf("missing innings column:\n%s", out)
	}

	renderer, buf = plainRenderer()
	renderer.Platoon(yearly, []string{"ba", "ops"})
	out = buf.String()
	if strings.Contains(out, "PA") {
		t.Fatalf("selected stats should narrow the table:\n%s", out)
	}
	if !strings.Contains(out, "AVG") || !strings.Contains(out, "OPS") {
		t.Fatalf("selected columns missing:\n%s", out)
	}
}
