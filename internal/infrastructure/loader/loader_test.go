package loader

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/dugout-cli/dugout/internal/domain/statline"
)

type stubWriter struct {
	mu      sync.Mutex
	seasons map[int][]statline.RawLine
	kinds   map[int]statline.Kind
}

func newStubWriter() *stubWriter {
	return &stubWriter{
		seasons: make(map[int][]statline.RawLine),
		kinds:   make(map[int]statline.Kind),
	}
}

func (w *stubWriter) ReplaceSeason(_ context.Context, kind statline.Kind, year int, rows []statline.RawLine) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.seasons[year] = rows
	w.kinds[year] = kind
	return len(rows), nil
}

func writeTestCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func TestService_Load_HittersWithHeader(t *testing.T) {
	t.Parallel()

	csv := strings.Join([]string{
		"Rk,Player,Age,Team,Lg,WAR,G,PA,AB,R,H,2B,3B,HR,RBI,SB,CS,BB,SO,BA,OBP,SLG,OPS,OPS+,rOBA,Rbat+,TB,GIDP,HBP,SH,SF,IBB,Pos,Awards,Player-additional",
		"1,Aaron Judge,32,NYY,AL,10.8,158,704,559,122,180,36,3,58,144,10,1,133,171,.322,.458,.701,1.159,223,.479,219,392,5,4,0,2,14,*9/8D,ASMVP-1,judgeaa01",
		"2,Juan Soto*,25,NYY,AL,7.9,157,713,576,128,166,31,4,41,109,7,4,129,119,.288,.419,.569,.989,178,.428,177,328,9,2,0,4,10,*9,AS,sotoju01",
	}, "\n")
	path := writeTestCSV(t, "hitter_stats_2024.csv", csv)

	lines := newStubWriter()
	service := NewService(lines, newStubWriter(), 2, nil)

	results, err := service.Load(context.Background(), DatasetHitters, 0, []string{path})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if len(results) != 1 || results[0].Year != 2024 || results[0].Rows != 2 {
		t.Fatalf("unexpected results: %+v", results)
	}
	if lines.kinds[2024] != statline.KindHitter {
		t.Fatalf("wrong record set: %v", lines.kinds[2024])
	}

	rows := lines.seasons[2024]
	if got := rows[0]["player"]; got != "Aaron Judge" {
		t.Fatalf("player column not mapped: %v", got)
	}
	if got := rows[0]["doubles"]; got != "36" {
		t.Fatalf("2B should load as doubles: %v", got)
	}
	if got := rows[0]["ops_plus"]; got != "223" {
		t.Fatalf("OPS+ should load as ops_plus: %v", got)
	}
	if got := rows[0]["year"]; got != 2024 {
		t.Fatalf("year should come from the filename: %v", got)
	}
	if got := rows[1]["player_additional"]; got != "sotoju01" {
		t.Fatalf("Player-additional should load as player_additional: %v", got)
	}
}

func TestService_Load_HeaderlessPitcherFile(t *testing.T) {
	t.Parallel()

	csv := strings.Join([]string{
		"1,Paul Skenes,22,PIT,NL,5.9,11,3,.786,1.96,23,23,0,0,0,0,133.0,94,32,29,7,32,1,170,6,0,3,520,214,1.92,0.95,6.4,0.5,2.2,11.5,5.31,ASROY-1CYA-3,skenepa01",
	}, "\n")
	path := writeTestCSV(t, "pitchers.csv", csv)

	lines := newStubWriter()
	service := NewService(lines, newStubWriter(), 1, nil)

	results, err := service.Load(context.Background(), DatasetPitchers, 2024, []string{path})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if results[0].Rows != 1 {
		t.Fatalf("headerless first row must load as data: %+v", results)
	}

	row := lines.seasons[2024][0]
	if got := row["w_l_pct"]; got != ".786" {
		t.Fatalf("W-L%% should load as w_l_pct: %v", got)
	}
	if got := row["so_bb"]; got != "5.31" {
		t.Fatalf("SO/BB should load as so_bb: %v", got)
	}
}

func TestService_Load_EmptyCellsBecomeNULL(t *testing.T) {
	t.Parallel()

	csv := strings.Join([]string{
		"Tm,#Bat,BatAge,R/G,G,PA,AB,R,H,2B,3B,HR,RBI,SB,CS,BB,SO,BA,OBP,SLG,OPS,OPS+,TB,GDP,HBP,SH,SF,IBB,LOB",
		"New York Yankees,48,28.7,5.04,162,6245,5507,815,1361,237,22,237,780,85,27,621,1360,.247,.325,.430,.755,114,2353,111,87,7,42,27,1096",
		"League Average,44,28.5,4.39,162,6106,5424,711,1326,251,24,181,678,94,26,513,1343,,.312,.399,.711,100,2166,110,74,19,41,21,1096",
	}, "\n")
	path := writeTestCSV(t, "team_hitting_stats_2024.csv", csv)

	teams := newStubWriter()
	service := NewService(newStubWriter(), teams, 2, nil)

	if _, err := service.Load(context.Background(), DatasetTeamHitting, 0, []string{path}); err != nil {
		t.Fatalf("Load error: %v", err)
	}

	rows := teams.seasons[2024]
	if got := rows[0]["bat_count"]; got != "48" {
		t.Fatalf("#Bat should load as bat_count: %v", got)
	}
	if got := rows[1]["ba"]; got != nil {
		t.Fatalf("empty cell should load as NULL, got %v", got)
	}
	if teams.kinds[2024] != statline.KindHitter {
		t.Fatalf("wrong record set: %v", teams.kinds[2024])
	}
}

func TestService_Load_YearRequired(t *testing.T) {
	t.Parallel()

	path := writeTestCSV(t, "pitchers.csv", "Rk,Player\n")
	service := NewService(newStubWriter(), newStubWriter(), 1, nil)

	_, err := service.Load(context.Background(), DatasetPitchers, 0, []string{path})
	if err == nil || !strings.Contains(err.Error(), "cannot determine year") {
		t.Fatalf("expected a year resolution error, got %v", err)
	}
}

func TestParseDataset(t *testing.T) {
	t.Parallel()

	if _, err := ParseDataset("pitchers"); err != nil {
		t.Fatalf("pitchers should parse: %v", err)
	}
	if _, err := ParseDataset("teams"); err == nil {
		t.Fatalf("unknown dataset should be rejected")
	}
}
