package usecase

import (
	"context"
	"errors"
	"sort"
	"strings"
	"testing"

	"github.com/dugout-cli/dugout/internal/domain/statline"
)

// stubLineRepository implements statline.Repository over in-memory lines,
// emulating the storage's case-insensitive LIKE scan.
type stubLineRepository struct {
	pitchers []statline.Line
	hitters  []statline.Line
}

func (s *stubLineRepository) byKind(kind statline.Kind) []statline.Line {
	if kind == statline.KindPitcher {
		return s.pitchers
	}
	return s.hitters
}

func (s *stubLineRepository) Columns(_ context.Context, kind statline.Kind) ([]string, error) {
	if kind == statline.KindPitcher {
		return []string{
			"year", "rk", "player", "age", "team", "lg", "war", "w", "l", "w_l_pct",
			"era", "g", "gs", "ip", "h", "r", "er", "hr", "bb", "so",
			"era_plus", "fip", "whip", "h9", "hr9", "bb9", "so9", "so_bb",
			"awards", "player_additional",
		}, nil
	}
	return []string{
		"year", "rk", "player", "age", "team", "lg", "war", "g", "pa", "ab",
		"r", "h", "doubles", "triples", "hr", "rbi", "sb", "cs", "bb", "so",
		"ba", "obp", "slg", "ops", "ops_plus", "tb", "pos", "awards", "player_additional",
	}, nil
}

func (s *stubLineRepository) FindByPattern(_ context.Context, kind statline.Kind, pattern string) ([]statline.Line, error) {
	var out []statline.Line
	for _, line := range s.byKind(kind) {
		if likeMatch(strings.ToLower(line.Player), strings.ToLower(pattern)) {
			out = append(out, line)
		}
	}
	return out, nil
}

func (s *stubLineRepository) FindByName(_ context.Context, kind statline.Kind, name string) ([]statline.Line, error) {
	var out []statline.Line
	for _, line := range s.byKind(kind) {
		if strings.EqualFold(line.Player, name) {
			out = append(out, line)
		}
	}
	return out, nil
}

func (s *stubLineRepository) DistinctNames(_ context.Context, kind statline.Kind) ([]string, error) {
	seen := make(map[string]bool)
	var names []string
	for _, line := range s.byKind(kind) {
		if !seen[line.Player] {
			seen[line.Player] = true
			names = append(names, line.Player)
		}
	}
	sort.Strings(names)
	return names, nil
}

func (s *stubLineRepository) ListByYear(_ context.Context, kind statline.Kind, year int) ([]statline.Line, error) {
	var out []statline.Line
	for _, line := range s.byKind(kind) {
		if line.Year == year {
			out = append(out, line)
		}
	}
	return out, nil
}

// likeMatch interprets % wildcards the way the LIKE scan does.
func likeMatch(value, pattern string) bool {
	parts := strings.Split(pattern, "%")
	pos := 0
	for i, part := range parts {
		if part == "" {
			continue
		}
		idx := strings.Index(value[pos:], part)
		if idx < 0 {
			return false
		}
		if i == 0 && idx != 0 {
			return false
		}
		pos += idx + len(part)
	}
	if last := parts[len(parts)-1]; last != "" && !strings.HasSuffix(value, last) {
		return false
	}
	return true
}

func testLine(kind statline.Kind, player string, year int, team, lg, externalID string, stats map[string]float64) statline.Line {
	line := statline.Line{
		Kind:       kind,
		Year:       year,
		Player:     player,
		Team:       team,
		League:     lg,
		ExternalID: externalID,
		Stats: map[string]statline.Value{
			"year": statline.Number(float64(year)),
			"team": statline.Text(team),
			"lg":   statline.Text(lg),
		},
	}
	for key, val := range stats {
		line.Stats[key] = statline.Number(val)
	}
	return line
}

func newTestResolver(repo *stubLineRepository) *ResolverService {
	return NewResolverService(repo, 2025, func(name string) bool {
		return strings.EqualFold(name, "Shohei Ohtani")
	})
}

func TestResolverService_Find_DotNotation(t *testing.T) {
	t.Parallel()

	repo := &stubLineRepository{
		hitters: []statline.Line{
			testLine(statline.KindHitter, "Mike Trout", 2024, "LAA", "AL", "troutmi01", map[string]float64{"g": 120}),
			testLine(statline.KindHitter, "Marcus Semien", 2024, "TEX", "AL", "semienma01", map[string]float64{"g": 162}),
		},
	}
	resolver := newTestResolver(repo)

	res, err := resolver.Find(context.Background(), "m.trout")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if len(res.Hitter) != 1 || res.Hitter[0].Player != "Mike Trout" {
		t.Fatalf("unexpected hitter matches: %+v", res.Hitter)
	}
	if len(res.Pitcher) != 0 {
		t.Fatalf("expected no pitcher matches, got %d", len(res.Pitcher))
	}
}

func TestResolverService_Find_AccentFoldFallback(t *testing.T) {
	t.Parallel()

	repo := &stubLineRepository{
		hitters: []statline.Line{
			testLine(statline.KindHitter, "José Ramírez", 2024, "CLE", "AL", "ramirjo01", map[string]float64{"g": 150}),
		},
	}
	resolver := newTestResolver(repo)

	res, err := resolver.Find(context.Background(), "ramirez")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if len(res.Hitter) != 1 || res.Hitter[0].Player != "José Ramírez" {
		t.Fatalf("accent-folded lookup missed: %+v", res.Hitter)
	}
}

func TestResolverService_Suggest(t *testing.T) {
	t.Parallel()

	repo := &stubLineRepository{
		pitchers: []statline.Line{
			testLine(statline.KindPitcher, "Gerrit Cole", 2024, "NYY", "AL", "colege01", nil),
		},
		hitters: []statline.Line{
			testLine(statline.KindHitter, "Nick Castellanos", 2024, "PHI", "NL", "castini01", nil),
			testLine(statline.KindHitter, "Willson Contreras", 2024, "STL", "NL", "contrwi01", nil),
		},
	}
	resolver := newTestResolver(repo)

	got, err := resolver.Suggest(context.Background(), "castel")
	if err != nil {
		t.Fatalf("Suggest error: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Nick Castellanos" || got[0].Kind != statline.KindHitter {
		t.Fatalf("unexpected suggestions: %+v", got)
	}
}

func TestResolverService_Assess_SharedNameDistinctPlayers(t *testing.T) {
	t.Parallel()

	repo := &stubLineRepository{
		pitchers: []statline.Line{
			testLine(statline.KindPitcher, "Luis Castillo", 2024, "SEA", "AL", "castilu02", map[string]float64{"g": 30}),
		},
		hitters: []statline.Line{
			testLine(statline.KindHitter, "Luis Castillo", 2019, "MIA", "NL", "castilu01", map[string]float64{"g": 80}),
		},
	}
	resolver := newTestResolver(repo)

	res, err := resolver.Find(context.Background(), "castillo")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	got := resolver.Assess(res)
	if got.Disposition != DispositionChoose {
		t.Fatalf("expected choose disposition, got %v", got.Disposition)
	}
	if len(got.Choices) != 2 {
		t.Fatalf("expected 2 choices, got %d", len(got.Choices))
	}
	if got.Choices[0].Kind != statline.KindPitcher || got.Choices[1].Kind != statline.KindHitter {
		t.Fatalf("choices should list pitchers first: %+v", got.Choices)
	}
}

func TestResolverService_Assess_SamePersonInBothSets(t *testing.T) {
	t.Parallel()

	repo := &stubLineRepository{
		pitchers: []statline.Line{
			testLine(statline.KindPitcher, "Shohei Ohtani*", 2023, "LAA", "AL", "ohtansh01", map[string]float64{"g": 23}),
		},
		hitters: []statline.Line{
			testLine(statline.KindHitter, "Shohei Ohtani*", 2023, "LAA", "AL", "ohtansh01", map[string]float64{"g": 135}),
		},
	}
	resolver := newTestResolver(repo)

	res, err := resolver.Find(context.Background(), "ohtani")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	if got := resolver.Assess(res); got.Disposition != DispositionRender {
		t.Fatalf("same person in both sets should render, got %v", got.Disposition)
	}
}

func TestResolverService_Assess_ListsDistinctMatches(t *testing.T) {
	t.Parallel()

	repo := &stubLineRepository{
		hitters: []statline.Line{
			testLine(statline.KindHitter, "Bobby Witt Jr.", 2024, "KCR", "AL", "wittbo02", nil),
			testLine(statline.KindHitter, "Bobby Wilson", 2018, "CHC", "NL", "wilsobo01", nil),
		},
	}
	resolver := newTestResolver(repo)

	res, err := resolver.Find(context.Background(), "bobby")
	if err != nil {
		t.Fatalf("Find error: %v", err)
	}
	got := resolver.Assess(res)
	if got.Disposition != DispositionList {
		t.Fatalf("expected list disposition, got %v", got.Disposition)
	}
	if len(got.Hitters) != 2 {
		t.Fatalf("expected 2 grouped hitters, got %d", len(got.Hitters))
	}
}

func TestResolverService_Narrow_GamesTiebreak(t *testing.T) {
	t.Parallel()

	repo := &stubLineRepository{
		pitchers: []statline.Line{
			testLine(statline.KindPitcher, "Michael Lorenzen", 2023, "PHI", "NL", "lorenmi01", map[string]float64{"g": 29}),
		},
		hitters: []statline.Line{
			testLine(statline.KindHitter, "Michael Lorenzen", 2023, "PHI", "NL", "lorenmi01", map[string]float64{"g": 6}),
		},
	}
	resolver := newTestResolver(repo)

	player, err := resolver.ResolveOne(context.Background(), "lorenzen")
	if err != nil {
		t.Fatalf("ResolveOne error: %v", err)
	}
	if player.Kind != statline.KindPitcher {
		t.Fatalf("games tiebreak should pick pitcher, got %s", player.Kind)
	}
}

func TestResolverService_Narrow_TwoWayRejected(t *testing.T) {
	t.Parallel()

	repo := &stubLineRepository{
		pitchers: []statline.Line{
			testLine(statline.KindPitcher, "Shohei Ohtani*", 2023, "LAA", "AL", "ohtansh01", map[string]float64{"g": 23}),
		},
		hitters: []statline.Line{
			testLine(statline.KindHitter, "Shohei Ohtani*", 2023, "LAA", "AL", "ohtansh01", map[string]float64{"g": 135}),
		},
	}
	resolver := newTestResolver(repo)

	_, err := resolver.ResolveOne(context.Background(), "ohtani")
	if !errors.Is(err, ErrTwoWayUnsupported) {
		t.Fatalf("expected ErrTwoWayUnsupported, got %v", err)
	}
}

func TestResolverService_TeamInfo(t *testing.T) {
	t.Parallel()

	resolver := newTestResolver(&stubLineRepository{})

	lines := []statline.Line{
		testLine(statline.KindHitter, "Juan Soto", 2024, "NYY", "AL", "sotoju01", nil),
		testLine(statline.KindHitter, "Juan Soto", 2025, "NYM", "NL", "sotoju01", nil),
	}
	if got := resolver.TeamInfo(lines); got != "NYM" {
		t.Fatalf("expected current-season team NYM, got %q", got)
	}

	traded := []statline.Line{
		testLine(statline.KindHitter, "Jazz Chisholm Jr.", 2024, "2TM", "AL", "chishja01", nil),
		testLine(statline.KindHitter, "Jazz Chisholm Jr.", 2024, "MIA", "NL", "chishja01", nil),
		testLine(statline.KindHitter, "Jazz Chisholm Jr.", 2024, "NYY", "AL", "chishja01", nil),
	}
	if got := resolver.TeamInfo(traded); got != "MIA, NYY" {
		t.Fatalf("expected stint teams, got %q", got)
	}
}
