package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/dugout-cli/dugout/internal/domain/matchup"
	"github.com/dugout-cli/dugout/internal/domain/platoon"
	"github.com/dugout-cli/dugout/internal/domain/statline"
)

type stubMatchupRepository struct {
	rows   map[string][]matchup.Stat
	puts   int
	putErr error
}

func matchupKey(batter, pitcher string) string {
	return strings.ToLower(batter) + "|" + strings.ToLower(pitcher)
}

func (s *stubMatchupRepository) Get(_ context.Context, batterName, pitcherName string) ([]matchup.Stat, error) {
	return s.rows[matchupKey(batterName, pitcherName)], nil
}

func (s *stubMatchupRepository) Put(_ context.Context, batterName string, _ int64, pitcherName string, _ int64, stats []matchup.Stat) error {
	s.puts++
	if s.putErr != nil {
		return s.putErr
	}
	if s.rows == nil {
		s.rows = make(map[string][]matchup.Stat)
	}
	s.rows[matchupKey(batterName, pitcherName)] = stats
	return nil
}

type stubStatsProvider struct {
	players  map[string]ExternalPlayer
	matchup  []matchup.Stat
	platoon  []platoon.YearSplits
	lookups  []string
	fetches  int
	fetchErr error
}

func (s *stubStatsProvider) LookupPlayer(_ context.Context, name string) (ExternalPlayer, bool, error) {
	s.lookups = append(s.lookups, name)
	p, ok := s.players[strings.ToLower(name)]
	return p, ok, nil
}

func (s *stubStatsProvider) FetchMatchup(_ context.Context, _, _ int64) ([]matchup.Stat, error) {
	s.fetches++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.matchup, nil
}

func (s *stubStatsProvider) FetchPlatoonSplits(_ context.Context, _ int64, _ statline.Kind, _ int, _ bool) ([]platoon.YearSplits, error) {
	s.fetches++
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	return s.platoon, nil
}

func matchupTestRepo() *stubLineRepository {
	return &stubLineRepository{
		pitchers: []statline.Line{
			testLine(statline.KindPitcher, "Gerrit Cole", 2024, "NYY", "AL", "colege01", map[string]float64{"g": 30}),
			testLine(statline.KindPitcher, "Shohei Ohtani*", 2023, "LAA", "AL", "ohtansh01", map[string]float64{"g": 23}),
		},
		hitters: []statline.Line{
			testLine(statline.KindHitter, "Rafael Devers*", 2024, "BOS", "AL", "deverra01", map[string]float64{"g": 138}),
			testLine(statline.KindHitter, "Shohei Ohtani*", 2024, "LAD", "NL", "ohtansh01", map[string]float64{"g": 159}),
		},
	}
}

func TestMatchupService_Versus_FetchesAndCaches(t *testing.T) {
	t.Parallel()

	repo := matchupTestRepo()
	cache := &stubMatchupRepository{}
	provider := &stubStatsProvider{
		players: map[string]ExternalPlayer{
			"rafael devers": {ID: 646240, FullName: "Rafael Devers", Position: "3B"},
			"gerrit cole":   {ID: 543037, FullName: "Gerrit Cole", Position: "P"},
		},
		matchup: []matchup.Stat{
			{Year: "2023", PA: 12, AB: 11, H: 4, HR: 1, BA: 0.364},
			{Year: matchup.CareerYear, PA: 40, AB: 36, H: 11, HR: 2, BA: 0.306},
		},
	}
	var progress []string
	service := NewMatchupService(newTestResolver(repo), cache, provider, nil, func(msg string) {
		progress = append(progress, msg)
	})

	got, err := service.Versus(context.Background(), "cole", "devers", nil)
	if err != nil {
		t.Fatalf("Versus error: %v", err)
	}

	if got.BatterName != "Rafael Devers" || got.PitcherName != "Gerrit Cole" {
		t.Fatalf("unexpected roles: %q vs %q", got.BatterName, got.PitcherName)
	}
	if got.FromCache {
		t.Fatalf("first lookup should not come from the cache")
	}
	if len(got.Stats) != 2 || !got.Stats[1].Career() {
		t.Fatalf("unexpected stats: %+v", got.Stats)
	}
	if cache.puts != 1 {
		t.Fatalf("expected one cache write, got %d", cache.puts)
	}
	if len(progress) != 1 {
		t.Fatalf("expected one progress message, got %v", progress)
	}
	// The marked spelling must not leak into the API lookup.
	for _, name := range provider.lookups {
		if strings.ContainsAny(name, "*#") {
			t.Fatalf("lookup used a marked name: %q", name)
		}
	}
}

func TestMatchupService_Versus_CacheHit(t *testing.T) {
	t.Parallel()

	repo := matchupTestRepo()
	cache := &stubMatchupRepository{
		rows: map[string][]matchup.Stat{
			matchupKey("Rafael Devers", "Gerrit Cole"): {
				{Year: matchup.CareerYear, PA: 40, H: 11},
			},
		},
	}
	provider := &stubStatsProvider{}
	service := NewMatchupService(newTestResolver(repo), cache, provider, nil, nil)

	got, err := service.Versus(context.Background(), "devers", "cole", nil)
	if err != nil {
		t.Fatalf("Versus error: %v", err)
	}
	if !got.FromCache {
		t.Fatalf("expected a cache hit")
	}
	if provider.fetches != 0 || len(provider.lookups) != 0 {
		t.Fatalf("cache hit must not reach the API: %d fetches, %v lookups", provider.fetches, provider.lookups)
	}
}

func TestMatchupService_Versus_PutFailureIsNotFatal(t *testing.T) {
	t.Parallel()

	repo := matchupTestRepo()
	cache := &stubMatchupRepository{putErr: errors.New("disk full")}
	provider := &stubStatsProvider{
		players: map[string]ExternalPlayer{
			"rafael devers": {ID: 646240, FullName: "Rafael Devers"},
			"gerrit cole":   {ID: 543037, FullName: "Gerrit Cole"},
		},
		matchup: []matchup.Stat{{Year: matchup.CareerYear, PA: 40}},
	}
	service := NewMatchupService(newTestResolver(repo), cache, provider, nil, nil)

	got, err := service.Versus(context.Background(), "cole", "devers", nil)
	if err != nil {
		t.Fatalf("Versus should survive a cache write failure: %v", err)
	}
	if len(got.Stats) != 1 {
		t.Fatalf("unexpected stats: %+v", got.Stats)
	}
}

func TestMatchupService_Versus_TwoWayChoice(t *testing.T) {
	t.Parallel()

	repo := matchupTestRepo()
	repo.pitchers = append(repo.pitchers,
		testLine(statline.KindPitcher, "Michael Lorenzen", 2024, "TEX", "AL", "lorenmi01", map[string]float64{"g": 25}))
	repo.hitters = append(repo.hitters,
		testLine(statline.KindHitter, "Michael Lorenzen", 2021, "CIN", "NL", "lorenmi01", map[string]float64{"g": 9}))

	cache := &stubMatchupRepository{}
	provider := &stubStatsProvider{
		players: map[string]ExternalPlayer{
			"shohei ohtani":    {ID: 660271, FullName: "Shohei Ohtani"},
			"michael lorenzen": {ID: 547179, FullName: "Michael Lorenzen"},
		},
		matchup: []matchup.Stat{{Year: matchup.CareerYear, PA: 6}},
	}
	var asked [2]string
	service := NewMatchupService(newTestResolver(repo), cache, provider, nil, nil)

	got, err := service.Versus(context.Background(), "ohtani", "lorenzen", func(name1, name2 string) (int, error) {
		asked[0], asked[1] = name1, name2
		return 2, nil
	})
	if err != nil {
		t.Fatalf("Versus error: %v", err)
	}
	if asked[0] == "" || asked[1] == "" {
		t.Fatalf("choice callback was not invoked")
	}
	if got.BatterName != "Michael Lorenzen" || got.PitcherName != "Shohei Ohtani" {
		t.Fatalf("choice 2 should bat the second player: %q vs %q", got.BatterName, got.PitcherName)
	}
}

func TestMatchupService_Versus_TwoWayWithoutChooser(t *testing.T) {
	t.Parallel()

	repo := matchupTestRepo()
	repo.pitchers = append(repo.pitchers,
		testLine(statline.KindPitcher, "Michael Lorenzen", 2024, "TEX", "AL", "lorenmi01", map[string]float64{"g": 25}))
	repo.hitters = append(repo.hitters,
		testLine(statline.KindHitter, "Michael Lorenzen", 2021, "CIN", "NL", "lorenmi01", map[string]float64{"g": 9}))

	service := NewMatchupService(newTestResolver(repo), &stubMatchupRepository{}, &stubStatsProvider{}, nil, nil)

	_, err := service.Versus(context.Background(), "ohtani", "lorenzen", nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestMatchupService_Versus_RolesUnclear(t *testing.T) {
	t.Parallel()

	repo := &stubLineRepository{
		hitters: []statline.Line{
			testLine(statline.KindHitter, "Aaron Judge", 2024, "NYY", "AL", "judgeaa01", map[string]float64{"g": 158}),
			testLine(statline.KindHitter, "Juan Soto*", 2024, "NYY", "AL", "sotoju01", map[string]float64{"g": 157}),
		},
	}
	service := NewMatchupService(newTestResolver(repo), &stubMatchupRepository{}, &stubStatsProvider{}, nil, nil)

	_, err := service.Versus(context.Background(), "judge", "soto", nil)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for two hitters, got %v", err)
	}
}

func TestMatchupService_Versus_NoAPIData(t *testing.T) {
	t.Parallel()

	repo := matchupTestRepo()
	provider := &stubStatsProvider{
		players: map[string]ExternalPlayer{
			"rafael devers": {ID: 646240, FullName: "Rafael Devers"},
			"gerrit cole":   {ID: 543037, FullName: "Gerrit Cole"},
		},
	}
	service := NewMatchupService(newTestResolver(repo), &stubMatchupRepository{}, provider, nil, nil)

	_, err := service.Versus(context.Background(), "devers", "cole", nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
