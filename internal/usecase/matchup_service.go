package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/dugout-cli/dugout/internal/domain/matchup"
	"github.com/dugout-cli/dugout/internal/domain/platoon"
	"github.com/dugout-cli/dugout/internal/domain/statline"
	"github.com/dugout-cli/dugout/internal/platform/logging"
	"github.com/dugout-cli/dugout/internal/platform/textnorm"
)

// StatsProvider is the external stats API surface the matchup and platoon
// use cases depend on.
type StatsProvider interface {
	LookupPlayer(ctx context.Context, name string) (ExternalPlayer, bool, error)
	FetchMatchup(ctx context.Context, batterID, pitcherID int64) ([]matchup.Stat, error)
	FetchPlatoonSplits(ctx context.Context, playerID int64, kind statline.Kind, year int, allYears bool) ([]platoon.YearSplits, error)
}

// ExternalPlayer is the identity record the stats API resolves a free-form
// name to.
type ExternalPlayer struct {
	ID       int64
	FullName string
	Position string
}

// BatterChoiceFunc asks which of two two-way players is batting and returns
// 1 or 2.
type BatterChoiceFunc func(name1, name2 string) (int, error)

// MatchupResult is a batter-vs-pitcher series ready for rendering.
type MatchupResult struct {
	BatterName  string
	PitcherName string
	Stats       []matchup.Stat
	FromCache   bool
}

// MatchupService resolves two names into batter and pitcher roles and
// serves their head-to-head series, from the local cache when possible and
// the stats API otherwise.
type MatchupService struct {
	resolver *ResolverService
	cache    matchup.Repository
	provider StatsProvider
	logger   *logging.Logger
	progress func(msg string)
}

func NewMatchupService(resolver *ResolverService, cache matchup.Repository, provider StatsProvider, logger *logging.Logger, progress func(string)) *MatchupService {
	if logger == nil {
		logger = logging.Default()
	}
	if progress == nil {
		progress = func(string) {}
	}
	return &MatchupService{
		resolver: resolver,
		cache:    cache,
		provider: provider,
		logger:   logger,
		progress: progress,
	}
}

// Versus builds the matchup for two queries. Roles are inferred from which
// record sets each player appears in; when both players are two-way the
// chooseBatter callback decides. The cache is probed under both the marked
// and marker-stripped spellings of each name before going to the API.
func (s *MatchupService) Versus(ctx context.Context, query1, query2 string, chooseBatter BatterChoiceFunc) (MatchupResult, error) {
	res1, err := s.resolver.Find(ctx, query1)
	if err != nil {
		return MatchupResult{}, err
	}
	res2, err := s.resolver.Find(ctx, query2)
	if err != nil {
		return MatchupResult{}, err
	}
	if res1.Empty() {
		return MatchupResult{}, fmt.Errorf("%w: no players found matching %q", ErrNotFound, query1)
	}
	if res2.Empty() {
		return MatchupResult{}, fmt.Errorf("%w: no players found matching %q", ErrNotFound, query2)
	}

	name1 := storedName(res1)
	name2 := storedName(res2)

	batter, pitcher, err := inferRoles(res1, res2, name1, name2, chooseBatter)
	if err != nil {
		return MatchupResult{}, err
	}

	batterClean := textnorm.StripMarkers(batter)
	pitcherClean := textnorm.StripMarkers(pitcher)

	for _, batterSearch := range []string{batterClean, batter} {
		for _, pitcherSearch := range []string{pitcherClean, pitcher} {
			cached, err := s.cache.Get(ctx, batterSearch, pitcherSearch)
			if err != nil {
				return MatchupResult{}, fmt.Errorf("read matchup cache: %w", err)
			}
			if len(cached) > 0 {
				return MatchupResult{
					BatterName:  batterSearch,
					PitcherName: pitcherSearch,
					Stats:       cached,
					FromCache:   true,
				}, nil
			}
		}
	}

	batterInfo, ok, err := s.provider.LookupPlayer(ctx, batterClean)
	if err != nil {
		return MatchupResult{}, err
	}
	if !ok {
		return MatchupResult{}, fmt.Errorf("%w: could not find MLB ID for %q", ErrNotFound, batterClean)
	}
	pitcherInfo, ok, err := s.provider.LookupPlayer(ctx, pitcherClean)
	if err != nil {
		return MatchupResult{}, err
	}
	if !ok {
		return MatchupResult{}, fmt.Errorf("%w: could not find MLB ID for %q", ErrNotFound, pitcherClean)
	}

	s.progress("Fetching matchup data from MLB Stats API...")
	stats, err := s.provider.FetchMatchup(ctx, batterInfo.ID, pitcherInfo.ID)
	if err != nil {
		return MatchupResult{}, err
	}
	if len(stats) == 0 {
		return MatchupResult{}, fmt.Errorf("%w: no matchup data found for %s vs %s", ErrNotFound, batterInfo.FullName, pitcherInfo.FullName)
	}

	if err := s.cache.Put(ctx, batterInfo.FullName, batterInfo.ID, pitcherInfo.FullName, pitcherInfo.ID, stats); err != nil {
		// A stale cache only costs a refetch next time.
		s.logger.Warn("cache matchup", "batter", batterInfo.FullName, "pitcher", pitcherInfo.FullName, "error", err)
	}

	return MatchupResult{
		BatterName:  batterInfo.FullName,
		PitcherName: pitcherInfo.FullName,
		Stats:       stats,
	}, nil
}

// storedName picks the display name for a resolution, preferring the pitcher
// record set's spelling.
func storedName(res Resolution) string {
	if len(res.Pitcher) > 0 {
		return res.Pitcher[0].Player
	}
	return res.Hitter[0].Player
}

func inferRoles(res1, res2 Resolution, name1, name2 string, chooseBatter BatterChoiceFunc) (batter, pitcher string, err error) {
	p1Pitches, p1Hits := len(res1.Pitcher) > 0, len(res1.Hitter) > 0
	p2Pitches, p2Hits := len(res2.Pitcher) > 0, len(res2.Hitter) > 0

	switch {
	case p1Hits && !p1Pitches && p2Pitches:
		return name1, name2, nil
	case p1Pitches && p2Hits && !p2Pitches:
		return name2, name1, nil
	case p1Hits && p2Pitches && !p2Hits:
		return name1, name2, nil
	case p1Pitches && !p1Hits && p2Hits:
		return name2, name1, nil
	case p1Pitches && p1Hits && p2Pitches && p2Hits:
		if chooseBatter == nil {
			return "", "", fmt.Errorf("%w: both %s and %s are two-way players", ErrInvalidInput, name1, name2)
		}
		choice, err := chooseBatter(name1, name2)
		if err != nil {
			return "", "", err
		}
		if choice == 1 {
			return name1, name2, nil
		}
		return name2, name1, nil
	default:
		return "", "", fmt.Errorf("%w: could not determine batter and pitcher roles for %q (%s) vs %q (%s)",
			ErrInvalidInput, name1, roleDescription(p1Pitches, p1Hits), name2, roleDescription(p2Pitches, p2Hits))
	}
}

func roleDescription(pitches, hits bool) string {
	var roles []string
	if pitches {
		roles = append(roles, "pitcher")
	}
	if hits {
		roles = append(roles, "hitter")
	}
	if len(roles) == 0 {
		return "unknown"
	}
	return strings.Join(roles, ", ")
}
