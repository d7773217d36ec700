package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/dugout-cli/dugout/internal/domain/platoon"
	"github.com/dugout-cli/dugout/internal/domain/statline"
	"github.com/dugout-cli/dugout/internal/platform/logging"
	"github.com/dugout-cli/dugout/internal/platform/textnorm"
)

// PlatoonResult carries a player's handedness splits. Year is zero for the
// career view; AllYears selects the year-by-year breakdown instead.
type PlatoonResult struct {
	PlayerName string
	Kind       statline.Kind
	AllYears   bool
	Year       int
	Years      []platoon.YearSplits
	FromCache  bool
}

// PlatoonService serves vs-left/vs-right splits, from the local cache when
// possible and the stats API otherwise.
type PlatoonService struct {
	resolver *ResolverService
	cache    platoon.Repository
	provider StatsProvider
	logger   *logging.Logger
	progress func(msg string)
}

func NewPlatoonService(resolver *ResolverService, cache platoon.Repository, provider StatsProvider, logger *logging.Logger, progress func(string)) *PlatoonService {
	if logger == nil {
		logger = logging.Default()
	}
	if progress == nil {
		progress = func(string) {}
	}
	return &PlatoonService{
		resolver: resolver,
		cache:    cache,
		provider: provider,
		logger:   logger,
		progress: progress,
	}
}

// Splits resolves a query to one player and returns their platoon splits.
// The year token accepts "all" for the year-by-year view, a 2- or 4-digit
// season, or nothing for career totals.
func (s *PlatoonService) Splits(ctx context.Context, query, yearToken string) (PlatoonResult, error) {
	player, err := s.resolver.ResolveOne(ctx, query)
	if err != nil {
		return PlatoonResult{}, err
	}
	if names := distinctRawNames(player.Lines); len(names) > 1 {
		return PlatoonResult{}, &AmbiguousPlayersError{Query: query, Kind: player.Kind}
	}

	year := 0
	allYears := false
	if strings.EqualFold(yearToken, "all") {
		allYears = true
	} else if yearToken != "" {
		year, err = textnorm.ParseYear(yearToken)
		if err != nil {
			return PlatoonResult{}, fmt.Errorf("%w: invalid year %q, use 2022, 22, or all", ErrInvalidInput, yearToken)
		}
	}

	clean := textnorm.StripMarkers(player.Name)
	info, ok, err := s.provider.LookupPlayer(ctx, clean)
	if err != nil {
		return PlatoonResult{}, err
	}
	if !ok {
		return PlatoonResult{}, fmt.Errorf("%w: could not find MLB ID for %q", ErrNotFound, clean)
	}

	result := PlatoonResult{
		PlayerName: info.FullName,
		Kind:       player.Kind,
		AllYears:   allYears,
		Year:       year,
	}

	cached, err := s.cache.Get(ctx, info.FullName, year, allYears)
	if err != nil {
		return PlatoonResult{}, fmt.Errorf("read platoon cache: %w", err)
	}
	if len(cached) > 0 {
		result.Years = cached
		result.FromCache = true
		return result, nil
	}

	s.progress("Fetching platoon splits from MLB Stats API...")
	splits, err := s.provider.FetchPlatoonSplits(ctx, info.ID, player.Kind, year, allYears)
	if err != nil {
		return PlatoonResult{}, err
	}
	if len(splits) == 0 {
		if year > 0 {
			return PlatoonResult{}, fmt.Errorf("%w: no platoon split data found for %s for %d", ErrNotFound, info.FullName, year)
		}
		return PlatoonResult{}, fmt.Errorf("%w: no platoon split data found for %s", ErrNotFound, info.FullName)
	}

	if err := s.cache.Put(ctx, info.FullName, info.ID, player.Kind, splits); err != nil {
		// A stale cache only costs a refetch next time.
		s.logger.Warn("cache platoon splits", "player", info.FullName, "error", err)
	}

	result.Years = splits
	return result, nil
}
