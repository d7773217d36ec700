package platoon

import (
	"context"

	"github.com/dugout-cli/dugout/internal/domain/statline"
)

// Repository is the platoon-split cache, keyed by (player name, year, side).
// Get treats a year with only one cached side as a miss for that year; a
// single-year lookup with no complete pair returns an empty slice.
type Repository interface {
	Get(ctx context.Context, playerName string, year int, allYears bool) ([]YearSplits, error)
	Put(ctx context.Context, playerName string, playerID int64, kind statline.Kind, splits []YearSplits) error
}
