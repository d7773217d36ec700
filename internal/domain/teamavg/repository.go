package teamavg

import (
	"context"

	"github.com/dugout-cli/dugout/internal/domain/statline"
)

// Repository looks up team aggregate rows by exact year and full team name
// (or the LeagueAverageTeam sentinel).
type Repository interface {
	Get(ctx context.Context, kind statline.Kind, year int, team string) (Average, bool, error)
}

// Writer is the bulk-load side: replace one season of one aggregate set.
type Writer interface {
	ReplaceSeason(ctx context.Context, kind statline.Kind, year int, rows []statline.RawLine) (int, error)
}
