package matchup

import "context"

// Repository is the matchup cache: at most one row per (batter, pitcher,
// year) key, upserts overwrite. Get returns rows ordered by year with the
// career total last, empty slice on a cache miss.
type Repository interface {
	Get(ctx context.Context, batterName, pitcherName string) ([]Stat, error)
	Put(ctx context.Context, batterName string, batterID int64, pitcherName string, pitcherID int64, stats []Stat) error
}
