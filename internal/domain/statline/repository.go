package statline

import "context"

// Repository describes season-line persistence needs from use cases. List
// methods return rows ordered by year ascending then team, pre-filtered to
// the minimum playing time (IP >= 5 for pitchers, AB >= 5 for hitters)
// except ListByYear, which returns the full table for leader scans.
type Repository interface {
	// Columns reports the record set's storage column order, used to lay
	// out report tables.
	Columns(ctx context.Context, kind Kind) ([]string, error)
	FindByPattern(ctx context.Context, kind Kind, pattern string) ([]Line, error)
	FindByName(ctx context.Context, kind Kind, name string) ([]Line, error)
	DistinctNames(ctx context.Context, kind Kind) ([]string, error)
	ListByYear(ctx context.Context, kind Kind, year int) ([]Line, error)
}

// RawLine is an unvalidated season row keyed by storage column, produced by
// the bulk loaders.
type RawLine map[string]any

// Writer is the bulk-load side of the store: replace one season of one record
// set atomically.
type Writer interface {
	ReplaceSeason(ctx context.Context, kind Kind, year int, rows []RawLine) (int, error)
}
