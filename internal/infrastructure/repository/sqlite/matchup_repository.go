package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dugout-cli/dugout/internal/domain/matchup"
	qb "github.com/dugout-cli/dugout/internal/platform/querybuilder"
)

type MatchupRepository struct {
	db *sqlx.DB
}

func NewMatchupRepository(db *sqlx.DB) *MatchupRepository {
	return &MatchupRepository{db: db}
}

// Get returns cached batter-vs-pitcher rows ordered by year with the career
// total last, or an empty slice on a cache miss.
func (r *MatchupRepository) Get(ctx context.Context, batterName, pitcherName string) ([]matchup.Stat, error) {
	query, args, err := qb.Select(matchupColumns...).From("batter_pitcher_matchups").
		Where(qb.Eq("batter_name", batterName), qb.Eq("pitcher_name", pitcherName)).
		OrderBy("CASE WHEN year = 'career' THEN 9999 ELSE CAST(year AS INTEGER) END").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matchups query: %w", err)
	}

	var rows []matchupTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matchups: %w", err)
	}

	out := make([]matchup.Stat, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

// Put upserts one fetched series, one row per year key.
func (r *MatchupRepository) Put(ctx context.Context, batterName string, batterID int64, pitcherName string, pitcherID int64, stats []matchup.Stat) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache matchup tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, s := range stats {
		row := matchupTableModel{
			BatterName:   batterName,
			BatterMLBID:  batterID,
			PitcherName:  pitcherName,
			PitcherMLBID: pitcherID,
			Year:         s.Year,
			Games:        s.Games,
			PA:           s.PA,
			AB:           s.AB,
			H:            s.H,
			Doubles:      s.Doubles,
			Triples:      s.Triples,
			HR:           s.HR,
			RBI:          s.RBI,
			BB:           s.BB,
			SO:           s.SO,
			HBP:          s.HBP,
			IBB:          s.IBB,
			BA:           s.BA,
			OBP:          s.OBP,
			SLG:          s.SLG,
			OPS:          s.OPS,
			LastUpdated:  now,
		}

		query, args, err := qb.ReplaceModel("batter_pitcher_matchups", row)
		if err != nil {
			return fmt.Errorf("build cache matchup query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("cache matchup row %s: %w", s.Year, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cache matchup tx: %w", err)
	}

	return nil
}
