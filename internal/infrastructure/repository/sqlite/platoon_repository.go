package sqlite

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/dugout-cli/dugout/internal/domain/platoon"
	"github.com/dugout-cli/dugout/internal/domain/statline"
	qb "github.com/dugout-cli/dugout/internal/platform/querybuilder"
)

type PlatoonRepository struct {
	db *sqlx.DB
}

func NewPlatoonRepository(db *sqlx.DB) *PlatoonRepository {
	return &PlatoonRepository{db: db}
}

// Get returns cached splits grouped by year. Years missing either side are
// dropped, so a single-year lookup with an incomplete pair reads as a miss.
func (r *PlatoonRepository) Get(ctx context.Context, playerName string, year int, allYears bool) ([]platoon.YearSplits, error) {
	conds := []qb.Condition{qb.Eq("player_name", playerName)}
	switch {
	case allYears:
		conds = append(conds, qb.NotEq("year", platoon.CareerYear))
	case year == 0:
		conds = append(conds, qb.Eq("year", platoon.CareerYear))
	default:
		conds = append(conds, qb.Eq("year", strconv.Itoa(year)))
	}

	query, args, err := qb.Select(platoonColumns...).From("platoon_splits").
		Where(conds...).
		OrderBy("CASE WHEN year = 'career' THEN 9999 ELSE CAST(year AS INTEGER) END", "vs_side").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select platoon splits query: %w", err)
	}

	var rows []platoonTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select platoon splits: %w", err)
	}

	byYear := make(map[string]*platoon.YearSplits)
	order := make([]string, 0, len(rows)/2)
	for _, row := range rows {
		ys, ok := byYear[row.Year]
		if !ok {
			ys = &platoon.YearSplits{Year: row.Year}
			byYear[row.Year] = ys
			order = append(order, row.Year)
		}
		if row.VsSide == string(platoon.SideLeft) {
			ys.Left = row.toSplit()
		} else {
			ys.Right = row.toSplit()
		}
	}

	out := make([]platoon.YearSplits, 0, len(order))
	for _, y := range order {
		ys := byYear[y]
		if ys.Left.Side == "" || ys.Right.Side == "" {
			continue
		}
		out = append(out, *ys)
	}

	return out, nil
}

// Put upserts complete left/right pairs; incomplete years are skipped rather
// than cached half-filled.
func (r *PlatoonRepository) Put(ctx context.Context, playerName string, playerID int64, kind statline.Kind, splits []platoon.YearSplits) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin cache platoon tx: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, ys := range splits {
		if ys.Left.Side == "" || ys.Right.Side == "" {
			continue
		}
		for _, s := range []platoon.Split{ys.Left, ys.Right} {
			row := splitRow(playerName, playerID, string(kind), ys.Year, s, now)
			query, args, err := qb.ReplaceModel("platoon_splits", row)
			if err != nil {
				return fmt.Errorf("build cache platoon query: %w", err)
			}
			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return fmt.Errorf("cache platoon row %s/%s: %w", ys.Year, s.Side, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit cache platoon tx: %w", err)
	}

	return nil
}
