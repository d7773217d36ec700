package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dugout-cli/dugout/internal/domain/statline"
	"github.com/dugout-cli/dugout/internal/domain/teamavg"
	qb "github.com/dugout-cli/dugout/internal/platform/querybuilder"
)

type TeamAverageRepository struct {
	db *sqlx.DB
}

func NewTeamAverageRepository(db *sqlx.DB) *TeamAverageRepository {
	return &TeamAverageRepository{db: db}
}

// Get fetches one team aggregate row by exact year and full team name. The
// caller maps abbreviations to full names before calling.
func (r *TeamAverageRepository) Get(ctx context.Context, kind statline.Kind, year int, team string) (teamavg.Average, bool, error) {
	table, err := teamTableForKind(kind)
	if err != nil {
		return teamavg.Average{}, false, err
	}

	query, args, err := qb.Select("*").From(table).
		Where(qb.Eq("year", year), qb.Eq("tm", team)).
		Limit(1).
		ToSQL()
	if err != nil {
		return teamavg.Average{}, false, fmt.Errorf("build select %s query: %w", table, err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return teamavg.Average{}, false, fmt.Errorf("select %s: %w", table, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return teamavg.Average{}, false, fmt.Errorf("iterate %s rows: %w", table, err)
		}
		return teamavg.Average{}, false, nil
	}

	row := make(map[string]any)
	if err := rows.MapScan(row); err != nil {
		return teamavg.Average{}, false, fmt.Errorf("scan %s row: %w", table, err)
	}

	return averageFromRow(kind, row), true, nil
}

// ReplaceSeason swaps out one year of team aggregates inside a transaction.
func (r *TeamAverageRepository) ReplaceSeason(ctx context.Context, kind statline.Kind, year int, rows []statline.RawLine) (int, error) {
	table, err := teamTableForKind(kind)
	if err != nil {
		return 0, err
	}
	columns := teamColumnsForKind(kind)

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin replace season tx: %w", err)
	}
	defer tx.Rollback()

	query, args, err := qb.DeleteFrom(table).Where(qb.Eq("year", year)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete season query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return 0, fmt.Errorf("delete %s season %d: %w", table, year, err)
	}

	for start := 0; start < len(rows); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(rows) {
			end = len(rows)
		}

		builder := qb.InsertInto(table).Columns(columns...)
		for _, row := range rows[start:end] {
			values := make([]any, len(columns))
			for i, col := range columns {
				values[i] = row[col]
			}
			builder.Values(values...)
		}

		query, args, err := builder.ToSQL()
		if err != nil {
			return 0, fmt.Errorf("build insert %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return 0, fmt.Errorf("insert %s rows: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit replace season tx: %w", err)
	}

	return len(rows), nil
}
