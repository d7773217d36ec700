package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/dugout-cli/dugout/internal/domain/statline"
	qb "github.com/dugout-cli/dugout/internal/platform/querybuilder"
)

// insertChunkSize keeps multi-row inserts under SQLite's bound-variable cap.
const insertChunkSize = 25

type StatLineRepository struct {
	db *sqlx.DB
}

func NewStatLineRepository(db *sqlx.DB) *StatLineRepository {
	return &StatLineRepository{db: db}
}

func (r *StatLineRepository) Columns(_ context.Context, kind statline.Kind) ([]string, error) {
	if _, err := tableForKind(kind); err != nil {
		return nil, err
	}
	return append([]string(nil), columnsForKind(kind)...), nil
}

func (r *StatLineRepository) FindByPattern(ctx context.Context, kind statline.Kind, pattern string) ([]statline.Line, error) {
	return r.selectLines(ctx, kind, qb.Like("player", pattern))
}

func (r *StatLineRepository) FindByName(ctx context.Context, kind statline.Kind, name string) ([]statline.Line, error) {
	return r.selectLines(ctx, kind, qb.Eq("player", name))
}

func (r *StatLineRepository) selectLines(ctx context.Context, kind statline.Kind, cond qb.Condition) ([]statline.Line, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return nil, err
	}

	query, args, err := qb.Select("*").From(table).
		Where(cond, qb.Expr(minPlayingTimeFilter(kind))).
		OrderBy("year", "team").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select %s query: %w", table, err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", table, err)
	}
	defer rows.Close()

	var out []statline.Line
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		out = append(out, lineFromRow(kind, row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", table, err)
	}

	return out, nil
}

func (r *StatLineRepository) DistinctNames(ctx context.Context, kind statline.Kind) ([]string, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return nil, err
	}

	query, args, err := qb.Select("DISTINCT player").From(table).
		Where(qb.Expr(minPlayingTimeFilter(kind))).
		OrderBy("player").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build distinct names query: %w", err)
	}

	var names []string
	if err := r.db.SelectContext(ctx, &names, query, args...); err != nil {
		return nil, fmt.Errorf("select distinct names from %s: %w", table, err)
	}

	return names, nil
}

func (r *StatLineRepository) ListByYear(ctx context.Context, kind statline.Kind, year int) ([]statline.Line, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return nil, err
	}

	query, args, err := qb.Select("*").From(table).
		Where(qb.Eq("year", year)).
		OrderBy("team", "player").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list by year query: %w", err)
	}

	rows, err := r.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s by year: %w", table, err)
	}
	defer rows.Close()

	var out []statline.Line
	for rows.Next() {
		row := make(map[string]any)
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("scan %s row: %w", table, err)
		}
		out = append(out, lineFromRow(kind, row))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate %s rows: %w", table, err)
	}

	return out, nil
}

// ReplaceSeason swaps out one year of one record set inside a transaction so
// a failed load never leaves a half-written season behind.
func (r *StatLineRepository) ReplaceSeason(ctx context.Context, kind statline.Kind, year int, lines []statline.RawLine) (int, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return 0, err
	}
	columns := columnsForKind(kind)

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

	for start := 0; start < len(lines); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(lines) {
			end = len(lines)
		}

		builder := qb.InsertInto(table).Columns(columns...)
		for _, line := range lines[start:end] {
			values := make([]any, len(columns))
			for i, col := range columns {
				values[i] = line[col]
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

	return len(lines), nil
}
