package usecase

import (
	"context"
	"fmt"

	"github.com/dugout-cli/dugout/internal/domain/statline"
	"github.com/dugout-cli/dugout/internal/platform/style"
	"github.com/dugout-cli/dugout/internal/platform/textnorm"
)

var pitcherCompareColumns = []ReportColumn{
	{"WAR", "war"}, {"W", "w"}, {"L", "l"}, {"ERA", "era"},
	{"G", "g"}, {"GS", "gs"}, {"IP", "ip"}, {"H", "h"},
	{"R", "r"}, {"ER", "er"}, {"HR", "hr"}, {"BB", "bb"},
	{"SO", "so"}, {"WHIP", "whip"}, {"ERA+", "era_plus"},
	{"FIP", "fip"}, {"SO/9", "so9"}, {"BB/9", "bb9"},
}

var hitterCompareColumns = []ReportColumn{
	{"WAR", "war"}, {"G", "g"}, {"PA", "pa"}, {"AB", "ab"},
	{"R", "r"}, {"H", "h"}, {"2B", "doubles"}, {"3B", "triples"},
	{"HR", "hr"}, {"RBI", "rbi"}, {"SB", "sb"}, {"BB", "bb"},
	{"SO", "so"}, {"BA", "ba"}, {"OBP", "obp"}, {"SLG", "slg"},
	{"OPS", "ops"}, {"OPS+", "ops_plus"},
}

// CompareCell is one value in a head-to-head row; Role marks the winner.
type CompareCell struct {
	Text string
	Role style.Role
}

// CompareRow is one stat line of a head-to-head table.
type CompareRow struct {
	Label string
	Left  CompareCell
	Right CompareCell
}

// Comparison is a two-player, single-season head-to-head table.
type Comparison struct {
	Title     string
	LeftName  string
	RightName string
	Rows      []CompareRow
}

// CompareService lines two players of the same record set up side by side
// for one season.
type CompareService struct {
	resolver      *ResolverService
	lines         statline.Repository
	currentSeason int
}

func NewCompareService(resolver *ResolverService, lines statline.Repository, currentSeason int) *CompareService {
	return &CompareService{
		resolver:      resolver,
		lines:         lines,
		currentSeason: currentSeason,
	}
}

// Compare resolves both queries and builds the head-to-head table. Both
// players must belong to the same record set; the season defaults to the
// current one. A traded player's combined-stint row is preferred over any
// single-team stint.
func (s *CompareService) Compare(ctx context.Context, query1, query2 string, stats []string, yearToken string) (Comparison, error) {
	res1, err := s.resolver.Find(ctx, query1)
	if err != nil {
		return Comparison{}, err
	}
	res2, err := s.resolver.Find(ctx, query2)
	if err != nil {
		return Comparison{}, err
	}
	if res1.Empty() {
		return Comparison{}, fmt.Errorf("%w: no players found matching %q", ErrNotFound, query1)
	}
	if res2.Empty() {
		return Comparison{}, fmt.Errorf("%w: no players found matching %q", ErrNotFound, query2)
	}

	var kind statline.Kind
	var lines1, lines2 []statline.Line
	switch {
	case len(res1.Pitcher) > 0 && len(res2.Pitcher) > 0:
		kind = statline.KindPitcher
		lines1, lines2 = res1.Pitcher, res2.Pitcher
	case len(res1.Hitter) > 0 && len(res2.Hitter) > 0:
		kind = statline.KindHitter
		lines1, lines2 = res1.Hitter, res2.Hitter
	default:
		return Comparison{}, fmt.Errorf("%w: cannot compare players of different types (pitcher vs hitter)", ErrInvalidInput)
	}

	for _, side := range []struct {
		query string
		lines []statline.Line
	}{{query1, lines1}, {query2, lines2}} {
		if names := distinctRawNames(side.lines); len(names) > 1 {
			return Comparison{}, &AmbiguousPlayersError{
				Query:      side.query,
				Kind:       kind,
				Candidates: s.resolver.Players(side.lines, kind),
			}
		}
	}

	year := s.currentSeason
	if yearToken != "" {
		year, err = textnorm.ParseYear(yearToken)
		if err != nil {
			return Comparison{}, fmt.Errorf("%w: invalid year %q, use 2022 or 22", ErrInvalidInput, yearToken)
		}
	}

	line1, ok := seasonLine(lines1, year)
	if !ok {
		return Comparison{}, fmt.Errorf("%w: no data found for %q in %d", ErrNotFound, query1, year)
	}
	line2, ok := seasonLine(lines2, year)
	if !ok {
		return Comparison{}, fmt.Errorf("%w: no data found for %q in %d", ErrNotFound, query2, year)
	}

	columns, err := s.compareColumns(ctx, kind, stats)
	if err != nil {
		return Comparison{}, err
	}

	cmp := Comparison{
		Title:     fmt.Sprintf("%s vs %s (%d)", line1.Player, line2.Player, year),
		LeftName:  line1.Player,
		RightName: line2.Player,
	}
	for _, col := range columns {
		cmp.Rows = append(cmp.Rows, compareRow(col, line1, line2))
	}
	return cmp, nil
}

// seasonLine picks the player's line for a year, preferring the combined
// multi-team aggregate when the season was split across trades.
func seasonLine(lines []statline.Line, year int) (statline.Line, bool) {
	rows := linesForYear(lines, year)
	if len(rows) == 0 {
		return statline.Line{}, false
	}
	for _, row := range rows {
		if row.MultiTeam() {
			return row, true
		}
	}
	return rows[0], true
}

func (s *CompareService) compareColumns(ctx context.Context, kind statline.Kind, stats []string) ([]ReportColumn, error) {
	if len(stats) == 0 {
		if kind == statline.KindPitcher {
			return pitcherCompareColumns, nil
		}
		return hitterCompareColumns, nil
	}

	stored, err := s.lines.Columns(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s columns: %w", kind, err)
	}
	known := make(map[string]bool, len(stored))
	for _, col := range stored {
		known[col] = true
	}

	var columns []ReportColumn
	for _, token := range stats {
		key, label := textnorm.NormalizeStatToken(token)
		if known[key] {
			columns = append(columns, ReportColumn{label, key})
		}
	}
	return columns, nil
}

func compareRow(col ReportColumn, line1, line2 statline.Line) CompareRow {
	v1 := line1.Stat(col.Key)
	v2 := line2.Stat(col.Key)
	row := CompareRow{
		Label: col.Label,
		Left:  CompareCell{Text: displayOrNA(v1)},
		Right: CompareCell{Text: displayOrNA(v2)},
	}

	f1, ok1 := v1.Float()
	f2, ok2 := v2.Float()
	if !ok1 || !ok2 {
		return row
	}
	if lowerIsBetterStats[col.Key] {
		f1, f2 = -f1, -f2
	}
	switch {
	case f1 > f2:
		row.Left.Role = style.RoleBetter
	case f2 > f1:
		row.Right.Role = style.RoleBetter
	}
	return row
}

func displayOrNA(v statline.Value) string {
	if !v.Valid {
		return "N/A"
	}
	return v.Display()
}
