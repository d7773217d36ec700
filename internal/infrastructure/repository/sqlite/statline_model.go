package sqlite

import (
	"fmt"
	"strconv"

	"github.com/dugout-cli/dugout/internal/domain/statline"
)

// Column order matches the migration DDL; the loaders and the report layout
// both depend on it.
var pitcherColumns = []string{
	"year", "rk", "player", "age", "team", "lg", "war", "w", "l", "w_l_pct",
	"era", "g", "gs", "gf", "cg", "sho", "sv", "ip", "h", "r", "er", "hr",
	"bb", "ibb", "so", "hbp", "bk", "wp", "bf", "era_plus", "fip", "whip",
	"h9", "hr9", "bb9", "so9", "so_bb", "awards", "player_additional",
}

var hitterColumns = []string{
	"year", "rk", "player", "age", "team", "lg", "war", "g", "pa", "ab",
	"r", "h", "doubles", "triples", "hr", "rbi", "sb", "cs", "bb", "so",
	"ba", "obp", "slg", "ops", "ops_plus", "roba", "rbat_plus", "tb",
	"gidp", "hbp", "sh", "sf", "ibb", "pos", "awards", "player_additional",
}

func tableForKind(kind statline.Kind) (string, error) {
	switch kind {
	case statline.KindPitcher:
		return "pitcher_stats", nil
	case statline.KindHitter:
		return "hitter_stats", nil
	default:
		return "", fmt.Errorf("unknown record set %q", kind)
	}
}

func columnsForKind(kind statline.Kind) []string {
	if kind == statline.KindPitcher {
		return pitcherColumns
	}
	return hitterColumns
}

// minPlayingTimeFilter drops cameo appearances from name resolution, the
// position players who pitched an inning and the pitchers with a handful of
// at-bats.
func minPlayingTimeFilter(kind statline.Kind) string {
	if kind == statline.KindPitcher {
		return "ip >= 5"
	}
	return "ab >= 5"
}

func lineFromRow(kind statline.Kind, row map[string]any) statline.Line {
	line := statline.Line{
		Kind:       kind,
		Year:       int(anyToInt(row["year"])),
		Player:     anyToString(row["player"]),
		Age:        int(anyToInt(row["age"])),
		Team:       anyToString(row["team"]),
		League:     anyToString(row["lg"]),
		Awards:     anyToString(row["awards"]),
		Position:   anyToString(row["pos"]),
		ExternalID: anyToString(row["player_additional"]),
		Stats:      make(map[string]statline.Value, len(row)),
	}
	for col, v := range row {
		if col == "player" || col == "player_additional" {
			continue
		}
		line.Stats[col] = cellValue(v)
	}
	return line
}

func cellValue(v any) statline.Value {
	switch t := v.(type) {
	case nil:
		return statline.Value{}
	case int64:
		return statline.Number(float64(t))
	case float64:
		return statline.Number(t)
	case []byte:
		return statline.Text(string(t))
	case string:
		return statline.Text(t)
	default:
		return statline.Text(fmt.Sprint(t))
	}
}

func anyToInt(v any) int64 {
	switch t := v.(type) {
	case int64:
		return t
	case float64:
		return int64(t)
	case []byte:
		n, _ := strconv.ParseInt(string(t), 10, 64)
		return n
	case string:
		n, _ := strconv.ParseInt(t, 10, 64)
		return n
	default:
		return 0
	}
}

func anyToString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	default:
		return fmt.Sprint(t)
	}
}
