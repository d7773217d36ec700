package sqlite

import (
	"fmt"

	"github.com/dugout-cli/dugout/internal/domain/statline"
	"github.com/dugout-cli/dugout/internal/domain/teamavg"
)

var teamPitcherColumns = []string{
	"year", "tm", "pitcher_count", "p_age", "ra_per_g", "w", "l", "w_l_pct",
	"era", "g", "gs", "gf", "cg", "t_sho", "c_sho", "sv", "ip", "h", "r",
	"er", "hr", "bb", "ibb", "so", "hbp", "bk", "wp", "bf", "era_plus",
	"fip", "whip", "h9", "hr9", "bb9", "so9", "so_w", "lob",
}

var teamHitterColumns = []string{
	"year", "tm", "bat_count", "bat_age", "r_per_g", "g", "pa", "ab", "r",
	"h", "doubles", "triples", "hr", "rbi", "sb", "cs", "bb", "so", "ba",
	"obp", "slg", "ops", "ops_plus", "tb", "gdp", "hbp", "sh", "sf", "ibb",
	"lob",
}

func teamTableForKind(kind statline.Kind) (string, error) {
	switch kind {
	case statline.KindPitcher:
		return "team_pitcher_stats", nil
	case statline.KindHitter:
		return "team_hitter_stats", nil
	default:
		return "", fmt.Errorf("unknown record set %q", kind)
	}
}

func teamColumnsForKind(kind statline.Kind) []string {
	if kind == statline.KindPitcher {
		return teamPitcherColumns
	}
	return teamHitterColumns
}

func playerCountColumn(kind statline.Kind) string {
	if kind == statline.KindPitcher {
		return "pitcher_count"
	}
	return "bat_count"
}

func averageFromRow(kind statline.Kind, row map[string]any) teamavg.Average {
	avg := teamavg.Average{
		Kind:        kind,
		Year:        int(anyToInt(row["year"])),
		Team:        anyToString(row["tm"]),
		PlayerCount: int(anyToInt(row[playerCountColumn(kind)])),
		Stats:       make(map[string]statline.Value, len(row)),
	}
	for col, v := range row {
		if col == "tm" {
			continue
		}
		avg.Stats[col] = cellValue(v)
	}
	return avg
}
