package textnorm

import "strings"

// StatCategory classifies a canonical stat key by which record set carries it.
type StatCategory string

const (
	CategoryPitcher StatCategory = "pitcher"
	CategoryHitter  StatCategory = "hitter"
	CategoryCommon  StatCategory = "common"
)

// specialTokens maps the slash/plus/hyphen stat spellings to (key, label)
// pairs; everything else falls through to the mechanical rewrite below.
var specialTokens = map[string][2]string{
	"w-l%":  {"w_l_pct", "W-L%"},
	"so/bb": {"so_bb", "SO/BB"},
	"era+":  {"era_plus", "ERA+"},
	"ops+":  {"ops_plus", "OPS+"},
	"rbat+": {"rbat_plus", "Rbat+"},
	"2b":    {"doubles", "2B"},
	"3b":    {"triples", "3B"},
	"h/9":   {"h9", "H/9"},
	"hr/9":  {"hr9", "HR/9"},
	"bb/9":  {"bb9", "BB/9"},
	"so/9":  {"so9", "SO/9"},
}

// NormalizeStatToken turns a user-supplied stat spelling into its canonical
// key and display label.
func NormalizeStatToken(token string) (key, label string) {
	lower := strings.ToLower(token)
	if pair, ok := specialTokens[lower]; ok {
		return pair[0], pair[1]
	}
	key = strings.NewReplacer("-", "_", "/", "_").Replace(lower)
	return key, strings.ToUpper(token)
}

var pitcherOnlyStats = map[string]bool{
	"w": true, "l": true, "w_l_pct": true, "era": true, "gs": true,
	"gf": true, "cg": true, "sho": true, "sv": true, "ip": true,
	"er": true, "ibb": true, "hbp": true, "bk": true, "wp": true,
	"bf": true, "era_plus": true, "fip": true, "whip": true,
	"h9": true, "hr9": true, "bb9": true, "so9": true, "so_bb": true,
}

var hitterOnlyStats = map[string]bool{
	"pa": true, "ab": true, "doubles": true, "triples": true, "rbi": true,
	"sb": true, "cs": true, "ba": true, "obp": true, "slg": true,
	"ops": true, "ops_plus": true, "roba": true, "rbat_plus": true,
	"tb": true, "gidp": true, "sh": true, "sf": true, "pos": true,
}

// Category reports which record set a canonical stat key belongs to. Keys in
// neither exclusive set (g, h, r, hr, bb, so, war, ...) are common.
func Category(key string) StatCategory {
	switch {
	case pitcherOnlyStats[key]:
		return CategoryPitcher
	case hitterOnlyStats[key]:
		return CategoryHitter
	default:
		return CategoryCommon
	}
}

// teamStatKeysPitcher translates player pitching stat keys to the team
// aggregate table's column names where they differ.
var teamStatKeysPitcher = map[string]string{
	"sho":   "c_sho",
	"so_bb": "so_w",
}

// teamStatKeysHitter covers the hitter-side renames.
var teamStatKeysHitter = map[string]string{
	"gidp": "gdp",
}

// TeamStatKey maps a player stat key to the corresponding team-average
// column. Keys that line up already are returned unchanged; the empty string
// marks stats the aggregate tables do not carry.
func TeamStatKey(category StatCategory, key string) string {
	switch key {
	case "year", "age", "team", "lg", "awards", "pos", "war":
		return ""
	}
	if category == CategoryPitcher {
		if mapped, ok := teamStatKeysPitcher[key]; ok {
			return mapped
		}
	} else if mapped, ok := teamStatKeysHitter[key]; ok {
		return mapped
	}
	return key
}

var fullTeamNames = map[string]string{
	"ARI": "Arizona Diamondbacks",
	"ATH": "Athletics",
	"ATL": "Atlanta Braves",
	"BAL": "Baltimore Orioles",
	"BOS": "Boston Red Sox",
	"CHC": "Chicago Cubs",
	"CHW": "Chicago White Sox",
	"CIN": "Cincinnati Reds",
	"CLE": "Cleveland Guardians",
	"COL": "Colorado Rockies",
	"DET": "Detroit Tigers",
	"HOU": "Houston Astros",
	"KCR": "Kansas City Royals",
	"LAA": "Los Angeles Angels",
	"LAD": "Los Angeles Dodgers",
	"MIA": "Miami Marlins",
	"MIL": "Milwaukee Brewers",
	"MIN": "Minnesota Twins",
	"NYM": "New York Mets",
	"NYY": "New York Yankees",
	"OAK": "Oakland Athletics",
	"PHI": "Philadelphia Phillies",
	"PIT": "Pittsburgh Pirates",
	"SDP": "San Diego Padres",
	"SEA": "Seattle Mariners",
	"SFG": "San Francisco Giants",
	"STL": "St. Louis Cardinals",
	"TBR": "Tampa Bay Rays",
	"TEX": "Texas Rangers",
	"TOR": "Toronto Blue Jays",
	"WSN": "Washington Nationals",
}

// FullTeamName expands a team abbreviation to the full name the aggregate
// tables index by; unknown abbreviations pass through unchanged.
func FullTeamName(abbr string) string {
	if full, ok := fullTeamNames[abbr]; ok {
		return full
	}
	return abbr
}
