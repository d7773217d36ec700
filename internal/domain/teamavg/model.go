package teamavg

import "github.com/dugout-cli/dugout/internal/domain/statline"

// LeagueAverageTeam is the sentinel team name under which the source data
// stores the league-wide average row for each year.
const LeagueAverageTeam = "League Average"

// Average is one (year, team) aggregate row summarizing pitching or hitting
// performance across a roster. Stats are keyed by the team-table column
// names, which differ in places from the player-table keys (so_w vs so_bb);
// use cases translate through textnorm.TeamStatKey.
type Average struct {
	Kind statline.Kind
	Year int
	Team string
	// PlayerCount is the number of contributing players, used to
	// de-normalize cumulative stats into per-player figures.
	PlayerCount int
	Stats       map[string]statline.Value
}

// Stat returns the named aggregate cell, invalid when absent.
func (a Average) Stat(key string) statline.Value {
	return a.Stats[key]
}
