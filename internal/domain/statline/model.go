package statline

import "strconv"

// Kind distinguishes the two season-line record sets.
type Kind string

const (
	KindPitcher Kind = "pitcher"
	KindHitter  Kind = "hitter"
)

func (k Kind) Valid() bool {
	return k == KindPitcher || k == KindHitter
}

// Other returns the opposite record set.
func (k Kind) Other() Kind {
	if k == KindPitcher {
		return KindHitter
	}
	return KindPitcher
}

// Value is a single stat cell. Source rows carry NULLs for stats a player did
// not accumulate, so validity is tracked alongside the number.
type Value struct {
	Num   float64
	Raw   string
	IsNum bool
	Valid bool
}

func Number(v float64) Value {
	return Value{Num: v, IsNum: true, Valid: true}
}

func Text(s string) Value {
	return Value{Raw: s, Valid: true}
}

// Display renders the cell the way the season tables print it: numbers in
// their shortest form, missing values as an empty string.
func (v Value) Display() string {
	if !v.Valid {
		return ""
	}
	if v.IsNum {
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	}
	return v.Raw
}

// Float returns the numeric value when one is present.
func (v Value) Float() (float64, bool) {
	if !v.Valid || !v.IsNum {
		return 0, false
	}
	return v.Num, true
}

// Line is one player's stat record for one team-stint in one year. The Stats
// map is keyed by canonical stat key (era, ops_plus, doubles, ...); identity
// and metadata fields are promoted to typed fields.
type Line struct {
	Kind       Kind
	Year       int
	Player     string
	Age        int
	Team       string
	League     string
	Awards     string
	Position   string
	ExternalID string
	Stats      map[string]Value
}

// Stat returns the named stat cell, invalid when absent.
func (l Line) Stat(key string) Value {
	return l.Stats[key]
}

// Games returns the games-played total for the line, 0 when missing.
func (l Line) Games() int {
	if g, ok := l.Stat("g").Float(); ok {
		return int(g)
	}
	return 0
}

// MultiTeam reports whether the line is a combined-stint aggregate row
// ("2TM", "3TM") for a traded player.
func (l Line) MultiTeam() bool {
	return isMultiTeamCode(l.Team)
}

func isMultiTeamCode(team string) bool {
	for i := 0; i+3 <= len(team); i++ {
		if team[i+1] == 'T' && team[i+2] == 'M' && (team[i] == '2' || team[i] == '3') {
			return true
		}
	}
	return false
}
