package sqlite

import (
	"time"

	"github.com/dugout-cli/dugout/internal/domain/matchup"
)

// Column list matches the migration DDL minus the synthetic id key, which
// has no destination field on the model.
var matchupColumns = []string{
	"batter_name", "batter_mlb_id", "pitcher_name", "pitcher_mlb_id",
	"year", "games", "pa", "ab", "h", "doubles", "triples", "hr", "rbi",
	"bb", "so", "hbp", "ibb", "ba", "obp", "slg", "ops", "last_updated",
}

type matchupTableModel struct {
	BatterName   string    `db:"batter_name"`
	BatterMLBID  int64     `db:"batter_mlb_id"`
	PitcherName  string    `db:"pitcher_name"`
	PitcherMLBID int64     `db:"pitcher_mlb_id"`
	Year         string    `db:"year"`
	Games        int       `db:"games"`
	PA           int       `db:"pa"`
	AB           int       `db:"ab"`
	H            int       `db:"h"`
	Doubles      int       `db:"doubles"`
	Triples      int       `db:"triples"`
	HR           int       `db:"hr"`
	RBI          int       `db:"rbi"`
	BB           int       `db:"bb"`
	SO           int       `db:"so"`
	HBP          int       `db:"hbp"`
	IBB          int       `db:"ibb"`
	BA           float64   `db:"ba"`
	OBP          float64   `db:"obp"`
	SLG          float64   `db:"slg"`
	OPS          float64   `db:"ops"`
	LastUpdated  time.Time `db:"last_updated"`
}

func (m matchupTableModel) toDomain() matchup.Stat {
	return matchup.Stat{
		Year:    m.Year,
		Games:   m.Games,
		PA:      m.PA,
		AB:      m.AB,
		H:       m.H,
		Doubles: m.Doubles,
		Triples: m.Triples,
		HR:      m.HR,
		RBI:     m.RBI,
		BB:      m.BB,
		SO:      m.SO,
		HBP:     m.HBP,
		IBB:     m.IBB,
		BA:      m.BA,
		OBP:     m.OBP,
		SLG:     m.SLG,
		OPS:     m.OPS,
	}
}
