package sqlite

import (
	"time"

	"github.com/dugout-cli/dugout/internal/domain/platoon"
)

// Column list matches the migration DDL minus the synthetic id key, which
// has no destination field on the model.
var platoonColumns = []string{
	"player_name", "player_mlb_id", "player_type", "year", "vs_side",
	"pa", "ab", "h", "doubles", "triples", "hr", "rbi", "bb", "so",
	"ba", "obp", "slg", "ops", "era", "whip", "k9", "bb9", "ip",
	"last_updated",
}

type platoonTableModel struct {
	PlayerName  string    `db:"player_name"`
	PlayerMLBID int64     `db:"player_mlb_id"`
	PlayerType  string    `db:"player_type"`
	Year        string    `db:"year"`
	VsSide      string    `db:"vs_side"`
	PA          int       `db:"pa"`
	AB          int       `db:"ab"`
	H           int       `db:"h"`
	Doubles     int       `db:"doubles"`
	Triples     int       `db:"triples"`
	HR          int       `db:"hr"`
	RBI         int       `db:"rbi"`
	BB          int       `db:"bb"`
	SO          int       `db:"so"`
	BA          float64   `db:"ba"`
	OBP         float64   `db:"obp"`
	SLG         float64   `db:"slg"`
	OPS         float64   `db:"ops"`
	ERA         float64   `db:"era"`
	WHIP        float64   `db:"whip"`
	K9          float64   `db:"k9"`
	BB9         float64   `db:"bb9"`
	IP          string    `db:"ip"`
	LastUpdated time.Time `db:"last_updated"`
}

func (m platoonTableModel) toSplit() platoon.Split {
	return platoon.Split{
		Side:    platoon.Side(m.VsSide),
		PA:      m.PA,
		AB:      m.AB,
		H:       m.H,
		Doubles: m.Doubles,
		Triples: m.Triples,
		HR:      m.HR,
		RBI:     m.RBI,
		BB:      m.BB,
		SO:      m.SO,
		BA:      m.BA,
		OBP:     m.OBP,
		SLG:     m.SLG,
		OPS:     m.OPS,
		ERA:     m.ERA,
		WHIP:    m.WHIP,
		K9:      m.K9,
		BB9:     m.BB9,
		IP:      m.IP,
	}
}

func splitRow(name string, id int64, playerType, year string, s platoon.Split, now time.Time) platoonTableModel {
	return platoonTableModel{
		PlayerName:  name,
		PlayerMLBID: id,
		PlayerType:  playerType,
		Year:        year,
		VsSide:      string(s.Side),
		PA:          s.PA,
		AB:          s.AB,
		H:           s.H,
		Doubles:     s.Doubles,
		Triples:     s.Triples,
		HR:          s.HR,
		RBI:         s.RBI,
		BB:          s.BB,
		SO:          s.SO,
		BA:          s.BA,
		OBP:         s.OBP,
		SLG:         s.SLG,
		OPS:         s.OPS,
		ERA:         s.ERA,
		WHIP:        s.WHIP,
		K9:          s.K9,
		BB9:         s.BB9,
		IP:          s.IP,
		LastUpdated: now,
	}
}
