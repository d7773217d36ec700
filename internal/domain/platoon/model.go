package platoon

// CareerYear is the year key for career-total split rows.
const CareerYear = "career"

// Side is the opposing-player handedness a split is measured against.
type Side string

const (
	SideLeft  Side = "left"
	SideRight Side = "right"
)

// Split is performance against one handedness for one year (or career).
// Pitcher splits describe opposing batters, so the rate stats beyond the
// slash line (ERA, WHIP, K9, BB9) are only populated for pitchers. IP keeps
// the source's thirds notation ("45.1").
type Split struct {
	Side    Side
	PA      int
	AB      int
	H       int
	Doubles int
	Triples int
	HR      int
	RBI     int
	BB      int
	SO      int
	BA      float64
	OBP     float64
	SLG     float64
	OPS     float64
	ERA     float64
	WHIP    float64
	K9      float64
	BB9     float64
	IP      string
}

// YearSplits pairs the left and right splits for one year. A year with only
// one side fetched is incomplete and is never cached or returned.
type YearSplits struct {
	Year  string
	Left  Split
	Right Split
}

func (y YearSplits) Career() bool {
	return y.Year == CareerYear
}
