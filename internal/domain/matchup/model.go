package matchup

// CareerYear is the synthetic year key for the career-total row of a
// batter-vs-pitcher series.
const CareerYear = "career"

// Stat is one batter-vs-pitcher performance snapshot, either a single-season
// split (Year = "2024") or the career total (Year = CareerYear).
type Stat struct {
	Year    string
	Games   int
	PA      int
	AB      int
	H       int
	Doubles int
	Triples int
	HR      int
	RBI     int
	BB      int
	SO      int
	HBP     int
	IBB     int
	BA      float64
	OBP     float64
	SLG     float64
	OPS     float64
}

func (s Stat) Career() bool {
	return s.Year == CareerYear
}
