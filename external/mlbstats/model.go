package mlbstats

type peopleEnvelope struct {
	People []struct {
		ID              int64  `json:"id"`
		FullName        string `json:"fullName"`
		PrimaryPosition struct {
			Abbreviation string `json:"abbreviation"`
		} `json:"primaryPosition"`
	} `json:"people"`
}

type statsEnvelope struct {
	Stats []struct {
		Type struct {
			DisplayName string `json:"displayName"`
		} `json:"type"`
		Splits []splitEnvelope `json:"splits"`
	} `json:"stats"`
}

type splitEnvelope struct {
	Season string `json:"season"`
	Split  struct {
		Code string `json:"code"`
	} `json:"split"`
	Stat splitStat `json:"stat"`
}

// splitStat covers both hitting and pitching split payloads; the API formats
// rate stats as strings.
type splitStat struct {
	GamesPlayed      int    `json:"gamesPlayed"`
	PlateAppearances int    `json:"plateAppearances"`
	BattersFaced     int    `json:"battersFaced"`
	AtBats           int    `json:"atBats"`
	Hits             int    `json:"hits"`
	Doubles          int    `json:"doubles"`
	Triples          int    `json:"triples"`
	HomeRuns         int    `json:"homeRuns"`
	RBI              int    `json:"rbi"`
	BaseOnBalls      int    `json:"baseOnBalls"`
	StrikeOuts       int    `json:"strikeOuts"`
	HitByPitch       int    `json:"hitByPitch"`
	IntentionalWalks int    `json:"intentionalWalks"`
	Avg              string `json:"avg"`
	OBP              string `json:"obp"`
	SLG              string `json:"slg"`
	OPS              string `json:"ops"`
	ERA              string `json:"era"`
	WHIP             string `json:"whip"`
	StrikeoutsPer9   string `json:"strikeoutsPer9Inn"`
	WalksPer9        string `json:"walksPer9Inn"`
	InningsPitched   string `json:"inningsPitched"`
}
