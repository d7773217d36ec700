package usecase

import (
	"context"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/dugout-cli/dugout/internal/domain/statline"
	"github.com/dugout-cli/dugout/internal/domain/teamavg"
	"github.com/dugout-cli/dugout/internal/platform/style"
	"github.com/dugout-cli/dugout/internal/platform/textnorm"
)

// CompareMode selects the optional comparison footer of a season report.
type CompareMode string

const (
	CompareNone   CompareMode = ""
	CompareTeam   CompareMode = "team"
	CompareLeague CompareMode = "league"
)

// ReportColumn pairs a display label with its stat key.
type ReportColumn struct {
	Label string
	Key   string
}

// ReportCell is one rendered table cell; Role is empty when unstyled.
type ReportCell struct {
	Text string
	Role style.Role
}

// ReportRow is one season line. GapBefore carries a "[Did not play ...]"
// marker to print above the row.
type ReportRow struct {
	Cells     []ReportCell
	GapBefore string
}

// Report is a season table laid out and styled, ready for printing. Current
// season rows render last, set apart from the historical block.
type Report struct {
	Header     string
	Columns    []ReportColumn
	Widths     []int
	Historical []ReportRow
	Current    []ReportRow
	// CurrentGap marks seasons missed between the last historical line and
	// the current block.
	CurrentGap string
	// Comparison footer, populated in team or league mode when at least one
	// average row was found.
	ComparisonLabel string
	ComparisonRows  [][]string
}

var metaReportColumns = []ReportColumn{
	{"Season", "year"}, {"Age", "age"}, {"Team", "team"}, {"Lg", "lg"},
}

var pitcherReportColumns = []ReportColumn{
	{"Season", "year"}, {"Age", "age"}, {"Team", "team"}, {"Lg", "lg"},
	{"WAR", "war"}, {"W", "w"}, {"L", "l"}, {"W-L%", "w_l_pct"}, {"ERA", "era"},
	{"G", "g"}, {"GS", "gs"}, {"GF", "gf"}, {"CG", "cg"}, {"SHO", "sho"}, {"SV", "sv"},
	{"IP", "ip"}, {"H", "h"}, {"R", "r"}, {"ER", "er"}, {"HR", "hr"},
	{"BB", "bb"}, {"IBB", "ibb"}, {"SO", "so"}, {"HBP", "hbp"}, {"BK", "bk"}, {"WP", "wp"}, {"BF", "bf"},
	{"ERA+", "era_plus"}, {"FIP", "fip"}, {"WHIP", "whip"},
	{"H/9", "h9"}, {"HR/9", "hr9"}, {"BB/9", "bb9"}, {"SO/9", "so9"}, {"SO/BB", "so_bb"},
	{"Awards", "awards"},
}

var hitterReportColumns = []ReportColumn{
	{"Season", "year"}, {"Age", "age"}, {"Team", "team"}, {"Lg", "lg"},
	{"WAR", "war"}, {"G", "g"}, {"PA", "pa"}, {"AB", "ab"}, {"R", "r"}, {"H", "h"},
	{"2B", "doubles"}, {"3B", "triples"}, {"HR", "hr"}, {"RBI", "rbi"},
	{"SB", "sb"}, {"CS", "cs"}, {"BB", "bb"}, {"SO", "so"},
	{"BA", "ba"}, {"OBP", "obp"}, {"SLG", "slg"}, {"OPS", "ops"},
	{"OPS+", "ops_plus"}, {"rOBA", "roba"}, {"Rbat+", "rbat_plus"},
	{"TB", "tb"}, {"GIDP", "gidp"}, {"HBP", "hbp"}, {"SH", "sh"}, {"SF", "sf"}, {"IBB", "ibb"},
	{"Pos", "pos"}, {"Awards", "awards"},
}

// lowerIsBetterStats are the pitching rate stats where a smaller value wins.
var lowerIsBetterStats = map[string]bool{
	"era": true, "fip": true, "whip": true, "h9": true, "hr9": true, "bb9": true,
}

// Comparison mode narrows the table to the rate stats the team aggregates
// can answer for.
var pitcherComparisonStats = map[string]bool{
	"era": true, "w_l_pct": true, "whip": true, "fip": true, "era_plus": true,
	"h9": true, "hr9": true, "bb9": true, "so9": true, "so_bb": true,
}

var hitterComparisonStats = map[string]bool{
	"ba": true, "obp": true, "slg": true, "ops": true, "ops_plus": true,
}

// Rate stats only count toward a league lead with a qualified workload.
var pitcherRateStats = map[string]bool{
	"era": true, "whip": true, "fip": true, "h9": true, "hr9": true, "bb9": true,
	"so9": true, "w_l_pct": true, "era_plus": true, "so_bb": true,
}

var hitterRateStats = map[string]bool{
	"ba": true, "obp": true, "slg": true, "ops": true, "ops_plus": true,
	"roba": true, "rbat_plus": true,
}

const (
	pitcherQualInnings         = 162
	hitterQualPlateAppearances = 502
)

// awardWinnerPattern matches a first-place MVP, Cy Young or Rookie of the
// Year finish; the trailing group keeps MVP-1 from matching inside MVP-13.
var awardWinnerPattern = regexp.MustCompile(`(MVP-1|CYA-1|ROY-1)([A-Z]|$)`)

// ReportService lays out season tables: column selection, year filtering,
// league-leader emphasis and the team or league average comparison footer.
type ReportService struct {
	lines         statline.Repository
	teams         teamavg.Repository
	currentSeason int
}

func NewReportService(lines statline.Repository, teams teamavg.Repository, currentSeason int) *ReportService {
	return &ReportService{
		lines:         lines,
		teams:         teams,
		currentSeason: currentSeason,
	}
}

// SeasonReport builds the season table for one player's matched lines.
// Lines must belong to a single player; a mixed set fails with an
// AmbiguousPlayersError carrying the distinct candidates.
func (s *ReportService) SeasonReport(ctx context.Context, matches []statline.Line, kind statline.Kind, stats []string, yearToken string, mode CompareMode) (Report, error) {
	if len(matches) == 0 {
		return Report{}, fmt.Errorf("%w: no season lines", ErrNotFound)
	}

	if yearToken != "" {
		year, err := textnorm.ParseYear(yearToken)
		if err != nil {
			return Report{}, fmt.Errorf("%w: invalid year %q, use 2022 or 22", ErrInvalidInput, yearToken)
		}
		matches = linesForYear(matches, year)
		if len(matches) == 0 {
			return Report{}, fmt.Errorf("%w: no %s data for %d", ErrNotFound, kind, year)
		}
	}

	if names := distinctRawNames(matches); len(names) > 1 {
		return Report{}, &AmbiguousPlayersError{
			Kind:       kind,
			Candidates: groupPlayers(matches, kind, s.currentSeason, func(l statline.Line) string { return l.Player }),
		}
	}

	columns, err := s.reportColumns(ctx, kind, stats)
	if err != nil {
		return Report{}, err
	}

	var averages map[int]teamavg.Average
	if mode != CompareNone {
		averages, err = s.comparisonAverages(ctx, matches, kind, mode)
		if err != nil {
			return Report{}, err
		}
		if len(averages) > 0 {
			columns = filterComparisonColumns(columns, kind, sampleAverage(averages))
		}
	}

	leaders, err := s.leagueLeaders(ctx, matches, kind, columns)
	if err != nil {
		return Report{}, err
	}

	tradedYears := make(map[int]bool)
	tradedAllStar := make(map[int]bool)
	for _, line := range matches {
		if !line.MultiTeam() {
			continue
		}
		tradedYears[line.Year] = true
		if strings.Contains(line.Awards, "AS") {
			tradedAllStar[line.Year] = true
		}
	}

	report := Report{
		Header:  fmt.Sprintf("%s (%s)", matches[0].Player, strings.ToUpper(string(kind))),
		Columns: columns,
	}

	var historicalLines []statline.Line
	prevYear := 0
	for _, line := range matches {
		row := ReportRow{Cells: make([]ReportCell, len(columns))}
		for i, col := range columns {
			row.Cells[i] = ReportCell{
				Text: reportCellText(line, col.Key),
				Role: s.cellRole(line, col.Key, kind, mode, averages, leaders, tradedYears, tradedAllStar),
			}
		}

		if line.Year == s.currentSeason {
			report.Current = append(report.Current, row)
			continue
		}
		if len(report.Historical) > 0 && prevYear != 0 && line.Year-prevYear > 1 {
			row.GapBefore = gapMessage(prevYear+1, line.Year-1)
		}
		report.Historical = append(report.Historical, row)
		historicalLines = append(historicalLines, line)
		prevYear = line.Year
	}

	if len(report.Current) > 0 && len(report.Historical) > 0 {
		last := historicalLines[len(historicalLines)-1].Year
		if last < s.currentSeason-1 {
			report.CurrentGap = gapMessage(last+1, s.currentSeason-1)
		}
	}

	label := "Team Avg"
	if mode == CompareLeague {
		label = "League Avg"
	}

	report.Widths = s.columnWidths(report, columns, kind, mode, averages, label)

	if len(averages) > 0 {
		report.ComparisonLabel = label
		years := make([]int, 0, len(averages))
		for year := range averages {
			years = append(years, year)
		}
		sort.Ints(years)
		for _, year := range years {
			report.ComparisonRows = append(report.ComparisonRows, comparisonRow(averages[year], columns, kind, year, label))
		}
	}

	return report, nil
}

func (s *ReportService) reportColumns(ctx context.Context, kind statline.Kind, stats []string) ([]ReportColumn, error) {
	if len(stats) == 0 {
		if kind == statline.KindPitcher {
			return pitcherReportColumns, nil
		}
		return hitterReportColumns, nil
	}

	stored, err := s.lines.Columns(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("load %s columns: %w", kind, err)
	}
	known := make(map[string]bool, len(stored))
	for _, col := range stored {
		known[col] = true
	}

	columns := append([]ReportColumn(nil), metaReportColumns...)
	var rejected []string
	for _, token := range stats {
		key, statLabel := textnorm.NormalizeStatToken(token)
		if !known[key] {
			rejected = append(rejected, statLabel)
			continue
		}
		if cat := textnorm.Category(key); cat != textnorm.CategoryCommon && cat != kindCategory(kind) {
			rejected = append(rejected, statLabel)
			continue
		}
		columns = append(columns, ReportColumn{statLabel, key})
	}
	if len(columns) == len(metaReportColumns) {
		return nil, fmt.Errorf("%w: stats not available for %ss: %s", ErrInvalidInput, kind, strings.Join(rejected, ", "))
	}
	return columns, nil
}

func (s *ReportService) comparisonAverages(ctx context.Context, matches []statline.Line, kind statline.Kind, mode CompareMode) (map[int]teamavg.Average, error) {
	averages := make(map[int]teamavg.Average)
	for _, year := range distinctYears(matches) {
		team := teamavg.LeagueAverageTeam
		if mode == CompareTeam {
			rows := linesForYear(matches, year)
			if len(rows) == 0 || rows[0].Team == "" || rows[0].MultiTeam() {
				continue
			}
			team = textnorm.FullTeamName(rows[0].Team)
		}

		avg, ok, err := s.teams.Get(ctx, kind, year, team)
		if err != nil {
			return nil, fmt.Errorf("load %s average year=%d team=%s: %w", mode, year, team, err)
		}
		if ok {
			averages[year] = avg
		}
	}
	return averages, nil
}

func sampleAverage(averages map[int]teamavg.Average) teamavg.Average {
	for _, avg := range averages {
		return avg
	}
	return teamavg.Average{}
}

func filterComparisonColumns(columns []ReportColumn, kind statline.Kind, sample teamavg.Average) []ReportColumn {
	keep := pitcherComparisonStats
	if kind == statline.KindHitter {
		keep = hitterComparisonStats
	}

	out := make([]ReportColumn, 0, len(columns))
	for _, col := range columns {
		if isMetaKey(col.Key) {
			out = append(out, col)
			continue
		}
		if !keep[col.Key] {
			continue
		}
		teamKey := textnorm.TeamStatKey(kindCategory(kind), col.Key)
		if teamKey == "" {
			continue
		}
		if _, ok := sample.Stats[teamKey]; !ok {
			continue
		}
		out = append(out, col)
	}
	return out
}

// leaderEntry records the best value in one league for one stat and year.
type leaderEntry struct {
	player string
	value  float64
	found  bool
}

func (s *ReportService) leagueLeaders(ctx context.Context, matches []statline.Line, kind statline.Kind, columns []ReportColumn) (map[int]map[string]map[string]leaderEntry, error) {
	rate := pitcherRateStats
	qualKey, qualThreshold := "ip", float64(pitcherQualInnings)
	if kind == statline.KindHitter {
		rate = hitterRateStats
		qualKey, qualThreshold = "pa", float64(hitterQualPlateAppearances)
	}

	out := make(map[int]map[string]map[string]leaderEntry)
	for _, year := range distinctYears(matches) {
		rows, err := s.lines.ListByYear(ctx, kind, year)
		if err != nil {
			return nil, fmt.Errorf("load %d %s lines: %w", year, kind, err)
		}

		byStat := make(map[string]map[string]leaderEntry)
		for _, col := range columns {
			if isMetaKey(col.Key) || col.Key == "pos" {
				continue
			}

			byLeague := make(map[string]leaderEntry, 2)
			for _, league := range []string{"NL", "AL"} {
				var best leaderEntry
				for _, row := range rows {
					if row.League != league {
						continue
					}
					val, ok := row.Stat(col.Key).Float()
					if !ok {
						continue
					}
					if rate[col.Key] {
						qual, ok := row.Stat(qualKey).Float()
						if !ok || qual < qualThreshold {
							continue
						}
					}
					if !best.found || statBeats(kind, col.Key, val, best.value) {
						best = leaderEntry{player: row.Player, value: val, found: true}
					}
				}
				byLeague[league] = best
			}
			byStat[col.Key] = byLeague
		}
		out[year] = byStat
	}
	return out, nil
}

// statBeats reports whether a beats b for a stat. Lower wins only for the
// pitching run-prevention rates.
func statBeats(kind statline.Kind, key string, a, b float64) bool {
	if kind == statline.KindPitcher && lowerIsBetterStats[key] {
		return a < b
	}
	return a > b
}

func (s *ReportService) cellRole(line statline.Line, key string, kind statline.Kind, mode CompareMode, averages map[int]teamavg.Average, leaders map[int]map[string]map[string]leaderEntry, tradedYears, tradedAllStar map[int]bool) style.Role {
	if key == "year" {
		return yearRole(line, tradedYears, tradedAllStar)
	}

	if mode != CompareNone {
		if avg, ok := averages[line.Year]; ok {
			return comparisonRole(line, key, kind, avg)
		}
		// Years without an average row fall back to leader emphasis.
	}

	return leaderRole(line, key, kind, leaders)
}

func yearRole(line statline.Line, tradedYears, tradedAllStar map[int]bool) style.Role {
	awardWinner := line.Awards != "" && awardWinnerPattern.MatchString(line.Awards)
	allStar := strings.Contains(line.Awards, "AS")
	multi := line.MultiTeam()

	switch {
	case awardWinner:
		return style.RoleAward
	case allStar, !multi && tradedAllStar[line.Year]:
		return style.RoleAllStar
	case !multi && tradedYears[line.Year] && !tradedAllStar[line.Year]:
		return style.RoleTraded
	}
	return ""
}

func comparisonRole(line statline.Line, key string, kind statline.Kind, avg teamavg.Average) style.Role {
	teamKey := textnorm.TeamStatKey(kindCategory(kind), key)
	if teamKey == "" {
		return ""
	}
	avgVal, ok := avg.Stat(teamKey).Float()
	if !ok {
		return ""
	}
	playerVal, ok := line.Stat(key).Float()
	if !ok {
		return ""
	}

	if lowerIsBetterStats[key] {
		playerVal, avgVal = -playerVal, -avgVal
	}
	switch {
	case playerVal > avgVal:
		return style.RoleBetter
	case playerVal < avgVal:
		return style.RoleWorse
	}
	return ""
}

func leaderRole(line statline.Line, key string, kind statline.Kind, leaders map[int]map[string]map[string]leaderEntry) style.Role {
	byStat, ok := leaders[line.Year]
	if !ok {
		return ""
	}
	byLeague, ok := byStat[key]
	if !ok {
		return ""
	}

	own, ok := byLeague[line.League]
	if !ok || !own.found || own.player != line.Player {
		return ""
	}

	other := byLeague["AL"]
	if line.League == "AL" {
		other = byLeague["NL"]
	}

	leadsMLB := false
	if playerVal, ok := line.Stat(key).Float(); ok {
		if other.found {
			leadsMLB = statBeats(kind, key, playerVal, other.value)
		} else {
			leadsMLB = true
		}
	}

	if leadsMLB {
		return style.RoleMLBLeader
	}
	return style.RoleLeagueLeader
}

func (s *ReportService) columnWidths(report Report, columns []ReportColumn, kind statline.Kind, mode CompareMode, averages map[int]teamavg.Average, label string) []int {
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col.Label)
	}
	for _, rows := range [][]ReportRow{report.Historical, report.Current} {
		for _, row := range rows {
			for i, cell := range row.Cells {
				if len(cell.Text) > widths[i] {
					widths[i] = len(cell.Text)
				}
			}
		}
	}

	if mode != CompareNone && len(averages) > 0 {
		for year := range averages {
			if w := len(fmt.Sprintf("%d %s", year, label)); w > widths[0] {
				widths[0] = w
			}
		}
		for i, col := range columns {
			if isMetaKey(col.Key) {
				continue
			}
			teamKey := textnorm.TeamStatKey(kindCategory(kind), col.Key)
			if teamKey == "" {
				continue
			}
			for _, avg := range averages {
				if w := len(avg.Stat(teamKey).Display()); w > widths[i] {
					widths[i] = w
				}
			}
		}
	}
	return widths
}

func comparisonRow(avg teamavg.Average, columns []ReportColumn, kind statline.Kind, year int, label string) []string {
	row := make([]string, len(columns))
	for i, col := range columns {
		switch col.Key {
		case "year":
			row[i] = fmt.Sprintf("%d %s", year, label)
		case "age", "team", "lg", "awards":
			row[i] = ""
		default:
			if teamKey := textnorm.TeamStatKey(kindCategory(kind), col.Key); teamKey != "" {
				row[i] = avg.Stat(teamKey).Display()
			}
		}
	}
	return row
}

func reportCellText(line statline.Line, key string) string {
	switch key {
	case "awards":
		return textnorm.ParseAwards(line.Awards)
	case "pos":
		return textnorm.ParsePositions(line.Position)
	// The name columns live on the Line itself, not in the stats map.
	case "player":
		return line.Player
	case "player_additional":
		return line.ExternalID
	default:
		return line.Stat(key).Display()
	}
}

func gapMessage(from, to int) string {
	years := make([]string, 0, to-from+1)
	for y := from; y <= to; y++ {
		years = append(years, strconv.Itoa(y))
	}
	return fmt.Sprintf("[Did not play in %s]", strings.Join(years, ", "))
}

func isMetaKey(key string) bool {
	switch key {
	case "year", "age", "team", "lg", "awards":
		return true
	}
	return false
}

func kindCategory(kind statline.Kind) textnorm.StatCategory {
	if kind == statline.KindPitcher {
		return textnorm.CategoryPitcher
	}
	return textnorm.CategoryHitter
}
