package usecase

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/dugout-cli/dugout/internal/domain/statline"
	"github.com/dugout-cli/dugout/internal/platform/textnorm"
)

// ResolverService turns free-form name queries into season lines. Lookup runs
// in tiers: a LIKE scan against stored names first, then an accent-folded
// rescan so queries typed without diacritics still land, and finally
// substring suggestions for the caller to confirm interactively.
type ResolverService struct {
	lines         statline.Repository
	currentSeason int
	isTwoWay      func(name string) bool
}

func NewResolverService(lines statline.Repository, currentSeason int, isTwoWay func(string) bool) *ResolverService {
	if isTwoWay == nil {
		isTwoWay = func(string) bool { return false }
	}
	return &ResolverService{
		lines:         lines,
		currentSeason: currentSeason,
		isTwoWay:      isTwoWay,
	}
}

// Resolution holds every season line a query matched, per record set. A
// player can legitimately appear in both sets.
type Resolution struct {
	Query   string
	Pitcher []statline.Line
	Hitter  []statline.Line
}

func (r Resolution) Empty() bool {
	return len(r.Pitcher) == 0 && len(r.Hitter) == 0
}

// Player is a query narrowed to one person in one record set.
type Player struct {
	Name  string
	Kind  statline.Kind
	Lines []statline.Line
}

// Candidate is one distinct player behind an ambiguous query.
type Candidate struct {
	Name  string
	Kind  statline.Kind
	Teams string
	Lines []statline.Line
}

// Suggestion is a near-miss name offered when a query matched nothing.
type Suggestion struct {
	Name string
	Kind statline.Kind
}

// AmbiguousPlayersError reports a query that matched more than one distinct
// player within a record set.
type AmbiguousPlayersError struct {
	Query      string
	Kind       statline.Kind
	Candidates []Candidate
}

func (e *AmbiguousPlayersError) Error() string {
	if e.Query == "" {
		return fmt.Sprintf("multiple %ss found", e.Kind)
	}
	return fmt.Sprintf("multiple %ss found matching %q", e.Kind, e.Query)
}

func (e *AmbiguousPlayersError) Unwrap() error { return ErrAmbiguous }

// Find runs the tiered lookup for a query against both record sets.
func (s *ResolverService) Find(ctx context.Context, query string) (Resolution, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Resolution{}, fmt.Errorf("%w: player name is required", ErrInvalidInput)
	}

	pattern := likePattern(query)
	pitchers, err := s.lines.FindByPattern(ctx, statline.KindPitcher, pattern)
	if err != nil {
		return Resolution{}, fmt.Errorf("find pitchers: %w", err)
	}
	hitters, err := s.lines.FindByPattern(ctx, statline.KindHitter, pattern)
	if err != nil {
		return Resolution{}, fmt.Errorf("find hitters: %w", err)
	}

	if len(pitchers) == 0 && len(hitters) == 0 {
		pitchers, hitters, err = s.foldedScan(ctx, query)
		if err != nil {
			return Resolution{}, err
		}
	}

	return Resolution{Query: query, Pitcher: pitchers, Hitter: hitters}, nil
}

// likePattern builds the storage LIKE pattern for a query. Dot notation
// ("m.trout") anchors the first-name prefix; a plain query matches anywhere
// in the stored name.
func likePattern(query string) string {
	first, last, hasFirst := splitDotQuery(query)
	if !hasFirst {
		return "%" + strings.ToLower(last) + "%"
	}
	return strings.ToLower(first) + "%" + strings.ToLower(last) + "%"
}

func splitDotQuery(query string) (first, last string, ok bool) {
	i := strings.Index(query, ".")
	if i < 0 {
		return "", query, false
	}
	return query[:i], query[i+1:], true
}

// foldedScan rescans both record sets comparing accent-folded names, so
// "jimenez" finds Jiménez.
func (s *ResolverService) foldedScan(ctx context.Context, query string) (pitchers, hitters []statline.Line, err error) {
	first, last, hasFirst := splitDotQuery(query)
	firstFold := textnorm.FoldName(first)
	lastFold := textnorm.FoldName(last)

	match := func(name string) bool {
		folded := textnorm.FoldName(name)
		if !hasFirst {
			return strings.Contains(folded, lastFold)
		}
		return strings.HasPrefix(folded, firstFold) && strings.Contains(folded, lastFold)
	}

	for _, kind := range []statline.Kind{statline.KindPitcher, statline.KindHitter} {
		all, err := s.lines.FindByPattern(ctx, kind, "%")
		if err != nil {
			return nil, nil, fmt.Errorf("scan %s lines: %w", kind, err)
		}
		var matched []statline.Line
		for _, line := range all {
			if match(line.Player) {
				matched = append(matched, line)
			}
		}
		if kind == statline.KindPitcher {
			pitchers = matched
		} else {
			hitters = matched
		}
	}
	return pitchers, hitters, nil
}

// Suggest lists every distinct player whose folded name contains the folded
// query, pitchers first. Used for the did-you-mean prompt after both lookup
// tiers come up empty.
func (s *ResolverService) Suggest(ctx context.Context, query string) ([]Suggestion, error) {
	folded := textnorm.FoldName(strings.TrimSpace(query))

	var out []Suggestion
	for _, kind := range []statline.Kind{statline.KindPitcher, statline.KindHitter} {
		names, err := s.lines.DistinctNames(ctx, kind)
		if err != nil {
			return nil, fmt.Errorf("list %s names: %w", kind, err)
		}
		for _, name := range names {
			if strings.Contains(textnorm.FoldName(name), folded) {
				out = append(out, Suggestion{Name: name, Kind: kind})
			}
		}
	}
	return out, nil
}

// Disposition says what the caller should do with a resolution.
type Disposition int

const (
	// DispositionRender means the query narrowed to one player.
	DispositionRender Disposition = iota
	// DispositionChoose means distinct players share a display name and the
	// caller must pick one by number.
	DispositionChoose
	// DispositionList means several distinct players matched; list them and
	// let the caller refine the query.
	DispositionList
)

// Assessment is the disambiguation verdict for a resolution.
type Assessment struct {
	Disposition Disposition
	// Choices carries the numbered options for DispositionChoose, pitchers
	// before hitters, each sorted by name.
	Choices []Candidate
	// Pitchers and Hitters carry the grouped matches for DispositionList.
	Pitchers []Candidate
	Hitters  []Candidate
}

// Assess decides whether a resolution is renderable as-is. Appearing in both
// record sets is not by itself ambiguous; a name shared by two different
// people (distinct external IDs) is.
func (s *ResolverService) Assess(res Resolution) Assessment {
	pitcherNames, pitcherIDs := distinctPlayers(res.Pitcher)
	hitterNames, hitterIDs := distinctPlayers(res.Hitter)

	samePerson := intersects(pitcherIDs, hitterIDs)
	sharedName := false
	for name := range pitcherNames {
		if hitterNames[name] {
			sharedName = true
			break
		}
	}

	totalUnique := len(pitcherNames)
	for name := range hitterNames {
		if !pitcherNames[name] {
			totalUnique++
		}
	}

	switch {
	case sharedName && !samePerson:
		choices := s.groupByStrippedName(res.Pitcher, statline.KindPitcher)
		choices = append(choices, s.groupByStrippedName(res.Hitter, statline.KindHitter)...)
		return Assessment{Disposition: DispositionChoose, Choices: choices}
	case totalUnique > 1:
		return Assessment{
			Disposition: DispositionList,
			Pitchers:    s.Players(res.Pitcher, statline.KindPitcher),
			Hitters:     s.Players(res.Hitter, statline.KindHitter),
		}
	default:
		return Assessment{Disposition: DispositionRender}
	}
}

// ResolveOne narrows a query to a single player in a single record set, for
// the modes that can only handle one. A genuine two-way player cannot be
// narrowed and yields ErrTwoWayUnsupported; a player who shows up in both
// sets from a few cameo innings resolves to the set with more games.
func (s *ResolverService) ResolveOne(ctx context.Context, query string) (Player, error) {
	res, err := s.Find(ctx, query)
	if err != nil {
		return Player{}, err
	}
	return s.Narrow(res)
}

// Narrow applies the two-way check and the games tiebreak to a resolution.
func (s *ResolverService) Narrow(res Resolution) (Player, error) {
	if res.Empty() {
		return Player{}, fmt.Errorf("%w: no players found matching %q", ErrNotFound, res.Query)
	}

	if len(res.Pitcher) > 0 && len(res.Hitter) > 0 {
		name := textnorm.StripMarkers(res.Pitcher[0].Player)
		if s.isTwoWay(name) {
			return Player{}, fmt.Errorf("%w: %s", ErrTwoWayUnsupported, name)
		}
		if totalGames(res.Pitcher) >= totalGames(res.Hitter) {
			return Player{Name: res.Pitcher[0].Player, Kind: statline.KindPitcher, Lines: res.Pitcher}, nil
		}
		return Player{Name: res.Hitter[0].Player, Kind: statline.KindHitter, Lines: res.Hitter}, nil
	}

	if len(res.Pitcher) > 0 {
		return Player{Name: res.Pitcher[0].Player, Kind: statline.KindPitcher, Lines: res.Pitcher}, nil
	}
	return Player{Name: res.Hitter[0].Player, Kind: statline.KindHitter, Lines: res.Hitter}, nil
}

// TwoWay reports whether a stored player name belongs to a configured
// two-way player.
func (s *ResolverService) TwoWay(name string) bool {
	return s.isTwoWay(textnorm.StripMarkers(name))
}

// Players groups season lines by stored name, sorted, with a team summary
// per player.
func (s *ResolverService) Players(lines []statline.Line, kind statline.Kind) []Candidate {
	return groupPlayers(lines, kind, s.currentSeason, func(l statline.Line) string { return l.Player })
}

// TeamInfo summarizes the teams a player suited up for, preferring the
// current season and falling back to the most recent one. Combined-stint
// aggregate rows are skipped unless they are all that is left.
func (s *ResolverService) TeamInfo(lines []statline.Line) string {
	return teamInfo(lines, s.currentSeason)
}

func (s *ResolverService) groupByStrippedName(lines []statline.Line, kind statline.Kind) []Candidate {
	return groupPlayers(lines, kind, s.currentSeason, func(l statline.Line) string {
		return textnorm.StripMarkers(l.Player)
	})
}

func groupPlayers(lines []statline.Line, kind statline.Kind, currentSeason int, keyFn func(statline.Line) string) []Candidate {
	groups := make(map[string][]statline.Line)
	for _, line := range lines {
		key := keyFn(line)
		groups[key] = append(groups[key], line)
	}

	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]Candidate, 0, len(names))
	for _, name := range names {
		out = append(out, Candidate{
			Name:  name,
			Kind:  kind,
			Teams: teamInfo(groups[name], currentSeason),
			Lines: groups[name],
		})
	}
	return out
}

func teamInfo(lines []statline.Line, currentSeason int) string {
	if len(lines) == 0 {
		return ""
	}

	rows := linesForYear(lines, currentSeason)
	if len(rows) == 0 {
		recent := 0
		for _, line := range lines {
			if line.Year > recent {
				recent = line.Year
			}
		}
		rows = linesForYear(lines, recent)
	}

	teams := make([]string, 0, len(rows))
	for _, line := range rows {
		if !line.MultiTeam() {
			teams = append(teams, line.Team)
		}
	}
	if len(teams) == 0 {
		teams = []string{rows[0].Team}
	}
	return strings.Join(teams, ", ")
}

func distinctPlayers(lines []statline.Line) (names map[string]bool, ids map[string]bool) {
	names = make(map[string]bool, len(lines))
	ids = make(map[string]bool, len(lines))
	for _, line := range lines {
		names[textnorm.StripMarkers(line.Player)] = true
		if line.ExternalID != "" {
			ids[line.ExternalID] = true
		}
	}
	return names, ids
}

func intersects(a, b map[string]bool) bool {
	for k := range a {
		if b[k] {
			return true
		}
	}
	return false
}

func distinctRawNames(lines []statline.Line) []string {
	seen := make(map[string]bool, len(lines))
	var names []string
	for _, line := range lines {
		if !seen[line.Player] {
			seen[line.Player] = true
			names = append(names, line.Player)
		}
	}
	sort.Strings(names)
	return names
}

func linesForYear(lines []statline.Line, year int) []statline.Line {
	var out []statline.Line
	for _, line := range lines {
		if line.Year == year {
			out = append(out, line)
		}
	}
	return out
}

func distinctYears(lines []statline.Line) []int {
	seen := make(map[int]bool, len(lines))
	var years []int
	for _, line := range lines {
		if line.Year != 0 && !seen[line.Year] {
			seen[line.Year] = true
			years = append(years, line.Year)
		}
	}
	sort.Ints(years)
	return years
}

func totalGames(lines []statline.Line) int {
	total := 0
	for _, line := range lines {
		total += line.Games()
	}
	return total
}
