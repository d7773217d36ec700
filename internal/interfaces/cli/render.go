package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/dugout-cli/dugout/internal/domain/matchup"
	"github.com/dugout-cli/dugout/internal/domain/platoon"
	"github.com/dugout-cli/dugout/internal/domain/statline"
	"github.com/dugout-cli/dugout/internal/platform/style"
	"github.com/dugout-cli/dugout/internal/usecase"
)

// Renderer writes the lookup tables. Cells are padded to their column width
// before styling so escape sequences never skew the layout.
type Renderer struct {
	out    io.Writer
	styles style.Styles
}

func NewRenderer(out io.Writer, styles style.Styles) *Renderer {
	return &Renderer{out: out, styles: styles}
}

func (r *Renderer) printf(format string, args ...any) {
	fmt.Fprintf(r.out, format, args...)
}

func allDigits(s string) bool {
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return s != ""
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// Report prints a season table: header, historical rows with gap markers,
// the current-season block set apart by a blank line, and the optional
// team or league average footer.
func (r *Renderer) Report(rep usecase.Report) {
	headerLine := r.reportHeaderLine(rep)

	r.printf("\n%s\n", rep.Header)
	sepWidth := len(rep.Header)
	if len(headerLine) > sepWidth {
		sepWidth = len(headerLine)
	}
	r.printf("%s\n", strings.Repeat("=", sepWidth))
	r.printf("%s\n", headerLine)

	for _, row := range rep.Historical {
		if row.GapBefore != "" {
			r.printf("%s\n", row.GapBefore)
		}
		r.reportRow(row, rep.Widths)
	}

	if len(rep.Current) > 0 && len(rep.Historical) > 0 {
		if rep.CurrentGap != "" {
			r.printf("%s\n", rep.CurrentGap)
		}
		r.printf("\n")
	}
	for _, row := range rep.Current {
		r.reportRow(row, rep.Widths)
	}

	if rep.ComparisonLabel != "" && len(rep.ComparisonRows) > 0 {
		r.printf("\n")
		width := 0
		for _, w := range rep.Widths {
			width += w
		}
		width += (len(rep.Widths) - 1) * 2
		r.printf("%s\n", strings.Repeat("-", width))
		for _, row := range rep.ComparisonRows {
			parts := make([]string, len(row))
			for i, cell := range row {
				parts[i] = pad(cell, rep.Widths[i])
			}
			r.printf("%s\n", strings.Join(parts, "  "))
		}
	}
}

func (r *Renderer) reportHeaderLine(rep usecase.Report) string {
	parts := make([]string, len(rep.Columns))
	for i, col := range rep.Columns {
		parts[i] = pad(col.Label, rep.Widths[i])
	}
	return strings.Join(parts, "  ")
}

func (r *Renderer) reportRow(row usecase.ReportRow, widths []int) {
	parts := make([]string, len(row.Cells))
	for i, cell := range row.Cells {
		padded := pad(cell.Text, widths[i])
		if cell.Role != "" {
			padded = r.styles.Apply(cell.Role, padded)
		}
		parts[i] = padded
	}
	r.printf("%s\n", strings.Join(parts, "  "))
}

// Comparison prints a two-player head-to-head table. Values are styled after
// padding is computed from the plain text, keeping the columns aligned.
func (r *Renderer) Comparison(cmp usecase.Comparison) {
	r.printf("\n%s\n", cmp.Title)
	r.printf("%s\n", strings.Repeat("=", 80))

	statWidth := len("Stat")
	for _, row := range cmp.Rows {
		if len(row.Label) > statWidth {
			statWidth = len(row.Label)
		}
	}
	leftWidth := len(cmp.LeftName)
	rightWidth := len(cmp.RightName)

	header := fmt.Sprintf("%s  %s  %s", pad("Stat", statWidth), pad(cmp.LeftName, leftWidth), pad(cmp.RightName, rightWidth))
	r.printf("%s\n", header)
	r.printf("%s\n", strings.Repeat("-", len(header)))

	for _, row := range cmp.Rows {
		r.printf("%s  %s  %s\n",
			pad(row.Label, statWidth),
			r.compareCell(row.Left, leftWidth),
			r.compareCell(row.Right, rightWidth))
	}
	r.printf("\n")
}

func (r *Renderer) compareCell(cell usecase.CompareCell, width int) string {
	text := cell.Text
	if cell.Role != "" {
		text = r.styles.Apply(cell.Role, text)
	}
	if fill := width - len(cell.Text); fill > 0 {
		text += strings.Repeat(" ", fill)
	}
	return text
}

var matchupTableColumns = []struct {
	label string
	value func(matchup.Stat) string
}{
	{"Year", func(s matchup.Stat) string { return s.Year }},
	{"G", func(s matchup.Stat) string { return fmt.Sprintf("%d", s.Games) }},
	{"PA", func(s matchup.Stat) string { return fmt.Sprintf("%d", s.PA) }},
	{"AB", func(s matchup.Stat) string { return fmt.Sprintf("%d", s.AB) }},
	{"H", func(s matchup.Stat) string { return fmt.Sprintf("%d", s.H) }},
	{"2B", func(s matchup.Stat) string { return fmt.Sprintf("%d", s.Doubles) }},
	{"3B", func(s matchup.Stat) string { return fmt.Sprintf("%d", s.Triples) }},
	{"HR", func(s matchup.Stat) string { return fmt.Sprintf("%d", s.HR) }},
	{"RBI", func(s matchup.Stat) string { return fmt.Sprintf("%d", s.RBI) }},
	{"BB", func(s matchup.Stat) string { return fmt.Sprintf("%d", s.BB) }},
	{"SO", func(s matchup.Stat) string { return fmt.Sprintf("%d", s.SO) }},
	{"HBP", func(s matchup.Stat) string { return fmt.Sprintf("%d", s.HBP) }},
	{"IBB", func(s matchup.Stat) string { return fmt.Sprintf("%d", s.IBB) }},
	{"AVG", func(s matchup.Stat) string { return rate(s.BA) }},
	{"OBP", func(s matchup.Stat) string { return rate(s.OBP) }},
	{"SLG", func(s matchup.Stat) string { return rate(s.SLG) }},
	{"OPS", func(s matchup.Stat) string { return rate(s.OPS) }},
}

// rate renders a batting-average style value; a zero value prints as ".000".
func rate(v float64) string {
	if v == 0 {
		return ".000"
	}
	return fmt.Sprintf("%.3f", v)
}

// Matchup prints a batter-vs-pitcher series. "all" shows the year-by-year
// table, a year shows that season as a label/value list, no token shows the
// career totals.
func (r *Renderer) Matchup(res usecase.MatchupResult, yearToken string) error {
	var display []matchup.Stat
	var title string

	switch {
	case strings.EqualFold(yearToken, "all"):
		for _, s := range res.Stats {
			if !s.Career() {
				display = append(display, s)
			}
		}
		title = fmt.Sprintf("%s vs %s (Career Breakdown)", res.BatterName, res.PitcherName)
	case yearToken != "":
		yearStr := yearToken
		if len(yearToken) == 2 && allDigits(yearToken) {
			yearStr = "20" + yearToken
		}
		for _, s := range res.Stats {
			if s.Year == yearStr {
				display = append(display, s)
			}
		}
		if len(display) == 0 {
			return fmt.Errorf("%w: no matchup data found for %s", usecase.ErrNotFound, yearStr)
		}
		title = fmt.Sprintf("%s vs %s (%s)", res.BatterName, res.PitcherName, yearStr)
	default:
		for _, s := range res.Stats {
			if s.Career() {
				display = append(display, s)
			}
		}
		title = fmt.Sprintf("%s vs %s (Career)", res.BatterName, res.PitcherName)
	}
	if len(display) == 0 {
		return fmt.Errorf("%w: no matchup data found", usecase.ErrNotFound)
	}

	r.printf("\n%s\n", title)
	r.printf("%s\n", strings.Repeat("=", 80))

	if strings.EqualFold(yearToken, "all") {
		r.matchupTable(display)
	} else {
		r.matchupList(display[0])
	}
	r.printf("\n")
	return nil
}

func (r *Renderer) matchupTable(stats []matchup.Stat) {
	widths := make([]int, len(matchupTableColumns))
	for i, col := range matchupTableColumns {
		widths[i] = len(col.label)
		for _, s := range stats {
			if w := len(col.value(s)); w > widths[i] {
				widths[i] = w
			}
		}
	}

	parts := make([]string, len(matchupTableColumns))
	for i, col := range matchupTableColumns {
		parts[i] = pad(col.label, widths[i])
	}
	r.printf("%s\n", strings.Join(parts, "  "))

	for _, s := range stats {
		for i, col := range matchupTableColumns {
			parts[i] = pad(col.value(s), widths[i])
		}
		r.printf("%s\n", strings.Join(parts, "  "))
	}
}

func (r *Renderer) matchupList(s matchup.Stat) {
	rows := []struct {
		label string
		value string
	}{
		{"Games", fmt.Sprintf("%d", s.Games)},
		{"PA", fmt.Sprintf("%d", s.PA)},
		{"AB", fmt.Sprintf("%d", s.AB)},
		{"H", fmt.Sprintf("%d", s.H)},
		{"2B", fmt.Sprintf("%d", s.Doubles)},
		{"3B", fmt.Sprintf("%d", s.Triples)},
		{"HR", fmt.Sprintf("%d", s.HR)},
		{"RBI", fmt.Sprintf("%d", s.RBI)},
		{"BB", fmt.Sprintf("%d", s.BB)},
		{"HBP", fmt.Sprintf("%d", s.HBP)},
		{"SO", fmt.Sprintf("%d", s.SO)},
		{"IBB", fmt.Sprintf("%d", s.IBB)},
		{"AVG", rate(s.BA)},
		{"OBP", rate(s.OBP)},
		{"SLG", rate(s.SLG)},
		{"OPS", rate(s.OPS)},
	}
	labelWidth := 0
	for _, row := range rows {
		if len(row.label) > labelWidth {
			labelWidth = len(row.label)
		}
	}
	for _, row := range rows {
		r.printf("%s  %s\n", pad(row.label, labelWidth), row.value)
	}
}

type platoonColumn struct {
	label string
	key   string
}

// platoonSelectedColumns narrows the year-by-year table to the few stats the
// split payload carries when the user asked for specific ones.
func platoonSelectedColumns(kind statline.Kind, stats []string) []platoonColumn {
	var out []platoonColumn
	for _, stat := range stats {
		switch key := strings.ToLower(stat); key {
		case "avg", "ba":
			out = append(out, platoonColumn{"AVG", "ba"})
		case "ops":
			out = append(out, platoonColumn{"OPS", "ops"})
		case "hr":
			out = append(out, platoonColumn{"HR", "hr"})
		case "so":
			if kind == statline.KindPitcher {
				out = append(out, platoonColumn{"SO", "so"})
			}
		case "whip":
			if kind == statline.KindPitcher {
				out = append(out, platoonColumn{"WHIP", "whip"})
			}
		case "ip":
			if kind == statline.KindPitcher {
				out = append(out, platoonColumn{"IP", "ip"})
			}
		case "rbi":
			if kind == statline.KindHitter {
				out = append(out, platoonColumn{"RBI", "rbi"})
			}
		}
	}
	return out
}

func platoonYearlyColumns(kind statline.Kind, stats []string) []platoonColumn {
	if len(stats) > 0 {
		return append([]platoonColumn{{"Year", "year"}, {"Split", "split"}}, platoonSelectedColumns(kind, stats)...)
	}
	if kind == statline.KindPitcher {
		return []platoonColumn{
			{"Year", "year"}, {"Split", "split"}, {"PA", "pa"}, {"AB", "ab"},
			{"H", "h"}, {"2B", "doubles"}, {"3B", "triples"}, {"HR", "hr"},
			{"BB", "bb"}, {"SO", "so"}, {"AVG", "ba"}, {"OBP", "obp"},
			{"SLG", "slg"}, {"OPS", "ops"}, {"IP", "ip"},
		}
	}
	return []platoonColumn{
		{"Year", "year"}, {"Split", "split"}, {"PA", "pa"}, {"AB", "ab"},
		{"H", "h"}, {"2B", "doubles"}, {"3B", "triples"}, {"HR", "hr"},
		{"RBI", "rbi"}, {"BB", "bb"}, {"SO", "so"}, {"AVG", "ba"},
		{"OBP", "obp"}, {"SLG", "slg"}, {"OPS", "ops"},
	}
}

func platoonSingleColumns(kind statline.Kind, stats []string) []platoonColumn {
	if len(stats) > 0 {
		columns := []platoonColumn{{"Split", "split"}}
		for _, stat := range stats {
			switch key := strings.ToLower(stat); key {
			case "pa", "bf":
				columns = append(columns, platoonColumn{"PA", "pa"})
			case "ab":
				columns = append(columns, platoonColumn{"AB", "ab"})
			case "h":
				columns = append(columns, platoonColumn{"H", "h"})
			case "2b", "doubles":
				columns = append(columns, platoonColumn{"2B", "doubles"})
			case "3b", "triples":
				columns = append(columns, platoonColumn{"3B", "triples"})
			case "hr":
				columns = append(columns, platoonColumn{"HR", "hr"})
			case "rbi":
				if kind == statline.KindHitter {
					columns = append(columns, platoonColumn{"RBI", "rbi"})
				}
			case "bb":
				columns = append(columns, platoonColumn{"BB", "bb"})
			case "so":
				columns = append(columns, platoonColumn{"SO", "so"})
			case "ba", "avg":
				columns = append(columns, platoonColumn{"AVG", "ba"})
			case "obp":
				columns = append(columns, platoonColumn{"OBP", "obp"})
			case "slg":
				columns = append(columns, platoonColumn{"SLG", "slg"})
			case "ops":
				columns = append(columns, platoonColumn{"OPS", "ops"})
			case "ip":
				if kind == statline.KindPitcher {
					columns = append(columns, platoonColumn{"IP", "ip"})
				}
			case "whip":
				if kind == statline.KindPitcher {
					columns = append(columns, platoonColumn{"WHIP", "whip"})
				}
			case "era":
				if kind == statline.KindPitcher {
					columns = append(columns, platoonColumn{"ERA", "era"})
				}
			case "k/9", "so/9", "k9", "so9":
				if kind == statline.KindPitcher {
					columns = append(columns, platoonColumn{"K/9", "k9"})
				}
			case "bb/9", "bb9":
				if kind == statline.KindPitcher {
					columns = append(columns, platoonColumn{"BB/9", "bb9"})
				}
			}
		}
		return columns
	}
	if kind == statline.KindPitcher {
		return []platoonColumn{
			{"Split", "split"}, {"PA", "pa"}, {"AB", "ab"}, {"H", "h"},
			{"2B", "doubles"}, {"3B", "triples"}, {"HR", "hr"}, {"BB", "bb"},
			{"SO", "so"}, {"AVG", "ba"}, {"OBP", "obp"}, {"SLG", "slg"},
			{"OPS", "ops"}, {"IP", "ip"},
		}
	}
	return []platoonColumn{
		{"Split", "split"}, {"PA", "pa"}, {"AB", "ab"}, {"H", "h"},
		{"2B", "doubles"}, {"3B", "triples"}, {"HR", "hr"}, {"RBI", "rbi"},
		{"BB", "bb"}, {"SO", "so"}, {"AVG", "ba"}, {"OBP", "obp"},
		{"SLG", "slg"}, {"OPS", "ops"},
	}
}

func platoonValue(s platoon.Split, key string) string {
	switch key {
	case "pa":
		return fmt.Sprintf("%d", s.PA)
	case "ab":
		return fmt.Sprintf("%d", s.AB)
	case "h":
		return fmt.Sprintf("%d", s.H)
	case "doubles":
		return fmt.Sprintf("%d", s.Doubles)
	case "triples":
		return fmt.Sprintf("%d", s.Triples)
	case "hr":
		return fmt.Sprintf("%d", s.HR)
	case "rbi":
		return fmt.Sprintf("%d", s.RBI)
	case "bb":
		return fmt.Sprintf("%d", s.BB)
	case "so":
		return fmt.Sprintf("%d", s.SO)
	case "ba":
		return fmt.Sprintf("%.3f", s.BA)
	case "obp":
		return fmt.Sprintf("%.3f", s.OBP)
	case "slg":
		return fmt.Sprintf("%.3f", s.SLG)
	case "ops":
		return fmt.Sprintf("%.3f", s.OPS)
	case "era":
		return fmt.Sprintf("%.3f", s.ERA)
	case "whip":
		return fmt.Sprintf("%.3f", s.WHIP)
	case "k9":
		return fmt.Sprintf("%.3f", s.K9)
	case "bb9":
		return fmt.Sprintf("%.3f", s.BB9)
	case "ip":
		if s.IP == "" {
			return "0"
		}
		return s.IP
	default:
		return ""
	}
}

// platoonColumnWidth mirrors the single-view layout: the split label gets a
// wide column, rate stats a medium one, RBI a narrow one.
func platoonColumnWidth(key string) int {
	switch key {
	case "split":
		return 15
	case "ba", "obp", "slg", "ops", "whip", "era", "k9", "bb9", "ip":
		return 7
	case "rbi":
		return 5
	default:
		return 6
	}
}

// Platoon prints handedness splits: the all-years view as a compact table
// with paired left/right rows per year, otherwise a two-row single view.
func (r *Renderer) Platoon(res usecase.PlatoonResult, stats []string) {
	if res.AllYears {
		r.platoonYearly(res, stats)
		return
	}
	r.platoonSingle(res, stats)
}

func (r *Renderer) platoonYearly(res usecase.PlatoonResult, stats []string) {
	r.printf("\n%s - Platoon Splits (Year-by-Year)\n", res.PlayerName)
	r.printf("%s\n", strings.Repeat("=", 80))

	columns := platoonYearlyColumns(res.Kind, stats)
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = pad(col.label, 6)
	}
	headerLine := strings.Join(parts, "  ")
	r.printf("\n%s\n", headerLine)
	r.printf("%s\n", strings.Repeat("-", len(headerLine)))

	leftLabel, rightLabel := "LHP", "RHP"
	if res.Kind == statline.KindPitcher {
		leftLabel, rightLabel = "LHB", "RHB"
	}

	for _, year := range res.Years {
		r.platoonYearlyRow(columns, year.Year, leftLabel, year.Left)
		r.platoonYearlyRow(columns, "", rightLabel, year.Right)
	}
	r.printf("\n")
}

func (r *Renderer) platoonYearlyRow(columns []platoonColumn, year, label string, s platoon.Split) {
	parts := make([]string, len(columns))
	for i, col := range columns {
		switch col.key {
		case "year":
			parts[i] = pad(year, 6)
		case "split":
			parts[i] = pad(label, 6)
		default:
			parts[i] = pad(platoonValue(s, col.key), 6)
		}
	}
	r.printf("%s\n", strings.Join(parts, "  "))
}

func (r *Renderer) platoonSingle(res usecase.PlatoonResult, stats []string) {
	label := " (Career)"
	if res.Year > 0 {
		label = fmt.Sprintf(" (%d)", res.Year)
	}
	r.printf("\n%s - Platoon Splits%s\n", res.PlayerName, label)
	r.printf("%s\n", strings.Repeat("=", 80))

	columns := platoonSingleColumns(res.Kind, stats)
	parts := make([]string, len(columns))
	for i, col := range columns {
		parts[i] = pad(col.label, platoonColumnWidth(col.key))
	}
	r.printf("\n%s\n", strings.Join(parts, " "))
	r.printf("%s\n", strings.Repeat("-", 100))

	splits := res.Years[0]
	leftName, rightName := "vs LHP", "vs RHP"
	if res.Kind == statline.KindPitcher {
		leftName, rightName = "vs LHB", "vs RHB"
	}
	for _, side := range []struct {
		name  string
		split platoon.Split
	}{{leftName, splits.Left}, {rightName, splits.Right}} {
		for i, col := range columns {
			if col.key == "split" {
				parts[i] = pad(side.name, platoonColumnWidth(col.key))
				continue
			}
			parts[i] = pad(platoonValue(side.split, col.key), platoonColumnWidth(col.key))
		}
		r.printf("%s\n", strings.Join(parts, " "))
	}
	r.printf("\n")
}
