// Package cli is the terminal surface: command parsing, interactive
// disambiguation prompts and table rendering.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dugout-cli/dugout/internal/config"
	"github.com/dugout-cli/dugout/internal/domain/statline"
	"github.com/dugout-cli/dugout/internal/infrastructure/loader"
	"github.com/dugout-cli/dugout/internal/platform/logging"
	"github.com/dugout-cli/dugout/internal/platform/style"
	"github.com/dugout-cli/dugout/internal/platform/textnorm"
	"github.com/dugout-cli/dugout/internal/usecase"
)

// Migrator applies or rolls back the storage schema.
type Migrator interface {
	Up(ctx context.Context) error
	Down(ctx context.Context) error
}

// Deps carries everything the command tree needs; the app layer fills it.
type Deps struct {
	Config      config.Config
	Logger      *logging.Logger
	Styles      style.Styles
	Resolver    *usecase.ResolverService
	Reports     *usecase.ReportService
	Comparisons *usecase.CompareService
	Matchups    *usecase.MatchupService
	Platoons    *usecase.PlatoonService
	Loader      *loader.Service
	Migrator    Migrator

	In  io.Reader
	Out io.Writer
}

type rootFlags struct {
	stats         []string
	year          string
	compare       string
	compareTeam   bool
	compareLeague bool
	versus        string
	platoon       bool
}

func (f rootFlags) modeCount() int {
	count := 0
	if f.compare != "" {
		count++
	}
	if f.compareTeam {
		count++
	}
	if f.compareLeague {
		count++
	}
	if f.versus != "" {
		count++
	}
	if f.platoon {
		count++
	}
	return count
}

// NewRootCommand builds the command tree. The root command itself is the
// player lookup; load and migrate hang off it as subcommands.
func NewRootCommand(d Deps) *cobra.Command {
	var flags rootFlags

	cmd := &cobra.Command{
		Use:   "dugout <player>",
		Short: "Baseball statistics lookup",
		Long: "Look up season statistics for MLB players, compare them against each other\n" +
			"or their team and league averages, and pull batter-vs-pitcher and platoon\n" +
			"splits from the MLB Stats API.",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.modeCount() > 1 {
				return fmt.Errorf("%w: cannot use --compare, --compare-team, --compare-league, --versus and --platoon together, choose one mode",
					usecase.ErrInvalidInput)
			}
			return runLookup(cmd.Context(), d, args[0], flags)
		},
	}

	cmd.Flags().StringArrayVarP(&flags.stats, "stats", "s", nil, "specific stats to display (e.g. war era)")
	cmd.Flags().StringVarP(&flags.year, "year", "y", "", "filter by year (e.g. 2022 or 22)")
	cmd.Flags().StringVarP(&flags.compare, "compare", "c", "", "compare with another player")
	cmd.Flags().BoolVarP(&flags.compareTeam, "compare-team", "t", false, "compare player to team average")
	cmd.Flags().BoolVarP(&flags.compareLeague, "compare-league", "l", false, "compare player to league average")
	cmd.Flags().StringVarP(&flags.versus, "versus", "v", "", "show batter vs pitcher matchup stats")
	cmd.Flags().BoolVarP(&flags.platoon, "platoon", "p", false, "show platoon splits (vs LHB/RHB or vs LHP/RHP)")

	cmd.AddCommand(newLoadCommand(d))
	cmd.AddCommand(newMigrateCommand(d))

	return cmd
}

func runLookup(ctx context.Context, d Deps, query string, flags rootFlags) error {
	renderer := NewRenderer(d.Out, d.Styles)
	prompter := NewPrompter(d.In, d.Out)

	switch {
	case flags.platoon:
		res, err := d.Platoons.Splits(ctx, query, flags.year)
		if err != nil {
			return err
		}
		renderer.Platoon(res, flags.stats)
		return nil

	case flags.versus != "":
		res, err := d.Matchups.Versus(ctx, query, flags.versus, prompter.chooseBatter)
		if err != nil {
			return err
		}
		return renderer.Matchup(res, flags.year)

	case flags.compare != "":
		cmp, err := d.Comparisons.Compare(ctx, query, flags.compare, flags.stats, flags.year)
		if err != nil {
			return err
		}
		renderer.Comparison(cmp)
		return nil

	case flags.compareTeam:
		return runComparisonReport(ctx, d, renderer, query, flags, usecase.CompareTeam)

	case flags.compareLeague:
		return runComparisonReport(ctx, d, renderer, query, flags, usecase.CompareLeague)

	default:
		return runSeasonLookup(ctx, d, renderer, prompter, query, flags)
	}
}

func runComparisonReport(ctx context.Context, d Deps, renderer *Renderer, query string, flags rootFlags, mode usecase.CompareMode) error {
	player, err := d.Resolver.ResolveOne(ctx, query)
	if err != nil {
		return err
	}
	report, err := d.Reports.SeasonReport(ctx, player.Lines, player.Kind, flags.stats, flags.year, mode)
	if err != nil {
		return err
	}
	renderer.Report(report)
	return nil
}

// runSeasonLookup is the default mode: resolve the query, walk the user
// through fuzzy suggestions or duplicate-name choices when needed, then
// print one season table (or both for a two-way player).
func runSeasonLookup(ctx context.Context, d Deps, renderer *Renderer, prompter *Prompter, query string, flags rootFlags) error {
	res, err := d.Resolver.Find(ctx, query)
	if err != nil {
		return err
	}

	if res.Empty() {
		chosen, err := suggestAlternative(ctx, d, prompter, query)
		if err != nil || chosen == "" {
			return err
		}
		res, err = d.Resolver.Find(ctx, chosen)
		if err != nil {
			return err
		}
		if res.Empty() {
			return fmt.Errorf("%w: no players found matching %q", usecase.ErrNotFound, chosen)
		}
	}

	assessment := d.Resolver.Assess(res)
	switch assessment.Disposition {
	case usecase.DispositionChoose:
		res, err = promptChoice(d, prompter, query, res, assessment.Choices)
		if err != nil || res.Empty() {
			return err
		}
	case usecase.DispositionList:
		listCandidates(d.Out, query, assessment)
		return nil
	}

	return renderResolution(ctx, d, renderer, res, flags)
}

// suggestAlternative runs the fuzzy name scan and asks the user to pick.
// Returns "" when the user cancels.
func suggestAlternative(ctx context.Context, d Deps, prompter *Prompter, query string) (string, error) {
	suggestions, err := d.Resolver.Suggest(ctx, query)
	if err != nil {
		return "", err
	}
	if len(suggestions) == 0 {
		return "", fmt.Errorf("%w: no players found matching %q", usecase.ErrNotFound, query)
	}

	fmt.Fprintf(d.Out, "No exact match found for '%s'. Did you mean:\n", query)
	for i, s := range suggestions {
		fmt.Fprintf(d.Out, "  %d. %s (%s)\n", i+1, s.Name, s.Kind)
	}

	if len(suggestions) == 1 {
		if !prompter.Confirm(fmt.Sprintf("\nShow stats for %s?", suggestions[0].Name)) {
			return "", nil
		}
		return suggestions[0].Name, nil
	}

	choice := prompter.Choose("\nEnter number (or 0 to cancel)", len(suggestions))
	if choice == 0 {
		return "", nil
	}
	return suggestions[choice-1].Name, nil
}

// promptChoice resolves an exact duplicate name by asking which player was
// meant. An empty resolution comes back when the user cancels.
func promptChoice(d Deps, prompter *Prompter, query string, res usecase.Resolution, choices []usecase.Candidate) (usecase.Resolution, error) {
	fmt.Fprintf(d.Out, "Multiple players found matching '%s':\n\n", query)
	for i, c := range choices {
		fmt.Fprintf(d.Out, "  %d. %s (%s) - %s\n", i+1, c.Name, c.Teams, strings.ToUpper(string(c.Kind)))
	}

	choice := prompter.Choose("\nEnter number (or 0 to cancel)", len(choices))
	if choice == 0 {
		return usecase.Resolution{}, nil
	}

	selected := choices[choice-1]
	out := usecase.Resolution{Query: res.Query}
	if selected.Kind == statline.KindPitcher {
		out.Pitcher = selected.Lines
	} else {
		out.Hitter = selected.Lines
	}
	return out, nil
}

func listCandidates(out io.Writer, query string, assessment usecase.Assessment) {
	fmt.Fprintf(out, "Multiple players found matching '%s':\n", query)
	printGroup(out, "PITCHER", assessment.Pitchers)
	printGroup(out, "HITTER", assessment.Hitters)
}

func printGroup(out io.Writer, label string, candidates []usecase.Candidate) {
	if len(candidates) == 0 {
		return
	}
	if len(candidates) > 1 {
		label += "S"
	}
	fmt.Fprintf(out, "\n%s:\n", label)
	for _, c := range candidates {
		fmt.Fprintf(out, "  - %s (%s)\n", c.Name, c.Teams)
	}
}

// renderResolution prints the season table(s) for a settled resolution. A
// two-way player on the allow list gets both tables; anyone else appearing
// in both record sets renders the set with more games.
func renderResolution(ctx context.Context, d Deps, renderer *Renderer, res usecase.Resolution, flags rootFlags) error {
	if len(res.Pitcher) > 0 && len(res.Hitter) > 0 {
		if d.Resolver.TwoWay(res.Pitcher[0].Player) {
			return renderTwoWay(ctx, d, renderer, res, flags)
		}
		player, err := d.Resolver.Narrow(res)
		if err != nil {
			return err
		}
		return renderReport(ctx, d, renderer, player.Lines, player.Kind, flags)
	}
	if len(res.Pitcher) > 0 {
		return renderReport(ctx, d, renderer, res.Pitcher, statline.KindPitcher, flags)
	}
	return renderReport(ctx, d, renderer, res.Hitter, statline.KindHitter, flags)
}

// renderTwoWay prints both tables, unless every selected stat belongs to
// only one of the record sets.
func renderTwoWay(ctx context.Context, d Deps, renderer *Renderer, res usecase.Resolution, flags rootFlags) error {
	showPitcher, showHitter := true, true
	if len(flags.stats) > 0 {
		showPitcher, showHitter = false, false
		for _, stat := range flags.stats {
			key, _ := textnorm.NormalizeStatToken(stat)
			switch textnorm.Category(key) {
			case textnorm.CategoryPitcher:
				showPitcher = true
			case textnorm.CategoryHitter:
				showHitter = true
			default:
				showPitcher, showHitter = true, true
			}
		}
	}

	if showPitcher {
		if err := renderReport(ctx, d, renderer, res.Pitcher, statline.KindPitcher, flags); err != nil {
			// A year with no pitching rows should not block the hitter
			// table when that one is still pending.
			if !showHitter || !errors.Is(err, usecase.ErrNotFound) {
				return err
			}
			printYearGap(d.Out, statline.KindPitcher, flags.year)
		}
	}
	if showHitter {
		if err := renderReport(ctx, d, renderer, res.Hitter, statline.KindHitter, flags); err != nil {
			// The pitcher table already printed; a year with no batting
			// rows should not read as a failed lookup.
			if showPitcher && errors.Is(err, usecase.ErrNotFound) {
				printYearGap(d.Out, statline.KindHitter, flags.year)
				return nil
			}
			return err
		}
	}
	return nil
}

func printYearGap(out io.Writer, kind statline.Kind, yearToken string) {
	year, err := textnorm.ParseYear(yearToken)
	if err != nil {
		return
	}
	fmt.Fprintf(out, "No %s data for %d\n", kind, year)
}

func renderReport(ctx context.Context, d Deps, renderer *Renderer, lines []statline.Line, kind statline.Kind, flags rootFlags) error {
	report, err := d.Reports.SeasonReport(ctx, lines, kind, flags.stats, flags.year, usecase.CompareNone)
	if err != nil {
		return err
	}
	renderer.Report(report)
	return nil
}

// chooseBatter is the interactive tie-break for a matchup between two
// two-way players.
func (p *Prompter) chooseBatter(name1, name2 string) (int, error) {
	fmt.Fprintf(p.out, "Both %s and %s are two-way players.\nWho is batting?\n", name1, name2)
	fmt.Fprintf(p.out, "  1. %s\n  2. %s\n", name1, name2)
	choice := p.Choose("Enter 1 or 2", 2)
	if choice == 0 {
		return 0, fmt.Errorf("%w: batter choice cancelled", usecase.ErrInvalidInput)
	}
	return choice, nil
}
