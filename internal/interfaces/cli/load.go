package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dugout-cli/dugout/internal/infrastructure/loader"
)

func newLoadCommand(d Deps) *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "load <dataset> <files...>",
		Short: "Bulk-load season CSV exports",
		Long: "Load one or more season CSV exports into the local database. Dataset is one\n" +
			"of pitchers, hitters, team-pitching or team-hitting. Each file replaces its\n" +
			"season; the year comes from --year or the filename.",
		Args:         cobra.MinimumNArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			dataset, err := loader.ParseDataset(args[0])
			if err != nil {
				return err
			}

			results, err := d.Loader.Load(cmd.Context(), dataset, year, args[1:])
			for _, result := range results {
				fmt.Fprintf(d.Out, "Loaded %d %s records for %d from %s\n",
					result.Rows, dataset, result.Year, result.Path)
			}
			return err
		},
	}

	cmd.Flags().IntVarP(&year, "year", "y", 0, "season the files carry (default: from filename)")

	return cmd
}
