package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dugout-cli/dugout/internal/usecase"
)

func newMigrateCommand(d Deps) *cobra.Command {
	cmd := &cobra.Command{
		Use:          "migrate up|down",
		Short:        "Apply or roll back the database schema",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch args[0] {
			case "up":
				if err := d.Migrator.Up(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(d.Out, "migrations applied")
			case "down":
				if err := d.Migrator.Down(cmd.Context()); err != nil {
					return err
				}
				fmt.Fprintln(d.Out, "migrations rolled back")
			default:
				return fmt.Errorf("%w: unknown direction %q, use up or down", usecase.ErrInvalidInput, args[0])
			}
			return nil
		},
	}
	return cmd
}
