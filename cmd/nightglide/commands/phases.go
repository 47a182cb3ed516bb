package commands

import (
	"github.com/spf13/cobra"

	"github.com/thurmanmarka/nightglide/internal/report"
)

func newPhasesCommand(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "phases",
		Short: "Print the dates of all eight Moon phases in the date range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, planner, opts, err := setup(cmd, *configPath, nil)
			if err != nil {
				return err
			}

			rng, err := cfg.DateRange()
			if err != nil {
				return err
			}

			cal, err := planner.Phases(cmd.Context(), rng)
			if err != nil {
				return err
			}

			return report.Phases(cmd.OutOrStdout(), cal, opts)
		},
	}
}
