package commands

import (
	"github.com/spf13/cobra"

	"github.com/thurmanmarka/nightglide/internal/config"
	"github.com/thurmanmarka/nightglide/internal/report"
)

var illuminationBindings = map[string]string{
	"illumination.min_percent": "min",
	"illumination.max_percent": "max",
}

func newIlluminationCommand(configPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "illumination",
		Short: "List the dates whose Moon illumination falls inside a band",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, planner, opts, err := setup(cmd, *configPath, illuminationBindings)
			if err != nil {
				return err
			}

			rng, err := cfg.DateRange()
			if err != nil {
				return err
			}

			minFrac, maxFrac := cfg.IlluminationBand()
			cal, err := planner.Illumination(cmd.Context(), rng, minFrac, maxFrac)
			if err != nil {
				return err
			}

			return report.Illumination(cmd.OutOrStdout(), cal, opts)
		},
	}

	cmd.Flags().Float64("min", config.DefaultIlluminationMinPercent, "lower bound in percent, inclusive")
	cmd.Flags().Float64("max", config.DefaultIlluminationMaxPercent, "upper bound in percent, inclusive")

	return cmd
}
