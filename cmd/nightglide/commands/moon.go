package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/thurmanmarka/nightglide"
	"github.com/thurmanmarka/nightglide/internal/report"
)

// timeLayouts are tried in order; the bare forms are read in the observer's
// zone.
var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	nightglide.DateLayout,
}

func parseTime(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: cannot parse time %q", nightglide.ErrConfiguration, s)
}

func newMoonCommand(configPath *string) *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "moon",
		Short: "Print the Moon's phase and illuminated fraction at an instant",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, opts, err := setup(cmd, *configPath, nil)
			if err != nil {
				return err
			}

			loc, err := cfg.Location()
			if err != nil {
				return err
			}

			t := time.Now().In(loc)
			if at != "" {
				if t, err = parseTime(at, loc); err != nil {
					return err
				}
			}

			phase, err := nightglide.MoonPhaseAt(t)
			if err != nil {
				return err
			}

			return report.MoonPhase(cmd.OutOrStdout(), phase, opts)
		},
	}

	cmd.Flags().StringVar(&at, "time", "", "instant to evaluate (RFC3339, YYYY-MM-DDTHH:MM or YYYY-MM-DD; default now)")

	return cmd
}
