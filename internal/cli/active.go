package cli

import (
	"fmt"

	"github.com/couchcryptid/storm-alertd/internal/adapter/console"
	"github.com/couchcryptid/storm-alertd/internal/pipeline"
	"github.com/spf13/cobra"
)

func newActiveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "active",
		Short: "List active alerts for the configured point without notifying",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := a.load(false)
			if err != nil {
				return err
			}

			url := pipeline.AlertsURL(pipeline.DefaultBaseURL, rt.settings.Lat, rt.settings.Lon)
			alerts, err := pipeline.FetchAlerts(cmd.Context(), a.newFetcher(rt.env, rt.logger), url, rt.settings.UserAgent, rt.logger)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(alerts) == 0 {
				fmt.Fprintf(out, "No active alerts for %v,%v\n", rt.settings.Lat, rt.settings.Lon)
				return nil
			}

			printer := console.NewPrinter(out)
			for _, alert := range alerts {
				fmt.Fprintln(out, printer.Line(alert))
			}
			return nil
		},
	}
}
