package cli

import (
	"fmt"
	"strings"

	"github.com/couchcryptid/storm-alertd/internal/domain"
	"github.com/couchcryptid/storm-alertd/internal/pipeline"
	"github.com/spf13/cobra"
)

func newTestCmd(a *app) *cobra.Command {
	var severity string
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Show a test notification through the normal dispatch path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, ok := domain.LookupSeverity(severity)
			if !ok {
				return fmt.Errorf("unknown severity %q (want one of %s)", severity, severityNames())
			}

			rt, err := a.load(false)
			if err != nil {
				return err
			}

			sinks, closeSinks, err := a.sinks(rt)
			if err != nil {
				return err
			}
			defer closeSinks()

			d := pipeline.NewDispatcher(sinks, rt.settings, a.locationLabel(cmd.Context(), rt), rt.logger, rt.metrics)
			_, err = d.SelfTest(cmd.Context(), s)
			return err
		},
	}
	cmd.Flags().StringVarP(&severity, "severity", "s", domain.SeveritySevere.String(),
		"severity of the test alert ("+severityNames()+")")
	return cmd
}

func severityNames() string {
	names := make([]string, len(domain.Severities))
	for i, s := range domain.Severities {
		names[i] = s.String()
	}
	return strings.Join(names, ", ")
}
