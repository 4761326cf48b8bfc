package cli

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	httpadapter "github.com/couchcryptid/storm-alertd/internal/adapter/http"
	"github.com/couchcryptid/storm-alertd/internal/pipeline"
	"github.com/spf13/cobra"
)

func newRunCmd(a *app) *cobra.Command {
	var debug bool
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Poll for active alerts and show notifications",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return a.runDaemon(ctx, debug)
		},
	}
	cmd.Flags().BoolVar(&debug, "debug", false, "log at debug level, including raw API responses")
	return cmd
}

func (a *app) runDaemon(ctx context.Context, debug bool) error {
	rt, err := a.load(debug)
	if err != nil {
		return err
	}

	sinks, closeSinks, err := a.sinks(rt)
	if err != nil {
		return err
	}
	defer closeSinks()

	location := a.locationLabel(ctx, rt)
	dispatcher := pipeline.NewDispatcher(sinks, rt.settings, location, rt.logger, rt.metrics)
	poller := pipeline.NewPoller(a.newFetcher(rt.env, rt.logger), dispatcher, rt.settings, a.clock, rt.logger, rt.metrics)

	rt.logger.Info("storm-alertd starting", "version", Version, "location", location)

	var srv *httpadapter.Server
	if rt.env.HTTPAddr != "" {
		srv = httpadapter.NewServer(rt.env.HTTPAddr, poller, rt.logger)
		go func() {
			if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				rt.logger.Error("http server error", "error", err)
			}
		}()
	}

	runErr := poller.Run(ctx)

	rt.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), rt.env.ShutdownTimeout)
	defer cancel()

	if srv != nil {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			rt.logger.Error("http server shutdown error", "error", err)
		}
	}

	rt.logger.Info("shutdown complete", "acknowledged", poller.Acknowledged())
	return runErr
}
