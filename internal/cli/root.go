// Package cli wires configuration, adapters, and the poll loop into the
// storm-alertd command tree.
package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/couchcryptid/storm-alertd/internal/adapter/console"
	"github.com/couchcryptid/storm-alertd/internal/adapter/desktop"
	kafkaadapter "github.com/couchcryptid/storm-alertd/internal/adapter/kafka"
	"github.com/couchcryptid/storm-alertd/internal/adapter/mapbox"
	"github.com/couchcryptid/storm-alertd/internal/adapter/nws"
	"github.com/couchcryptid/storm-alertd/internal/config"
	"github.com/couchcryptid/storm-alertd/internal/observability"
	"github.com/couchcryptid/storm-alertd/internal/pipeline"
	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"
)

// Version is set at build time via ldflags.
var Version = "dev"

// closingNotifier is a sink that holds a connection.
type closingNotifier interface {
	pipeline.Notifier
	Close() error
}

// app carries process-wide dependencies into every command. Tests replace
// the constructors with fakes.
type app struct {
	configPath string
	stdout     io.Writer
	stderr     io.Writer
	clock      clockwork.Clock
	newFetcher func(env *config.Env, logger *slog.Logger) pipeline.Fetcher
	newDesktop func(logger *slog.Logger) (closingNotifier, error)
	newMetrics func() *observability.Metrics
}

func defaultApp() *app {
	return &app{
		stdout: os.Stdout,
		stderr: os.Stderr,
		clock:  clockwork.NewRealClock(),
		newFetcher: func(env *config.Env, logger *slog.Logger) pipeline.Fetcher {
			return nws.NewClient(env.FetchTimeout, logger)
		},
		newDesktop: func(logger *slog.Logger) (closingNotifier, error) {
			n, err := desktop.NewNotifier(logger)
			if err != nil {
				return nil, err
			}
			return n, nil
		},
		newMetrics: observability.NewMetrics,
	}
}

// Execute runs the CLI.
func Execute() {
	if err := newRootCmd(defaultApp()).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "storm-alertd",
		Short: "Desktop notifications for National Weather Service alerts",
		Long: `storm-alertd polls the National Weather Service for active alerts at a
configured point and shows a desktop notification the first time each alert
is seen. Notification urgency, timeout, and icon follow the alert's severity
and event type.`,
		SilenceUsage: true,
	}
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)
	root.PersistentFlags().StringVar(&a.configPath, "config", a.configPath, "settings file (default: <user config dir>/"+config.SettingsFileName+")")

	root.AddCommand(
		newRunCmd(a),
		newTestCmd(a),
		newActiveCmd(a),
		newInitConfigCmd(a),
		newVersionCmd(),
	)
	return root
}

// runtime holds what a command needs once configuration is loaded.
type runtime struct {
	env      *config.Env
	settings *config.Settings
	logger   *slog.Logger
	metrics  *observability.Metrics
}

func (a *app) load(debug bool) (*runtime, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, fmt.Errorf("load environment: %w", err)
	}

	level := env.LogLevel
	if debug {
		level = "debug"
	}
	logger := observability.NewLogger(a.stderr, level, env.LogFormat)

	path := a.configPath
	if path == "" {
		if path, err = config.DefaultSettingsPath(); err != nil {
			return nil, fmt.Errorf("locate settings: %w", err)
		}
	}
	settings, found, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}
	if !found {
		logger.Warn("settings file not found, using defaults", "path", path)
	}

	return &runtime{
		env:      env,
		settings: settings,
		logger:   logger,
		metrics:  a.newMetrics(),
	}, nil
}

// sinks builds the notifier chain: console echo, desktop, then the optional
// Kafka mirror. The returned func closes whatever holds a connection.
func (a *app) sinks(rt *runtime) (pipeline.FanOut, func(), error) {
	d, err := a.newDesktop(rt.logger)
	if err != nil {
		return nil, nil, err
	}

	fan := pipeline.FanOut{console.NewPrinter(a.stdout), d}
	closers := []closingNotifier{d}

	if rt.env.KafkaEnabled() {
		w := kafkaadapter.NewWriter(rt.env, a.clock, rt.logger)
		fan = append(fan, pipeline.NewMirror(w, rt.logger, rt.metrics))
		closers = append(closers, w)
		rt.logger.Info("kafka alert mirror enabled", "brokers", rt.env.KafkaBrokers, "topic", rt.env.KafkaTopic)
	}

	closeAll := func() {
		for _, c := range closers {
			if err := c.Close(); err != nil {
				rt.logger.Error("sink close error", "error", err)
			}
		}
	}
	return fan, closeAll, nil
}

// locationLabel names the monitored point for notification summaries. It
// returns "" when Mapbox is not configured or the lookup fails.
func (a *app) locationLabel(ctx context.Context, rt *runtime) string {
	if !rt.env.MapboxEnabled() {
		return ""
	}
	client := mapbox.NewClient(rt.env.MapboxToken, rt.env.MapboxTimeout, rt.metrics, rt.logger)
	name, err := client.ReverseGeocode(ctx, rt.settings.Lat, rt.settings.Lon)
	if err != nil {
		rt.logger.Warn("location lookup failed", "error", err)
		return ""
	}
	return name
}
