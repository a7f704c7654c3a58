// Package commands implements the fpadmin command line: the API server and
// the maintenance subcommands that share its configuration.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"fpadmin/internal/config"
	"fpadmin/internal/core"
	"fpadmin/internal/fixtures"
	"fpadmin/internal/kv"
	"fpadmin/internal/observability"
)

type rootFlags struct {
	configPath string
	verbose    bool
}

// Execute runs the root command against os.Args.
func Execute() error {
	return newRootCmd(os.Stdout).ExecuteContext(context.Background())
}

func newRootCmd(out io.Writer) *cobra.Command {
	flags := &rootFlags{}
	root := &cobra.Command{
		Use:           "fpadmin",
		Short:         "Master records and settings admin console",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "YAML config file (env FPADMIN_* overrides it)")
	root.PersistentFlags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		serveCmd(flags),
		meetingURLCmd(flags),
		verifyCmd(flags),
		seedCmd(flags),
	)
	return root
}

func newLogger(cfg config.LogConfig, verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

// app holds the services built from configuration.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	metrics  *observability.Collector
	records  *core.RecordsService
	meetings *core.MeetingService
	settings *core.SettingsService
	closers  []func() error
}

func openApp(ctx context.Context, flags *rootFlags) (*app, error) {
	cfg, err := config.Load(flags.configPath)
	if err != nil {
		return nil, err
	}
	logger, err := newLogger(cfg.Log, flags.verbose)
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	a := &app{cfg: cfg, logger: logger}

	opts := []core.Option{core.WithLogger(logger)}
	if cfg.Metrics.Enabled {
		a.metrics = observability.NewCollector(cfg.Metrics.Namespace)
		opts = append(opts, core.WithMetrics(a.metrics))
	}

	store, closeStore, err := core.OpenPersistentStore(ctx, cfg.Storage, core.NewDefaultRulesEngine())
	if err != nil {
		return nil, fmt.Errorf("open records store: %w", err)
	}
	a.closers = append(a.closers, closeStore)
	a.records = core.NewRecordsService(store, opts...)

	settingsStore, err := kv.Open(ctx, cfg.KV)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("open settings store: %w", err)
	}
	a.meetings = core.NewMeetingService(settingsStore, opts...)
	if err := a.meetings.Load(ctx); err != nil {
		_ = a.Close()
		return nil, err
	}
	a.settings = core.NewSettingsService(settingsStore, opts...)

	logger.Debug("application ready",
		zap.String("storage", string(cfg.Storage.Driver)),
		zap.String("kv", string(settingsStore.Driver())))
	return a, nil
}

// seedIfEmpty loads the embedded fixtures into an empty records store.
func (a *app) seedIfEmpty(ctx context.Context) error {
	if !a.cfg.Seed || len(a.records.Networks()) > 0 || len(a.records.Centers()) > 0 {
		return nil
	}
	return a.seed(ctx)
}

func (a *app) seed(ctx context.Context) error {
	ds, err := fixtures.Seed()
	if err != nil {
		return err
	}
	if _, err := a.records.ReplaceAll(ctx, ds); err != nil {
		return fmt.Errorf("seed records: %w", err)
	}
	a.logger.Info("records seeded",
		zap.Int("networks", len(ds.Networks)),
		zap.Int("centers", len(ds.Centers)),
		zap.Int("objectives", len(ds.Objectives)),
		zap.Int("ods", len(ds.ODS)))
	return nil
}

func (a *app) Close() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c())
	}
	_ = a.logger.Sync()
	return errors.Join(errs...)
}

// withApp opens the application for the duration of run.
func withApp(cmd *cobra.Command, flags *rootFlags, run func(context.Context, *app) error) error {
	ctx := cmd.Context()
	a, err := openApp(ctx, flags)
	if err != nil {
		return err
	}
	defer func() { _ = a.Close() }()
	return run(ctx, a)
}
