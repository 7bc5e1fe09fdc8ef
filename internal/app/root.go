// Package app wires the renderwatch command tree.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/renderwatch/internal/config"
	"github.com/pranshuparmar/renderwatch/internal/events"
	"github.com/pranshuparmar/renderwatch/internal/logging"
	"github.com/pranshuparmar/renderwatch/internal/metrics"
	"github.com/pranshuparmar/renderwatch/internal/monitor"
	"github.com/pranshuparmar/renderwatch/internal/platform"
	"github.com/pranshuparmar/renderwatch/internal/proc"
)

// Seams replaced in tests.
var (
	detectProfile = platform.Detect
	newExecutor   = shellExecutor
)

func shellExecutor(profile platform.Profile, opts config.Options, bus *events.Bus) (proc.Executor, error) {
	mode, err := proc.ParseCaptureMode(opts.ExecutorCapture)
	if err != nil {
		return nil, err
	}
	return proc.NewShellExecutor(profile,
		proc.WithCapture(mode),
		proc.WithTempDir(opts.ExecutorTempDir),
		proc.WithTimeout(opts.ExecutorTimeout),
		proc.WithEvents(bus),
	), nil
}

// app holds what one command invocation shares across subcommands.
type app struct {
	opts config.Options

	profile  platform.Profile
	exec     proc.Executor
	bus      *events.Bus
	recorder *metrics.Recorder
	detach   func()
	logger   *slog.Logger
}

// NewRootCmd builds a fresh command tree.
func NewRootCmd() *cobra.Command {
	a := &app{opts: config.Defaults()}

	root := &cobra.Command{
		Use:   "renderwatch",
		Short: "Inspect render output folders and manage aerender workers",
		Long: `renderwatch lists render output folders and finds, validates and stops
aerender render workers using the operating system's own commands.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			return a.teardown(cmd)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&a.opts.Config, "config", "c", "", "path to a TOML config file")
	pf.StringVar(&a.opts.LoggingLevel, "logging-level", a.opts.LoggingLevel, "log level (debug, info, warn, error)")
	pf.StringVar(&a.opts.LoggingFormat, "logging-format", a.opts.LoggingFormat, "log format (text, json)")
	pf.StringVar(&a.opts.ExecutorCapture, "executor-capture", a.opts.ExecutorCapture, "output capture mode (tempfile, direct)")
	pf.StringVar(&a.opts.ExecutorTempDir, "executor-temp-dir", "", "directory for captured output files")
	pf.DurationVar(&a.opts.ExecutorTimeout, "executor-timeout", 0, "abort commands running longer than this (0 waits forever)")
	pf.StringVar(&a.opts.MonitorBypass, "monitor-bypass", a.opts.MonitorBypass, "skip process table reads (auto, on, off)")
	pf.StringVar(&a.opts.MonitorWorkerPattern, "monitor-worker-pattern", "", "regexp recognizing the render worker")
	pf.StringVar(&a.opts.MonitorHostPattern, "monitor-host-pattern", "", "regexp recognizing the host application")
	pf.StringVar(&a.opts.WorkerPath, "worker-path", "", "aerender location hint")
	pf.StringVar(&a.opts.MetricsTextfile, "metrics-textfile", "", "write Prometheus metrics to this file on exit")
	pf.BoolVar(&a.opts.NoColor, "no-color", false, "disable colors")

	root.AddCommand(
		a.newLsCmd(),
		a.newPsCmd(),
		a.newValidateCmd(),
		a.newKillCmd(),
		a.newWatchCmd(),
		a.newPlatformCmd(),
	)
	return root
}

// Execute runs the command tree with os.Args.
func Execute(ctx context.Context) error {
	return NewRootCmd().ExecuteContext(ctx)
}

// setup resolves config, logging and the executor once per invocation.
func (a *app) setup(cmd *cobra.Command) error {
	if a.exec != nil {
		return nil
	}

	if err := config.LoadConfig(&a.opts, cmd); err != nil {
		return err
	}

	logCfg := a.opts.LoggingConfig()
	logCfg.Output = cmd.ErrOrStderr()
	logging.Initialize(logCfg)
	a.logger = logging.GetLogger("app")

	a.profile = detectProfile()
	a.bus = events.New()
	a.recorder = metrics.NewRecorder()
	a.detach = a.recorder.Attach(a.bus)

	exec, err := newExecutor(a.profile, a.opts, a.bus)
	if err != nil {
		a.detach()
		return fmt.Errorf("executor: %w", err)
	}
	a.exec = exec

	a.logger.Debug("Resolved platform", "os", a.profile.Family, "dialect", a.profile.Dialect, "capture", a.opts.ExecutorCapture)
	return nil
}

// teardown exports metrics when asked to.
func (a *app) teardown(cmd *cobra.Command) error {
	if a.recorder == nil {
		return nil
	}
	defer a.detach()

	if a.opts.MetricsTextfile == "" {
		return nil
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Second)
	defer cancel()
	if err := a.recorder.Sync(ctx, a.bus.Published()); err != nil {
		a.logger.Warn("Exporting metrics before all events arrived", "error", err)
	}
	return a.recorder.WriteTextfile(a.opts.MetricsTextfile)
}

func (a *app) colorEnabled() bool {
	return !a.opts.NoColor
}

// monitorOptions turns opts into monitor settings.
func (a *app) monitorOptions(opts config.Options) (monitor.Options, error) {
	bypass, err := monitor.ParseBypassMode(opts.MonitorBypass)
	if err != nil {
		return monitor.Options{}, err
	}
	sigs, err := monitor.DefaultSignatures(a.profile).WithPatterns(opts.MonitorWorkerPattern, opts.MonitorHostPattern)
	if err != nil {
		return monitor.Options{}, err
	}
	return monitor.Options{
		Bypass:     bypass,
		Signatures: &sigs,
		Events:     a.bus,
	}, nil
}

// snapshotFunc returns a function taking snapshots with opts' settings.
func (a *app) snapshotFunc(opts config.Options) func(context.Context) (*monitor.Monitor, error) {
	return func(ctx context.Context) (*monitor.Monitor, error) {
		monOpts, err := a.monitorOptions(opts)
		if err != nil {
			return nil, err
		}
		return monitor.New(ctx, a.profile, a.exec, monOpts)
	}
}
