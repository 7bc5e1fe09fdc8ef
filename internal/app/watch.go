package app

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/renderwatch/internal/config"
	"github.com/pranshuparmar/renderwatch/internal/logging"
	"github.com/pranshuparmar/renderwatch/internal/tui"
)

func (a *app) newWatchCmd() *cobra.Command {
	interval := tui.DefaultInterval

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Live dashboard of render workers",
		Long: `watch refreshes the render worker list every interval. Use tab to select,
enter to kill (each pid is validated first), space to pause and q to quit.
When --config is set the file is watched and changes apply immediately.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			// The dashboard owns the terminal.
			quiet := a.opts.LoggingConfig()
			quiet.Output = io.Discard
			logging.Initialize(quiet)

			m := tui.New(ctx, tui.Config{
				Snapshot: a.snapshotFunc(a.opts),
				Interval: interval,
				Title:    "renderwatch · " + a.profile.Family.String(),
			})
			p := tui.NewProgram(m)

			if a.opts.Config != "" {
				w := config.NewWatcher(a.opts.Config, a.reloadOptions(cmd), logging.GetLogger("config"))
				w.OnReload(func(o config.Options) {
					lc := o.LoggingConfig()
					lc.Output = io.Discard
					logging.Initialize(lc)
					p.Send(tui.ConfigReloadedMsg{Snapshot: a.snapshotFunc(o)})
				})
				if err := w.Start(ctx); err != nil {
					a.logger.Warn("Config watcher unavailable", "path", a.opts.Config, "error", err)
				} else {
					defer w.Stop()
				}
			}

			_, err := p.Run()
			return err
		},
	}
	cmd.Flags().DurationVarP(&interval, "interval", "i", interval, "refresh interval")
	return cmd
}

// reloadOptions re-applies the config file and environment on top of the
// current options, keeping flags given on the command line.
func (a *app) reloadOptions(cmd *cobra.Command) func(path string) (config.Options, error) {
	return func(path string) (config.Options, error) {
		o := a.opts
		o.Config = path
		if err := config.LoadConfig(&o, cmd); err != nil {
			return o, err
		}
		if _, err := a.monitorOptions(o); err != nil {
			return o, err
		}
		return o, nil
	}
}
