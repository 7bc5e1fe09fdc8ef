package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/renderwatch/internal/monitor"
	"github.com/pranshuparmar/renderwatch/internal/output"
)

func (a *app) newPlatformCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "platform",
		Short: "Show the detected platform profile and aerender location",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			bypass, err := monitor.ParseBypassMode(a.opts.MonitorBypass)
			if err != nil {
				return err
			}

			info := output.PlatformInfo{
				OS:            a.profile.Family.String(),
				Dialect:       a.profile.Dialect.String(),
				PathSeparator: a.profile.PathSeparator,
				ExeSuffix:     a.profile.ExeSuffix,
				Shell:         a.profile.ShellPrefix(),
				WorkerPath:    a.profile.ProbeWorkerPath(a.opts.WorkerPath),
				Bypass:        bypass.Enabled(a.profile),
			}

			if jsonOut {
				text, err := output.ToJSON(info)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			output.RenderPlatform(cmd.OutOrStdout(), info, a.colorEnabled())
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}
