package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/renderwatch/internal/output"
)

func (a *app) newPsCmd() *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "ps",
		Short: "Show running render workers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			mon, err := a.snapshotFunc(a.opts)(cmd.Context())
			if err != nil {
				return err
			}

			if jsonOut {
				text, err := output.ToJSON(output.Snapshot{
					Active:    mon.IsActive(),
					Bypassed:  mon.Bypassed(),
					Processes: mon.Records(),
				})
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			output.NewTableRenderer(cmd.OutOrStdout(), a.colorEnabled()).RenderProcesses(mon.Records(), mon.Bypassed())
			return nil
		},
	}
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	return cmd
}
