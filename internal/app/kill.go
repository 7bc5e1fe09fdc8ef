package app

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/renderwatch/internal/completion"
	"github.com/pranshuparmar/renderwatch/internal/monitor"
	"github.com/pranshuparmar/renderwatch/internal/output"
)

func (a *app) newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:               "validate <pid>",
		Short:             "Check that a pid is still a render worker",
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: a.completePIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mon, err := a.snapshotFunc(a.opts)(cmd.Context())
			if err != nil {
				return err
			}
			ok, err := mon.Validate(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			output.RenderValidate(cmd.OutOrStdout(), args[0], ok, a.colorEnabled())
			return nil
		},
	}
}

func (a *app) newKillCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kill <pid>...",
		Short: "Stop render workers, skipping pids that no longer validate",
		Long: `kill re-checks every pid against a fresh process listing and only then
force-terminates it. Pids that are gone or now belong to another program
are reported as skipped.`,
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: a.completePIDs,
		RunE: func(cmd *cobra.Command, args []string) error {
			mon, err := a.snapshotFunc(a.opts)(cmd.Context())
			if err != nil {
				return err
			}
			failed := 0
			for _, pid := range args {
				_, killed, err := mon.Kill(cmd.Context(), pid)
				var kerr *monitor.KillError
				switch {
				case errors.As(err, &kerr):
					failed++
					output.RenderKillFailed(cmd.OutOrStdout(), pid, kerr.Output, a.colorEnabled())
				case err != nil:
					return err
				default:
					output.RenderKill(cmd.OutOrStdout(), pid, killed, a.colorEnabled())
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d of %d kills failed", failed, len(args))
			}
			return nil
		},
	}
}

// completePIDs offers live render worker pids not already on the command line.
func (a *app) completePIDs(cmd *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if err := a.setup(cmd); err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	mon, err := a.snapshotFunc(a.opts)(cmd.Context())
	if err != nil {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}

	var out []string
	for _, pid := range completion.Candidates(completion.CompletePIDs, mon) {
		if !slices.Contains(args, pid) {
			out = append(out, pid)
		}
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}
