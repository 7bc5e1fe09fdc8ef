package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pranshuparmar/renderwatch/internal/completion"
	"github.com/pranshuparmar/renderwatch/internal/directory"
	"github.com/pranshuparmar/renderwatch/internal/output"
	"github.com/pranshuparmar/renderwatch/pkg/model"
)

func (a *app) newLsCmd() *cobra.Command {
	var (
		kindName string
		mask     string
		jsonOut  bool
	)

	cmd := &cobra.Command{
		Use:   "ls [path]",
		Short: "List a directory with the OS listing command",
		Example: `  renderwatch ls /renders/shot010 --kind files --mask '*.png'
  renderwatch ls 'C:\renders' --kind folders --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			kind, err := model.ParseListKind(kindName)
			if err != nil {
				return err
			}

			enum := directory.NewEnumerator(a.profile, a.exec, directory.WithEvents(a.bus))
			listing, err := enum.List(cmd.Context(), path, kind, mask)
			if err != nil {
				return err
			}

			if jsonOut {
				text, err := output.ToJSON(output.NewListingJSON(path, kind, listing))
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			output.NewTableRenderer(cmd.OutOrStdout(), a.colorEnabled()).RenderListing(path, listing)
			return nil
		},
	}

	cmd.Flags().StringVarP(&kindName, "kind", "k", model.ListAll.String(), "entries to list (all, files, folders, hidden-files, hidden-folders, all-hidden)")
	cmd.Flags().StringVarP(&mask, "mask", "m", "", "file mask such as '*.png'")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "output as JSON")
	_ = cmd.RegisterFlagCompletionFunc("kind", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return completion.Candidates(completion.CompleteKinds, nil), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}
