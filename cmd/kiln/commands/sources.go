package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newSourcesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sources",
		Short: "List the discovered source files",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			objects, _ := cmd.Flags().GetBool("objects")
			return c.app.Sources(cmd.OutOrStdout(), app.SourcesOptions{
				ProjectOptions: projectOptions(cmd),
				Objects:        objects,
			})
		},
	}

	cmd.Flags().Bool("objects", false, "Print the object file next to each source")

	return cmd
}
