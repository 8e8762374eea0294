package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/kiln/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile stale sources and link or archive every declared output",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Build(cmd.Context(), buildOptions(cmd))
		},
	}
	addBuildFlags(cmd)
	cmd.Flags().String("bin", "", "Build only the named binary")
	cmd.Flags().String("lib", "", "Build only the named library")
	cmd.MarkFlagsMutuallyExclusive("bin", "lib")

	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Build, then rebuild whenever a source or the build file changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context(), buildOptions(cmd))
		},
	}
	addBuildFlags(cmd)

	return cmd
}

func addBuildFlags(cmd *cobra.Command) {
	cmd.Flags().IntP("jobs", "j", 0, "Number of parallel compile jobs (default: number of CPUs)")
}

func buildOptions(cmd *cobra.Command) app.BuildOptions {
	jobs, _ := cmd.Flags().GetInt("jobs")
	bin, _ := cmd.Flags().GetString("bin")
	lib, _ := cmd.Flags().GetString("lib")
	return app.BuildOptions{
		ProjectOptions: projectOptions(cmd),
		Jobs:           jobs,
		Binary:         bin,
		Library:        lib,
	}
}
