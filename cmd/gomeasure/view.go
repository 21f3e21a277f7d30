package main

import (
	"github.com/spf13/cobra"

	"github.com/philipparndt/gomeasure/internal/app"
	"github.com/philipparndt/gomeasure/internal/measurement"
)

var (
	viewMode      measurement.Mode
	viewNoWatch   bool
	viewWireframe bool
)

var viewCmd = &cobra.Command{
	Use:   "view <file.stl>...",
	Short: "Open models in the interactive measurement viewer",
	Long: `Open one or more STL files side by side. Click points on the surface to
measure. Files are reloaded when they change on disk.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runView,
}

func init() {
	rootCmd.AddCommand(viewCmd)

	viewCmd.Flags().Var(&viewMode, "mode", "start mode: length, angle or area")
	viewCmd.Flags().BoolVar(&viewNoWatch, "no-watch", false, "do not reload files when they change")
	viewCmd.Flags().BoolVar(&viewWireframe, "wireframe", false, "show triangle edges")
}

func runView(cmd *cobra.Command, args []string) error {
	c := cfg
	if cmd.Flags().Changed("mode") {
		c.Measurement.DefaultMode = viewMode.String()
	}
	if viewNoWatch {
		c.Viewer.Watch = false
	}
	if viewWireframe {
		c.Viewer.Wireframe = true
	}
	return app.Run(cmd.Context(), app.Options{Files: args, Config: c})
}
