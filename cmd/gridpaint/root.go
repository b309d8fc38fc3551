package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/gridpaint/internal/config"
)

// globalFlags are shared by every command.
type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
}

// path returns the config file to load, falling back to the user
// config location.
func (g *globalFlags) path() string {
	if g.configPath != "" {
		return g.configPath
	}
	return config.DefaultPath()
}

// overrides returns the config layer set by global flags.
func (g *globalFlags) overrides() map[string]any {
	o := make(map[string]any)
	if g.logLevel != "" {
		o["logging.level"] = g.logLevel
	}
	if g.logFile != "" {
		o["logging.file"] = g.logFile
	}
	return o
}

func newRootCmd() *cobra.Command {
	flags := &globalFlags{}
	edit := newEditCmd(flags)

	root := &cobra.Command{
		Use:   "gridpaint",
		Short: "Pixel grid editor for the terminal",
		Long: "gridpaint edits a grid of colored cells with pencil, eraser, flood fill\n" +
			"and eyedropper tools, and exports the result as PNG, BMP or TIFF.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          edit.RunE,
	}

	root.PersistentFlags().StringVarP(&flags.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.logFile, "log-file", "", "write logs to this file")

	// Running without a subcommand starts the editor.
	root.Flags().AddFlagSet(edit.Flags())

	root.AddCommand(
		edit,
		newRenderCmd(flags),
		newExportConfigCmd(flags),
		newVersionCmd(),
	)
	return root
}
