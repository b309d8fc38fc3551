package main

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/dshills/gridpaint/internal/app"
	"github.com/dshills/gridpaint/internal/script"
)

func newRenderCmd(flags *globalFlags) *cobra.Command {
	var (
		output  string
		size    int
		scale   int
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "render <script.lua>",
		Short: "Run a Lua drawing script and export the canvas",
		Long: "render runs a Lua script against a fresh canvas without opening the\n" +
			"terminal UI, then exports the result. The script drives the canvas\n" +
			"through the global grid table.",
		Example: "  gridpaint render logo.lua -o logo.png --size 32 --scale 8",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src := args[0]
			if output == "" {
				output = strings.TrimSuffix(src, filepath.Ext(src)) + ".png"
			}

			overrides := flags.overrides()
			overrides["export.path"] = output
			if cmd.Flags().Changed("size") {
				overrides["canvas.size"] = size
			}
			if cmd.Flags().Changed("scale") {
				overrides["export.scale"] = scale
			}

			application, err := app.New(app.Options{
				ConfigPath: flags.path(),
				Overrides:  overrides,
			})
			if err != nil {
				return err
			}
			defer application.Close()

			runner := script.NewRunner(application.Engine(),
				script.WithOutput(cmd.ErrOrStderr()),
				script.WithTimeout(timeout),
			)
			defer runner.Close()

			if err := runner.RunFile(cmd.Context(), src); err != nil {
				return err
			}

			path, err := application.Export("")
			if err != nil {
				return err
			}

			eng := application.Engine()
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d cells, %d operations)\n",
				path, eng.Cols(), eng.Rows(), runner.Operations())
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output image (default <script>.png)")
	cmd.Flags().IntVarP(&size, "size", "s", 0, "canvas size in cells (overrides canvas.size)")
	cmd.Flags().IntVar(&scale, "scale", 1, "pixels per cell in the exported image")
	cmd.Flags().DurationVar(&timeout, "timeout", script.DefaultTimeout, "abort the script after this long")
	return cmd
}
