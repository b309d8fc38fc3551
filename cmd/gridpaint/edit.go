package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dshills/gridpaint/internal/app"
	"github.com/dshills/gridpaint/internal/renderer/backend"
)

func newEditCmd(flags *globalFlags) *cobra.Command {
	var (
		size  int
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Open the interactive editor",
		Example: "  gridpaint edit --size 32\n" +
			"  gridpaint --config art.toml --watch",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			overrides := flags.overrides()
			if cmd.Flags().Changed("size") {
				overrides["canvas.size"] = size
			}
			return runEditor(cmd.Context(), app.Options{
				ConfigPath: flags.path(),
				Overrides:  overrides,
				Watch:      watch,
			})
		},
	}

	cmd.Flags().IntVarP(&size, "size", "s", 0, "canvas size in cells (overrides canvas.size)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "reload the config file when it changes")
	return cmd
}

// runEditor runs the terminal editor until the user quits or a signal
// arrives.
func runEditor(ctx context.Context, opts app.Options) error {
	application, err := app.New(opts)
	if err != nil {
		return err
	}
	defer application.Close()

	term, err := backend.NewTerminal()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	if err := application.SetBackend(term); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		application.Shutdown()
	}()

	return application.Run()
}
