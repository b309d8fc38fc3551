package main

import (
	"github.com/spf13/cobra"

	"github.com/dshills/gridpaint/internal/config"
)

func newExportConfigCmd(flags *globalFlags) *cobra.Command {
	var (
		format   string
		defaults bool
	)

	cmd := &cobra.Command{
		Use:   "export-config",
		Short: "Print the effective configuration",
		Long: "export-config prints the configuration gridpaint would run with, after\n" +
			"the config file, GRIDPAINT_* environment variables and flags are applied.\n" +
			"The output is a valid config file.",
		Example: "  gridpaint export-config > ~/.config/gridpaint/gridpaint.toml\n" +
			"  gridpaint export-config --format yaml --defaults",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := config.Default()
			if !defaults {
				cfg := config.New(
					config.WithPath(flags.path()),
					config.WithOverrides(flags.overrides()),
				)
				defer cfg.Close()
				if err := cfg.Load(cmd.Context()); err != nil {
					return err
				}
				s = cfg.Settings()
			}

			data, err := config.Marshal(s, format)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", "output format (toml, yaml)")
	cmd.Flags().BoolVar(&defaults, "defaults", false, "print the built-in defaults only")
	return cmd
}
