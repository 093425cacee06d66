package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/weegigs/tally-go/support"
	"github.com/weegigs/tally-go/tally"
)

func main() {
	if err := newRootCommand(os.LookupEnv).Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand(lookup support.LookupEnv) *cobra.Command {
	var configFile string

	cmd := &cobra.Command{
		Use:           "tally",
		Short:         "Serve the tally counter API",
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := resolveConfig(cmd, configFile, lookup)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return run(ctx, cfg)
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&configFile, "config", "c", "", "YAML configuration file")
	flags.String("host", "", "interface to listen on")
	flags.IntP("port", "p", 0, "port to listen on (default 3000, env PORT)")
	flags.String("log-level", "", "error, warn, info or debug (env LOG_LEVEL)")
	flags.String("log-dir", "", "directory for combined.log and error.log (env LOG_DIR)")

	cmd.AddCommand(newVersionCommand())

	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the API version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", tally.Name, tally.Version)
		},
	}
}

// resolveConfig layers explicitly set flags over file and environment values.
func resolveConfig(cmd *cobra.Command, configFile string, lookup support.LookupEnv) (support.Config, error) {
	cfg, err := support.LoadConfig(configFile, lookup)
	if err != nil {
		return support.Config{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Host, _ = flags.GetString("host")
	}
	if flags.Changed("port") {
		cfg.Port, _ = flags.GetInt("port")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Changed("log-dir") {
		cfg.LogDir, _ = flags.GetString("log-dir")
	}

	return cfg, cfg.Validate()
}

func run(ctx context.Context, cfg support.Config) error {
	app, cleanup, err := initializeApplication(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	log.Logger = *app.Log

	if err := app.Run(ctx); err != nil {
		app.Log.Error().Err(err).Msg("server failed")
		return err
	}

	return nil
}
