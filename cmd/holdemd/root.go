package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/weedbox/holdem/config"
)

func newRootCmd() *cobra.Command {
	v := config.New()

	rootCmd := &cobra.Command{
		Use:           "holdemd",
		Short:         "Texas Hold'em table server and equity tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	_ = v.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))

	rootCmd.AddCommand(
		newServeCmd(v),
		newMigrateCmd(v),
		newGenPreflopTableCmd(v),
	)

	return rootCmd
}

// bindFlags binds a command's flags when it runs, since several commands
// share a viper key.
func bindFlags(v *viper.Viper, cmd *cobra.Command, keys map[string]string) {
	for key, name := range keys {
		if f := cmd.Flags().Lookup(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

// loadConfig reads the merged flags and environment and sets up logging.
func loadConfig(v *viper.Viper) (*config.Config, error) {
	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}

	zerolog.SetGlobalLevel(cfg.LogLevel)
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().
		Timestamp().
		Logger()

	return cfg, nil
}
