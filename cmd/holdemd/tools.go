package main

import (
	"errors"
	"os"
	"runtime"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/weedbox/holdem/equity"
	"github.com/weedbox/holdem/store"
)

func newMigrateCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Create the games table",
		RunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(v, cmd, map[string]string{"database_url": "database-url"})

			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			if cfg.DatabaseURL == "" {
				return errors.New("migrate: database_url is required")
			}

			db, err := store.OpenPostgres(cmd.Context(), cfg.DatabaseURL)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := db.Migrate(cmd.Context()); err != nil {
				return err
			}

			log.Info().Msg("schema is up to date")
			return nil
		},
	}

	cmd.Flags().String("database-url", "", "PostgreSQL DSN")

	return cmd
}

func newGenPreflopTableCmd(v *viper.Viper) *cobra.Command {
	var workers int

	cmd := &cobra.Command{
		Use:   "gen-preflop-table",
		Short: "Enumerate every heads-up preflop matchup into a lookup table",
		RunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(v, cmd, map[string]string{"preflop_table_path": "out"})

			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			if cfg.PreflopTablePath == "" {
				return errors.New("gen-preflop-table: --out is required")
			}

			table, err := equity.GeneratePreflopTable(cmd.Context(), workers, log.Logger)
			if err != nil {
				return err
			}

			f, err := os.Create(cfg.PreflopTablePath)
			if err != nil {
				return err
			}
			defer f.Close()

			if err := table.Save(f); err != nil {
				return err
			}

			log.Info().Str("path", cfg.PreflopTablePath).Msg("preflop table written")
			return nil
		},
	}

	cmd.Flags().String("out", "", "output file")
	cmd.Flags().IntVar(&workers, "workers", runtime.NumCPU(), "parallel workers")

	return cmd
}
