package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/weedbox/holdem"
	"github.com/weedbox/holdem/actor"
	"github.com/weedbox/holdem/api"
	"github.com/weedbox/holdem/config"
	"github.com/weedbox/holdem/equity"
	"github.com/weedbox/holdem/store"
)

func newServeCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server and table actors",
		RunE: func(cmd *cobra.Command, args []string) error {
			bindFlags(v, cmd, map[string]string{
				"http_addr":          "http-addr",
				"database_url":       "database-url",
				"preflop_table_path": "preflop-table",
				"bot_think_time":     "bot-think-time",
			})

			cfg, err := loadConfig(v)
			if err != nil {
				return err
			}
			return serve(cmd.Context(), cfg)
		},
	}

	flags := cmd.Flags()
	flags.String("http-addr", ":8080", "listen address")
	flags.String("database-url", "", "PostgreSQL DSN; empty keeps games in memory")
	flags.String("preflop-table", "", "heads-up preflop table generated by gen-preflop-table")
	flags.Duration("bot-think-time", time.Second, "delay before a bot acts")

	return cmd
}

func openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	if cfg.DatabaseURL == "" {
		log.Warn().Msg("no database configured, games are kept in memory")
		return store.NewMemory(), nil
	}
	return store.OpenPostgres(ctx, cfg.DatabaseURL)
}

func loadPreflopTable(path string) (*equity.PreflopTable, error) {
	if path == "" {
		return nil, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return equity.LoadPreflopTable(f)
}

func serve(ctx context.Context, cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := openStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	preflop, err := loadPreflopTable(cfg.PreflopTablePath)
	if err != nil {
		return err
	}

	var manager holdem.Manager

	dispatcher := actor.NewDispatcher(func(gameID, playerID string, action holdem.Action) error {
		resp, err := manager.ProcessAction(gameID, playerID, action)
		if err != nil {
			return err
		}
		return resp.Result.Error
	}, actor.WithThinkTime(cfg.BotThinkTime), actor.WithLogger(log.Logger))

	callbacks := holdem.NewTableCallbacks()
	callbacks.OnEvents = func(gameID string, events []*holdem.Event) {
		for _, ev := range events {
			log.Debug().Str("game_id", gameID).Str("event", string(ev.Type)).Msg("event")
		}
	}
	callbacks.OnError = func(gameID string, err error) {
		log.Debug().Str("game_id", gameID).Err(err).Msg("request rejected")
	}
	dispatcher.Attach(callbacks)

	manager = holdem.NewManager(
		holdem.WithEngineOptions(cfg.EngineOptions()),
		holdem.WithCallbacks(callbacks),
		holdem.WithPersister(st),
		holdem.WithManagerLogger(log.Logger),
	)
	defer manager.Reset()

	restoreGames(ctx, manager, st)

	server := &http.Server{
		Addr: cfg.HTTPAddr,
		Handler: api.NewServer(manager,
			api.WithPreflopTable(preflop),
			api.WithIterations(cfg.EquityIterations),
			api.WithLogger(log.Logger),
		).Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}

// restoreGames brings back every unfinished game; failures are logged and
// skipped.
func restoreGames(ctx context.Context, manager holdem.Manager, st store.Store) {
	ids, err := st.ListGames(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to list stored games")
		return
	}

	for _, id := range ids {
		game, err := st.LoadGame(ctx, id)
		if err != nil {
			log.Error().Err(err).Str("game_id", id).Msg("failed to load game")
			continue
		}

		if err := manager.RestoreGame(game); err != nil {
			log.Error().Err(err).Str("game_id", id).Msg("failed to restore game")
			continue
		}

		log.Info().Str("game_id", id).Int("hand", game.HandNumber).Msg("game restored")
	}
}
