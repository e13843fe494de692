package store

import (
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/weedbox/holdem"
)

//go:embed schema.sql
var schema embed.FS

type Postgres struct {
	pool *pgxpool.Pool
}

func OpenPostgres(ctx context.Context, dsn string) (*Postgres, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	return &Postgres{pool: pool}, nil
}

func (p *Postgres) Migrate(ctx context.Context) error {
	sqlBytes, err := schema.ReadFile("schema.sql")
	if err != nil {
		return err
	}
	_, err = p.pool.Exec(ctx, string(sqlBytes))
	return err
}

// SaveGame upserts the context; an older update serial never replaces a
// newer row.
func (p *Postgres) SaveGame(ctx context.Context, game *holdem.GameContext) error {
	state, err := json.Marshal(game)
	if err != nil {
		return err
	}

	_, err = p.pool.Exec(ctx, `
		INSERT INTO games (game_id, phase, hand_number, update_serial, state)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (game_id) DO UPDATE
		   SET phase = EXCLUDED.phase,
		       hand_number = EXCLUDED.hand_number,
		       update_serial = EXCLUDED.update_serial,
		       state = EXCLUDED.state,
		       updated_at = now()
		 WHERE games.update_serial <= EXCLUDED.update_serial
	`, game.GameID, string(game.CurrentPhase), game.HandNumber, game.UpdateSerial, state)
	if err != nil {
		return fmt.Errorf("store: save %s: %w", game.GameID, err)
	}

	return nil
}

func (p *Postgres) LoadGame(ctx context.Context, gameID string) (*holdem.GameContext, error) {
	var state []byte
	err := p.pool.QueryRow(ctx, `SELECT state FROM games WHERE game_id = $1`, gameID).Scan(&state)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrGameNotFound
		}
		return nil, err
	}

	var game holdem.GameContext
	if err := json.Unmarshal(state, &game); err != nil {
		return nil, fmt.Errorf("store: decode %s: %w", gameID, err)
	}

	return &game, nil
}

func (p *Postgres) DeleteGame(ctx context.Context, gameID string) error {
	tag, err := p.pool.Exec(ctx, `DELETE FROM games WHERE game_id = $1`, gameID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrGameNotFound
	}
	return nil
}

func (p *Postgres) ListGames(ctx context.Context) ([]string, error) {
	rows, err := p.pool.Query(ctx, `
		SELECT game_id
		  FROM games
		 WHERE phase <> $1
		 ORDER BY game_id
	`, string(holdem.Phase_Finished))
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (p *Postgres) Close() {
	p.pool.Close()
}
