package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
)

type migration struct {
	Name string
	Up   string
}

// migrations run in order; applied names are recorded in schema_migrations.
var migrations = []migration{
	{
		Name: "0001_create_players",
		Up: `
			CREATE TABLE IF NOT EXISTS players (
				id         SERIAL PRIMARY KEY,
				name       TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT players_name_check CHECK (length(btrim(name)) > 0)
			)`,
	},
	{
		Name: "0002_create_matches",
		Up: `
			CREATE TABLE IF NOT EXISTS matches (
				id         SERIAL PRIMARY KEY,
				winner_id  INTEGER NOT NULL,
				loser_id   INTEGER NOT NULL,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				CONSTRAINT matches_winner_id_fkey FOREIGN KEY (winner_id) REFERENCES players (id),
				CONSTRAINT matches_loser_id_fkey FOREIGN KEY (loser_id) REFERENCES players (id),
				CONSTRAINT matches_distinct_players CHECK (winner_id <> loser_id)
			)`,
	},
	{
		Name: "0003_index_matches_pair",
		Up: `
			CREATE INDEX IF NOT EXISTS idx_matches_pair
				ON matches (LEAST(winner_id, loser_id), GREATEST(winner_id, loser_id))`,
	},
}

// Migrate applies every migration that has not been recorded yet, each in its own transaction.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			name       TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	for _, m := range migrations {
		var applied bool
		if err := db.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM schema_migrations WHERE name = $1)`, m.Name,
		).Scan(&applied); err != nil {
			return fmt.Errorf("failed to check migration %s: %w", m.Name, err)
		}
		if applied {
			continue
		}

		if err := applyMigration(ctx, db, m); err != nil {
			return err
		}
		logger.Info("migration applied", slog.String("name", m.Name))
	}
	return nil
}

func applyMigration(ctx context.Context, db *sql.DB, m migration) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("migration %s: failed to begin transaction: %w", m.Name, err)
	}
	if _, err := tx.ExecContext(ctx, m.Up); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("migration %s failed: %w", m.Name, err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (name) VALUES ($1)`, m.Name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("failed to record migration %s: %w", m.Name, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("migration %s: failed to commit: %w", m.Name, err)
	}
	return nil
}
