package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/swiss-tournament/models"
	"github.com/lib/pq"
)

var (
	ErrMatchPlayerInvalid = errors.New("match references an unknown player")
	ErrMatchSelfPlay      = errors.New("match winner and loser must differ")
)

type MatchRepository interface {
	Create(ctx context.Context, exec SQLExecutor, match *models.Match) error
	List(ctx context.Context) ([]*models.Match, error)
	Count(ctx context.Context) (int, error)
	HasPlayed(ctx context.Context, playerA, playerB int) (bool, error)
	DeleteAll(ctx context.Context, exec SQLExecutor) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) Create(ctx context.Context, exec SQLExecutor, match *models.Match) error {
	query := `
		INSERT INTO matches (winner_id, loser_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := getExecutor(exec, r.db).QueryRowContext(ctx, query, match.WinnerID, match.LoserID).
		Scan(&match.ID, &match.CreatedAt)
	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) List(ctx context.Context) ([]*models.Match, error) {
	query := `SELECT id, winner_id, loser_id, created_at FROM matches ORDER BY id ASC`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query matches: %w", err)
	}
	defer rows.Close()

	matches := make([]*models.Match, 0)
	for rows.Next() {
		var m models.Match
		if scanErr := rows.Scan(&m.ID, &m.WinnerID, &m.LoserID, &m.CreatedAt); scanErr != nil {
			return nil, fmt.Errorf("failed to scan match row: %w", scanErr)
		}
		matches = append(matches, &m)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error during match rows iteration: %w", err)
	}
	return matches, nil
}

func (r *postgresMatchRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM matches`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}

// HasPlayed reports whether any match exists between the two players, whoever won.
func (r *postgresMatchRepository) HasPlayed(ctx context.Context, playerA, playerB int) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM matches
			WHERE (winner_id = $1 AND loser_id = $2)
			   OR (winner_id = $2 AND loser_id = $1)
		)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, playerA, playerB).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check match %d vs %d: %w", playerA, playerB, err)
	}
	return exists, nil
}

func (r *postgresMatchRepository) DeleteAll(ctx context.Context, exec SQLExecutor) error {
	if _, err := getExecutor(exec, r.db).ExecContext(ctx, `DELETE FROM matches`); err != nil {
		return fmt.Errorf("failed to delete matches: %w", err)
	}
	return nil
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		// "23503": foreign_key_violation, "23514": check_violation
		switch pqErr.Constraint {
		case "matches_winner_id_fkey", "matches_loser_id_fkey":
			return ErrMatchPlayerInvalid
		case "matches_distinct_players":
			return ErrMatchSelfPlay
		}
	}
	return fmt.Errorf("failed to insert match: %w", err)
}
