package services

import (
	"context"
	"fmt"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"golang.org/x/sync/errgroup"
)

// TournamentSnapshot holds players, matches and the ranking computed from
// exactly those rows.
type TournamentSnapshot struct {
	Players   []*models.Player
	Matches   []*models.Match
	Standings []models.StandingEntry
}

type StandingsService interface {
	Standings(ctx context.Context) ([]models.StandingEntry, error)
	Snapshot(ctx context.Context) (*TournamentSnapshot, error)
}

type standingsService struct {
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
}

func NewStandingsService(playerRepo repositories.PlayerRepository, matchRepo repositories.MatchRepository) StandingsService {
	return &standingsService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
	}
}

func (s *standingsService) Standings(ctx context.Context) ([]models.StandingEntry, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Standings, nil
}

func (s *standingsService) Snapshot(ctx context.Context) (*TournamentSnapshot, error) {
	var (
		players []*models.Player
		matches []*models.Match
	)

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("%w: load players: %w", ErrStorageFailure, err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.List(gCtx)
		if err != nil {
			return fmt.Errorf("%w: load matches: %w", ErrStorageFailure, err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &TournamentSnapshot{
		Players:   players,
		Matches:   matches,
		Standings: brackets.CalculateStandings(players, matches),
	}, nil
}
