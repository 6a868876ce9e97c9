package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

type MatchService interface {
	ReportMatch(ctx context.Context, winnerID, loserID int) (*models.Match, error)
	ListMatches(ctx context.Context) ([]*models.Match, error)
	CountMatches(ctx context.Context) (int, error)
	CheckMatch(ctx context.Context, playerA, playerB int) (bool, error)
}

type matchService struct {
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	standings  StandingsService
	publisher  brackets.Publisher
	logger     *slog.Logger
}

func NewMatchService(
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
	publisher brackets.Publisher,
	logger *slog.Logger,
) MatchService {
	return &matchService{
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		standings:  standings,
		publisher:  publisher,
		logger:     logger,
	}
}

// ReportMatch records a finished match. Rematches are accepted; only pairing
// avoids them.
func (s *matchService) ReportMatch(ctx context.Context, winnerID, loserID int) (*models.Match, error) {
	if winnerID <= 0 || loserID <= 0 {
		return nil, fmt.Errorf("%w: player ids must be positive", ErrValidationFailed)
	}
	if winnerID == loserID {
		return nil, ErrMatchSelfPlay
	}
	for _, id := range []int{winnerID, loserID} {
		if _, err := s.playerRepo.GetByID(ctx, id); err != nil {
			if errors.Is(err, repositories.ErrPlayerNotFound) {
				return nil, fmt.Errorf("%w: id %d", ErrPlayerNotFound, id)
			}
			return nil, fmt.Errorf("%w: load player %d: %w", ErrStorageFailure, id, err)
		}
	}

	match := &models.Match{WinnerID: winnerID, LoserID: loserID}
	if err := s.matchRepo.Create(ctx, nil, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchSelfPlay):
			return nil, ErrMatchSelfPlay
		case errors.Is(err, repositories.ErrMatchPlayerInvalid):
			// Игрок удалён между проверкой и вставкой.
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("%w: record match: %w", ErrStorageFailure, err)
	}

	s.logger.Info("match reported",
		slog.Int("match_id", match.ID),
		slog.Int("winner_id", winnerID),
		slog.Int("loser_id", loserID))
	publish(s.publisher, models.EventMatchReported, match)
	s.publishStandings(ctx)

	return match, nil
}

func (s *matchService) publishStandings(ctx context.Context) {
	if s.publisher == nil || s.standings == nil {
		return
	}
	standings, err := s.standings.Standings(ctx)
	if err != nil {
		s.logger.Warn("failed to refresh standings after match report", slog.Any("error", err))
		return
	}
	publish(s.publisher, models.EventStandingsUpdated, standings)
}

func (s *matchService) ListMatches(ctx context.Context) ([]*models.Match, error) {
	matches, err := s.matchRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list matches: %w", ErrStorageFailure, err)
	}
	if matches == nil {
		return []*models.Match{}, nil
	}
	return matches, nil
}

func (s *matchService) CountMatches(ctx context.Context) (int, error) {
	count, err := s.matchRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: count matches: %w", ErrStorageFailure, err)
	}
	return count, nil
}

func (s *matchService) CheckMatch(ctx context.Context, playerA, playerB int) (bool, error) {
	if playerA <= 0 || playerB <= 0 {
		return false, fmt.Errorf("%w: player ids must be positive", ErrValidationFailed)
	}
	played, err := s.matchRepo.HasPlayed(ctx, playerA, playerB)
	if err != nil {
		return false, fmt.Errorf("%w: check match: %w", ErrStorageFailure, err)
	}
	return played, nil
}
