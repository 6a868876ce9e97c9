package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
)

const maxPlayerNameLength = 255

type PlayerService interface {
	RegisterPlayer(ctx context.Context, name string) (*models.Player, error)
	CountPlayers(ctx context.Context) (int, error)
	ListPlayers(ctx context.Context) ([]*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
	publisher  brackets.Publisher
	logger     *slog.Logger
}

func NewPlayerService(playerRepo repositories.PlayerRepository, publisher brackets.Publisher, logger *slog.Logger) PlayerService {
	return &playerService{
		playerRepo: playerRepo,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *playerService) RegisterPlayer(ctx context.Context, name string) (*models.Player, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrPlayerNameRequired
	}
	if utf8.RuneCountInString(name) > maxPlayerNameLength {
		return nil, fmt.Errorf("%w: at most %d characters", ErrPlayerNameTooLong, maxPlayerNameLength)
	}

	player := &models.Player{Name: name}
	if err := s.playerRepo.Create(ctx, nil, player); err != nil {
		if errors.Is(err, repositories.ErrPlayerNameInvalid) {
			return nil, ErrPlayerNameRequired
		}
		return nil, fmt.Errorf("%w: register player: %w", ErrStorageFailure, err)
	}

	s.logger.Info("player registered", slog.Int("player_id", player.ID), slog.String("name", player.Name))
	publish(s.publisher, models.EventPlayerRegistered, player)
	return player, nil
}

func (s *playerService) CountPlayers(ctx context.Context) (int, error) {
	count, err := s.playerRepo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: count players: %w", ErrStorageFailure, err)
	}
	return count, nil
}

func (s *playerService) ListPlayers(ctx context.Context) ([]*models.Player, error) {
	players, err := s.playerRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list players: %w", ErrStorageFailure, err)
	}
	if players == nil {
		return []*models.Player{}, nil
	}
	return players, nil
}
