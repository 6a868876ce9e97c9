package services

import (
	"context"
	"log/slog"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
)

type PairingService interface {
	SwissPairings(ctx context.Context) (*models.PairingRound, error)
}

type pairingService struct {
	standings StandingsService
	generator brackets.PairingGenerator
	logger    *slog.Logger
}

func NewPairingService(standings StandingsService, generator brackets.PairingGenerator, logger *slog.Logger) PairingService {
	return &pairingService{
		standings: standings,
		generator: generator,
		logger:    logger,
	}
}

// SwissPairings pairs the next round. The rematch check answers from the same
// match rows the ranking was built from, so a concurrent report cannot make
// the two disagree.
func (s *pairingService) SwissPairings(ctx context.Context) (*models.PairingRound, error) {
	snap, err := s.standings.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	played := brackets.NewPlayedIndex(snap.Matches)
	pairings := s.generator.GeneratePairings(snap.Standings, played.HasPlayed)
	unpaired := brackets.UnpairedPlayers(snap.Standings, pairings)

	if len(unpaired) > 0 {
		ids := make([]int, 0, len(unpaired))
		for _, u := range unpaired {
			ids = append(ids, u.PlayerID)
		}
		s.logger.Info("players left without an opponent",
			slog.String("generator", s.generator.GetName()),
			slog.Any("player_ids", ids))
	}

	return &models.PairingRound{
		Pairings:  pairings,
		Unpaired:  unpaired,
		Completed: len(unpaired) == 0,
	}, nil
}
