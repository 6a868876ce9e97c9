package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/repositories"
	"github.com/Dosada05/swiss-tournament/storage"
	"github.com/google/uuid"
)

type AdminService interface {
	ResetAll(ctx context.Context) error
	DeleteMatches(ctx context.Context) error
	ExportStandings(ctx context.Context) (*storage.UploadResult, error)
}

// StandingsExport is the document written to object storage.
type StandingsExport struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Players     int                    `json:"players"`
	Matches     int                    `json:"matches"`
	Standings   []models.StandingEntry `json:"standings"`
}

type adminService struct {
	transactor repositories.Transactor
	playerRepo repositories.PlayerRepository
	matchRepo  repositories.MatchRepository
	standings  StandingsService
	uploader   storage.FileUploader // nil when export is not configured
	publisher  brackets.Publisher
	logger     *slog.Logger
	now        func() time.Time
}

func NewAdminService(
	transactor repositories.Transactor,
	playerRepo repositories.PlayerRepository,
	matchRepo repositories.MatchRepository,
	standings StandingsService,
	uploader storage.FileUploader,
	publisher brackets.Publisher,
	logger *slog.Logger,
) AdminService {
	return &adminService{
		transactor: transactor,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		standings:  standings,
		uploader:   uploader,
		publisher:  publisher,
		logger:     logger,
		now:        time.Now,
	}
}

// ResetAll removes every match and then every player in one transaction.
func (s *adminService) ResetAll(ctx context.Context) error {
	err := s.transactor.WithinTx(ctx, func(exec repositories.SQLExecutor) error {
		if err := s.matchRepo.DeleteAll(ctx, exec); err != nil {
			return err
		}
		return s.playerRepo.DeleteAll(ctx, exec)
	})
	if err != nil {
		return fmt.Errorf("%w: reset tournament: %w", ErrStorageFailure, err)
	}

	s.logger.Info("tournament reset")
	publish(s.publisher, models.EventTournamentReset, nil)
	return nil
}

func (s *adminService) DeleteMatches(ctx context.Context) error {
	if err := s.matchRepo.DeleteAll(ctx, nil); err != nil {
		return fmt.Errorf("%w: delete matches: %w", ErrStorageFailure, err)
	}

	s.logger.Info("all matches deleted")
	publish(s.publisher, models.EventTournamentReset, map[string]bool{"players_kept": true})
	return nil
}

func (s *adminService) ExportStandings(ctx context.Context) (*storage.UploadResult, error) {
	if s.uploader == nil {
		return nil, ErrExportDisabled
	}

	snap, err := s.standings.Snapshot(ctx)
	if err != nil {
		return nil, err
	}

	generatedAt := s.now().UTC()
	body, err := json.Marshal(StandingsExport{
		GeneratedAt: generatedAt,
		Players:     len(snap.Players),
		Matches:     len(snap.Matches),
		Standings:   snap.Standings,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode standings export: %w", err)
	}

	key := fmt.Sprintf("standings/%s-%s.json", generatedAt.Format("20060102T150405Z"), uuid.New().String())
	result, err := s.uploader.Upload(ctx, key, "application/json", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: upload standings: %w", ErrStorageFailure, err)
	}

	s.logger.Info("standings exported", slog.String("key", result.Key), slog.String("location", result.Location))
	return result, nil
}
