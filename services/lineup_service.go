package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Dosada05/tournament-ops/balancer"
	"github.com/Dosada05/tournament-ops/models"
	"github.com/Dosada05/tournament-ops/realtime"
	"github.com/Dosada05/tournament-ops/repositories"
	"github.com/Dosada05/tournament-ops/storage"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

type AssembleLineupInput struct {
	TournamentID int              `json:"-"`
	RequestedBy  int              `json:"-"`
	TeamSize     int              `json:"team_size"`
	Selections   map[string][]int `json:"selections"`
	Seed         *int64           `json:"seed,omitempty"`
}

// Lineup - результат сборки команд для турнира. Seed позволяет воспроизвести сборку.
type Lineup struct {
	ID           uuid.UUID             `json:"id"`
	TournamentID int                   `json:"tournament_id"`
	TeamSize     int                   `json:"team_size"`
	Seed         int64                 `json:"seed"`
	Teams        []balancer.Team       `json:"teams"`
	Passes       []balancer.PassReport `json:"passes"`
	ArchiveURL   string                `json:"archive_url,omitempty"`
	CreatedAt    time.Time             `json:"created_at"`
}

type LineupService interface {
	AssembleLineup(ctx context.Context, input AssembleLineupInput) (*Lineup, error)
}

type LineupServiceConfig struct {
	// FixedSeed, если задан, используется для сборок без явного seed.
	FixedSeed *int64
}

type lineupService struct {
	playerRepo  repositories.PlayerRepository
	notifier    Notifier
	broadcaster Broadcaster
	archive     storage.FileUploader // nil - архив отключён
	logger      *slog.Logger
	fixedSeed   *int64
	newSeed     func() int64
	now         func() time.Time
}

func NewLineupService(
	playerRepo repositories.PlayerRepository,
	notifier Notifier,
	broadcaster Broadcaster,
	archive storage.FileUploader,
	logger *slog.Logger,
	cfg LineupServiceConfig,
) LineupService {
	return &lineupService{
		playerRepo:  playerRepo,
		notifier:    notifier,
		broadcaster: broadcaster,
		archive:     archive,
		logger:      logger.With(slog.String("service", "lineup")),
		fixedSeed:   cfg.FixedSeed,
		newSeed:     func() int64 { return time.Now().UnixNano() },
		now:         time.Now,
	}
}

func (s *lineupService) AssembleLineup(ctx context.Context, input AssembleLineupInput) (*Lineup, error) {
	if input.TournamentID <= 0 {
		return nil, fmt.Errorf("%w: tournament id must be positive", ErrValidationFailed)
	}
	sel, err := parseSelection(input.Selections)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With(
		slog.Int("tournament_id", input.TournamentID),
		slog.Int("team_size", input.TeamSize),
	)

	// Размер проверяется до загрузки ростера: неверный запрос не стоит запросов к БД.
	if err := balancer.ValidateSize(input.TeamSize); err != nil {
		return nil, s.reject(ctx, logger, input.TournamentID, err)
	}

	roster, err := s.loadRoster(ctx, sel)
	if err != nil {
		return nil, err
	}

	seed := s.seedFor(input)
	logger = logger.With(slog.Int64("seed", seed))

	result, err := balancer.Assemble(balancer.NewSource(seed), roster, sel, input.TeamSize)
	if err != nil {
		if errors.Is(err, balancer.ErrNoPlayersSelected) || errors.Is(err, balancer.ErrUnsupportedTeamSize) {
			return nil, s.reject(ctx, logger, input.TournamentID, err)
		}
		return nil, fmt.Errorf("failed to assemble lineup: %w", err)
	}

	lineup := &Lineup{
		ID:           uuid.New(),
		TournamentID: input.TournamentID,
		TeamSize:     input.TeamSize,
		Seed:         seed,
		Teams:        result.Teams,
		Passes:       result.Passes,
		CreatedAt:    s.now().UTC(),
	}
	logger = logger.With(slog.String("assembly_id", lineup.ID.String()))

	for _, p := range result.Passes {
		attrs := []any{slog.String("pass", p.Name), slog.Int("swaps", p.Swaps), slog.Int("remaining", p.Remaining)}
		if p.Stalled {
			logger.Warn("rebalancing pass stalled", attrs...)
			continue
		}
		logger.Debug("rebalancing pass finished", attrs...)
	}

	s.archiveLineup(ctx, logger, lineup)

	room := realtime.TournamentRoom(input.TournamentID)
	s.broadcaster.BroadcastToRoom(room, realtime.Message{
		Type:    realtime.TypeLineupAssembled,
		Payload: lineup,
		RoomID:  room,
	})

	logger.Info("lineup assembled",
		slog.Int("teams", len(lineup.Teams)),
		slog.Int("requested_by", input.RequestedBy),
	)
	return lineup, nil
}

// reject уведомляет комнату турнира об отказе движка и возвращает ошибку без изменений.
func (s *lineupService) reject(ctx context.Context, logger *slog.Logger, tournamentID int, err error) error {
	logger.Info("lineup rejected", slog.String("reason", err.Error()))
	s.notifier.Notify(ctx, tournamentID, err.Error())
	return err
}

func (s *lineupService) seedFor(input AssembleLineupInput) int64 {
	switch {
	case input.Seed != nil:
		return *input.Seed
	case s.fixedSeed != nil:
		return *s.fixedSeed
	default:
		return s.newSeed()
	}
}

func parseSelection(raw map[string][]int) (balancer.Selection, error) {
	sel := make(balancer.Selection, len(raw))
	for key, ids := range raw {
		tier, err := models.ParseSkillTier(key)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrValidationFailed, err)
		}
		sel[tier] = ids
	}
	return sel, nil
}

// loadRoster загружает выбранных игроков всех уровней параллельно.
func (s *lineupService) loadRoster(ctx context.Context, sel balancer.Selection) (balancer.Roster, error) {
	loaded := make([][]models.Player, len(models.Tiers))

	g, gctx := errgroup.WithContext(ctx)
	for i, tier := range models.Tiers {
		ids := sel[tier]
		if len(ids) == 0 {
			continue
		}
		g.Go(func() error {
			players, err := s.playerRepo.ListByTierAndIDs(gctx, tier, ids)
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrRosterLoadFailed, tier, err)
			}
			loaded[i] = players
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	roster := make(balancer.Roster, len(models.Tiers))
	for i, tier := range models.Tiers {
		roster[tier] = loaded[i]
	}
	return roster, nil
}

// archiveLineup сохраняет лист состава в хранилище. Ошибка не прерывает сборку.
func (s *lineupService) archiveLineup(ctx context.Context, logger *slog.Logger, lineup *Lineup) {
	if s.archive == nil {
		return
	}

	sheet, err := json.Marshal(lineup)
	if err != nil {
		logger.Error("failed to encode lineup sheet", slog.Any("error", err))
		return
	}

	key := storage.LineupSheetKey(lineup.TournamentID, lineup.ID)
	res, err := s.archive.Upload(ctx, key, storage.ContentTypeJSON, bytes.NewReader(sheet))
	if err != nil {
		logger.Warn("failed to archive lineup sheet", slog.String("key", key), slog.Any("error", err))
		return
	}
	lineup.ArchiveURL = res.Location
}
