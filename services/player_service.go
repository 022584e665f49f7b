package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-ops/models"
	"github.com/Dosada05/tournament-ops/repositories"
)

type PlayerService interface {
	// ListPlayers возвращает активный ростер; tier == nil - все уровни.
	ListPlayers(ctx context.Context, tier *models.SkillTier) ([]models.Player, error)
	GetPlayer(ctx context.Context, id int) (*models.Player, error)
}

type playerService struct {
	playerRepo repositories.PlayerRepository
}

func NewPlayerService(playerRepo repositories.PlayerRepository) PlayerService {
	return &playerService{playerRepo: playerRepo}
}

func (s *playerService) ListPlayers(ctx context.Context, tier *models.SkillTier) ([]models.Player, error) {
	if tier != nil && !tier.Valid() {
		return nil, fmt.Errorf("%w: invalid tier %d", ErrValidationFailed, int(*tier))
	}
	players, err := s.playerRepo.List(ctx, tier)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRosterLoadFailed, err)
	}
	return players, nil
}

func (s *playerService) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: player id must be positive", ErrValidationFailed)
	}
	player, err := s.playerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrPlayerNotFound) {
			return nil, ErrPlayerNotFound
		}
		return nil, err
	}
	return player, nil
}
