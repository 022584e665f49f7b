package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Dosada05/tournament-ops/models"
	"github.com/lib/pq"
)

var ErrPlayerNotFound = errors.New("player not found")

// PlayerRepository - чтение ростера. Ростер ведёт внешний сервис, здесь он только читается.
type PlayerRepository interface {
	GetByID(ctx context.Context, id int) (*models.Player, error)
	// ListByTierAndIDs возвращает игроков уровня из ids, включая удалённых: их отсеивает движок.
	ListByTierAndIDs(ctx context.Context, tier models.SkillTier, ids []int) ([]models.Player, error)
	// List возвращает активных (не удалённых) игроков; tier == nil - все уровни.
	List(ctx context.Context, tier *models.SkillTier) ([]models.Player, error)
}

type postgresPlayerRepository struct {
	db *sql.DB
}

func NewPostgresPlayerRepository(db *sql.DB) PlayerRepository {
	return &postgresPlayerRepository{db: db}
}

func (r *postgresPlayerRepository) GetByID(ctx context.Context, id int) (*models.Player, error) {
	query := `SELECT id, nickname, tier, deleted, created_at FROM players WHERE id = $1`

	player, err := scanPlayer(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrPlayerNotFound
		}
		return nil, fmt.Errorf("failed to get player %d: %w", id, err)
	}
	return player, nil
}

func (r *postgresPlayerRepository) ListByTierAndIDs(ctx context.Context, tier models.SkillTier, ids []int) ([]models.Player, error) {
	if len(ids) == 0 {
		return []models.Player{}, nil
	}

	query := `
		SELECT id, nickname, tier, deleted, created_at
		FROM players
		WHERE tier = $1 AND id = ANY($2)
		ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, tier.String(), pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s players: %w", tier, err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func (r *postgresPlayerRepository) List(ctx context.Context, tier *models.SkillTier) ([]models.Player, error) {
	query := `SELECT id, nickname, tier, deleted, created_at FROM players WHERE NOT deleted`
	args := []interface{}{}
	if tier != nil {
		query += ` AND tier = $1`
		args = append(args, tier.String())
	}
	query += ` ORDER BY tier DESC, nickname`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	return collectPlayers(rows)
}

func scanPlayer(row rowScanner) (*models.Player, error) {
	var player models.Player
	var tier string
	if err := row.Scan(&player.ID, &player.Nickname, &tier, &player.Deleted, &player.CreatedAt); err != nil {
		return nil, err
	}
	parsed, err := models.ParseSkillTier(tier)
	if err != nil {
		return nil, fmt.Errorf("player %d: %w", player.ID, err)
	}
	player.Tier = parsed
	return &player, nil
}

func collectPlayers(rows *sql.Rows) ([]models.Player, error) {
	players := make([]models.Player, 0)
	for rows.Next() {
		player, err := scanPlayer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan player: %w", err)
		}
		players = append(players, *player)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate players: %w", err)
	}
	return players, nil
}
