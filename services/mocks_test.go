package services

import (
	"context"
	"io"

	"github.com/Dosada05/tournament-ops/models"
	"github.com/Dosada05/tournament-ops/storage"
	"github.com/stretchr/testify/mock"
)

type mockPlayerRepo struct {
	mock.Mock
}

func (m *mockPlayerRepo) GetByID(ctx context.Context, id int) (*models.Player, error) {
	args := m.Called(ctx, id)
	player, _ := args.Get(0).(*models.Player)
	return player, args.Error(1)
}

func (m *mockPlayerRepo) ListByTierAndIDs(ctx context.Context, tier models.SkillTier, ids []int) ([]models.Player, error) {
	args := m.Called(ctx, tier, ids)
	players, _ := args.Get(0).([]models.Player)
	return players, args.Error(1)
}

func (m *mockPlayerRepo) List(ctx context.Context, tier *models.SkillTier) ([]models.Player, error) {
	args := m.Called(ctx, tier)
	players, _ := args.Get(0).([]models.Player)
	return players, args.Error(1)
}

type mockBroadcaster struct {
	mock.Mock
}

func (m *mockBroadcaster) BroadcastToRoom(roomID string, message interface{}) {
	m.Called(roomID, message)
}

type mockUploader struct {
	mock.Mock
}

func (m *mockUploader) Upload(ctx context.Context, key string, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	body, _ := io.ReadAll(reader)
	args := m.Called(ctx, key, contentType, body)
	res, _ := args.Get(0).(*storage.UploadResult)
	return res, args.Error(1)
}

func (m *mockUploader) GetPublicURL(key string) string {
	return m.Called(key).String(0)
}
