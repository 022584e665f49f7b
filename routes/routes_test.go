package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/tournament-ops/balancer"
	"github.com/Dosada05/tournament-ops/handlers"
	"github.com/Dosada05/tournament-ops/models"
	"github.com/Dosada05/tournament-ops/realtime"
	"github.com/Dosada05/tournament-ops/services"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "routes-test-secret"

type mockLineupService struct {
	mock.Mock
}

func (m *mockLineupService) AssembleLineup(ctx context.Context, input services.AssembleLineupInput) (*services.Lineup, error) {
	args := m.Called(ctx, input)
	lineup, _ := args.Get(0).(*services.Lineup)
	return lineup, args.Error(1)
}

type mockPlayerService struct {
	mock.Mock
}

func (m *mockPlayerService) ListPlayers(ctx context.Context, tier *models.SkillTier) ([]models.Player, error) {
	args := m.Called(ctx, tier)
	players, _ := args.Get(0).([]models.Player)
	return players, args.Error(1)
}

func (m *mockPlayerService) GetPlayer(ctx context.Context, id int) (*models.Player, error) {
	args := m.Called(ctx, id)
	player, _ := args.Get(0).(*models.Player)
	return player, args.Error(1)
}

type testServer struct {
	router  chi.Router
	lineups *mockLineupService
	players *mockPlayerService
	hub     *realtime.Hub
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	hub := realtime.NewHub(logger)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		_ = hub.Run(ctx)
		close(done)
	}()

	ts := &testServer{
		router:  chi.NewRouter(),
		lineups: new(mockLineupService),
		players: new(mockPlayerService),
		hub:     hub,
	}
	SetupRoutes(ts.router,
		Config{JWTSecretKey: testSecret, AllowedOrigins: []string{"*"}},
		handlers.NewPlayerHandler(ts.players),
		handlers.NewLineupHandler(ts.lineups),
		handlers.NewWebSocketHandler(hub, []string{"*"}, logger),
	)

	t.Cleanup(func() {
		cancel()
		<-done
		ts.lineups.AssertExpectations(t)
		ts.players.AssertExpectations(t)
	})
	return ts
}

func (ts *testServer) do(t *testing.T, method, path, body, token string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func token(t *testing.T, userID int, role models.UserRole) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"role":    string(role),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var body map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var msg string
	require.NoError(t, json.Unmarshal(decodeBody(t, rec)["error"], &msg))
	return msg
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)
	rec := ts.do(t, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAssembleLineupCreated(t *testing.T) {
	ts := newTestServer(t)
	lineup := &services.Lineup{
		ID:           uuid.New(),
		TournamentID: 5,
		TeamSize:     2,
		Seed:         42,
		Teams: []balancer.Team{{
			Name: "ace & rookie",
			Members: []balancer.Member{
				{PlayerID: 1, Name: "ace", Tier: models.TierPro},
				{PlayerID: 2, Name: "rookie", Tier: models.TierUltraNoob},
			},
		}},
	}

	ts.lineups.On("AssembleLineup", mock.Anything, services.AssembleLineupInput{
		TournamentID: 5,
		RequestedBy:  11,
		TeamSize:     2,
		Selections:   map[string][]int{"pro": {1}, "ultra_noob": {2}},
		Seed:         func() *int64 { v := int64(42); return &v }(),
	}).Return(lineup, nil).Once()

	rec := ts.do(t, http.MethodPost, "/tournaments/5/lineups",
		`{"team_size": 2, "selections": {"pro": [1], "ultra_noob": [2]}, "seed": 42}`,
		token(t, 11, models.RoleOrganizer))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var got struct {
		Lineup struct {
			ID       string          `json:"id"`
			TeamSize int             `json:"team_size"`
			Teams    []balancer.Team `json:"teams"`
		} `json:"lineup"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, lineup.ID.String(), got.Lineup.ID)
	assert.Equal(t, 2, got.Lineup.TeamSize)
	require.Len(t, got.Lineup.Teams, 1)
	assert.Equal(t, "ace & rookie", got.Lineup.Teams[0].Name)
	assert.Equal(t, models.TierUltraNoob, got.Lineup.Teams[0].Members[1].Tier)
	assert.Zero(t, got.Lineup.Teams[0].Members[0].Kills)
}

func TestAssembleLineupErrors(t *testing.T) {
	tests := []struct {
		name       string
		serviceErr error
		wantStatus int
		wantError  string
	}{
		{"no players", balancer.ErrNoPlayersSelected, http.StatusUnprocessableEntity, "select at least one player"},
		{"unsupported size", &balancer.UnsupportedSizeError{Size: 7}, http.StatusUnprocessableEntity, "unsupported team size: 7 (supported sizes are 1-4)"},
		{"unknown tier", errors.Join(services.ErrValidationFailed, errors.New("unknown skill tier \"legend\"")), http.StatusBadRequest, ""},
		{"roster failure", services.ErrRosterLoadFailed, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			ts.lineups.On("AssembleLineup", mock.Anything, mock.Anything).Return(nil, tt.serviceErr).Once()

			rec := ts.do(t, http.MethodPost, "/tournaments/3/lineups",
				`{"team_size": 7, "selections": {"pro": [1]}}`, token(t, 1, models.RoleAdmin))
			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantError != "" {
				assert.Equal(t, tt.wantError, errorMessage(t, rec))
			}
		})
	}
}

func TestAssembleLineupRejectsBadRequests(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		token      func(t *testing.T) string
		wantStatus int
	}{
		{"no token", "/tournaments/1/lineups", `{"team_size": 2}`, func(*testing.T) string { return "" }, http.StatusUnauthorized},
		{"player role", "/tournaments/1/lineups", `{"team_size": 2}`, func(t *testing.T) string { return token(t, 1, models.RolePlayer) }, http.StatusForbidden},
		{"bad tournament id", "/tournaments/abc/lineups", `{"team_size": 2}`, func(t *testing.T) string { return token(t, 1, models.RoleOrganizer) }, http.StatusBadRequest},
		{"malformed json", "/tournaments/1/lineups", `{"team_size": `, func(t *testing.T) string { return token(t, 1, models.RoleOrganizer) }, http.StatusBadRequest},
		{"unknown field", "/tournaments/1/lineups", `{"team_size": 2, "mode": "ranked"}`, func(t *testing.T) string { return token(t, 1, models.RoleOrganizer) }, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)
			rec := ts.do(t, http.MethodPost, tt.path, tt.body, tt.token(t))
			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			ts.lineups.AssertNotCalled(t, "AssembleLineup", mock.Anything, mock.Anything)
		})
	}
}

func TestListPlayers(t *testing.T) {
	ts := newTestServer(t)
	pro := models.TierPro
	ts.players.On("ListPlayers", mock.Anything, &pro).
		Return([]models.Player{{ID: 1, Nickname: "ace", Tier: models.TierPro}}, nil).Once()

	rec := ts.do(t, http.MethodGet, "/players?tier=pro", "", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var got struct {
		Players []models.Player `json:"players"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got.Players, 1)
	assert.Equal(t, models.TierPro, got.Players[0].Tier)

	rec = ts.do(t, http.MethodGet, "/players?tier=legend", "", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetPlayer(t *testing.T) {
	ts := newTestServer(t)
	ts.players.On("GetPlayer", mock.Anything, 1).Return(&models.Player{ID: 1, Nickname: "ace", Tier: models.TierUltraPro}, nil).Once()
	ts.players.On("GetPlayer", mock.Anything, 2).Return(nil, services.ErrPlayerNotFound).Once()

	assert.Equal(t, http.StatusOK, ts.do(t, http.MethodGet, "/players/1", "", "").Code)
	assert.Equal(t, http.StatusNotFound, ts.do(t, http.MethodGet, "/players/2", "", "").Code)
	assert.Equal(t, http.StatusBadRequest, ts.do(t, http.MethodGet, "/players/zero", "", "").Code)
}

func TestWebSocketReceivesRoomMessages(t *testing.T) {
	ts := newTestServer(t)
	server := httptest.NewServer(ts.router)
	defer server.Close()

	url := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws/tournaments/8"
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	room := realtime.TournamentRoom(8)
	require.Eventually(t, func() bool { return ts.hub.RoomSize(room) == 1 }, time.Second, 5*time.Millisecond)

	services.NewRoomNotifier(ts.hub).Notify(context.Background(), 8, "select at least one player")

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var msg struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
		RoomID  string            `json:"room_id"`
	}
	require.NoError(t, json.Unmarshal(raw, &msg))
	assert.Equal(t, realtime.TypeNotification, msg.Type)
	assert.Equal(t, "select at least one player", msg.Payload["message"])
	assert.Equal(t, room, msg.RoomID)
}
