package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-ops/models"
	"github.com/Dosada05/tournament-ops/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(playerService services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: playerService}
}

// ListPlayers - GET /players?tier=pro
func (h *PlayerHandler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	var tier *models.SkillTier
	if raw := r.URL.Query().Get("tier"); raw != "" {
		parsed, err := models.ParseSkillTier(raw)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		tier = &parsed
	}

	players, err := h.playerService.ListPlayers(r.Context(), tier)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetPlayer - GET /players/{playerID}
func (h *PlayerHandler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	playerID, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.GetPlayer(r.Context(), playerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
