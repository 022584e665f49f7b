package handlers

import (
	"net/http"

	"github.com/Dosada05/tournament-ops/middleware"
	"github.com/Dosada05/tournament-ops/services"
)

type LineupHandler struct {
	lineupService services.LineupService
}

func NewLineupHandler(lineupService services.LineupService) *LineupHandler {
	return &LineupHandler{lineupService: lineupService}
}

// AssembleLineup собирает команды из выбранных игроков.
// POST /tournaments/{tournamentID}/lineups
func (h *LineupHandler) AssembleLineup(w http.ResponseWriter, r *http.Request) {
	tournamentID, err := getIDFromURL(r, "tournamentID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var input services.AssembleLineupInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.TournamentID = tournamentID

	if userID, err := middleware.GetUserIDFromContext(r.Context()); err == nil {
		input.RequestedBy = userID
	}

	lineup, err := h.lineupService.AssembleLineup(r.Context(), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"lineup": lineup}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
