package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/services"
)

type RoundHandler struct {
	tournamentService services.TournamentService
}

func NewRoundHandler(tournamentService services.TournamentService) *RoundHandler {
	return &RoundHandler{tournamentService: tournamentService}
}

// Standings godoc
// @Summary Current standings
// @Tags rounds
// @Produce json
// @Param key query string false "Ranking key: points or wins"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /standings [get]
func (h *RoundHandler) Standings(w http.ResponseWriter, r *http.Request) {
	key := brackets.RankingKey("")
	if raw := r.URL.Query().Get("key"); raw != "" {
		parsed, err := brackets.ParseRankingKey(raw)
		if err != nil {
			badRequestResponse(w, r, err)
			return
		}
		key = parsed
	}

	standings, err := h.tournamentService.Standings(r.Context(), key)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if standings == nil {
		standings = []models.Standing{}
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PreviewPairings godoc
// @Summary Compute the pairings for a round without recording them
// @Tags rounds
// @Produce json
// @Param round path int true "Round number, starting at 1"
// @Success 200 {object} models.RoundPairings
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rounds/{round}/pairings [get]
func (h *RoundHandler) PreviewPairings(w http.ResponseWriter, r *http.Request) {
	round, err := getIntParam(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pairings, err := h.tournamentService.PreviewPairings(r.Context(), round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"round": pairings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// StartRound godoc
// @Summary Start a round: compute pairings and record the bye
// @Tags rounds
// @Produce json
// @Security BearerAuth
// @Param round path int true "Round number, starting at 1"
// @Success 201 {object} models.RoundPairings
// @Failure 400 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rounds/{round}/pairings [post]
func (h *RoundHandler) StartRound(w http.ResponseWriter, r *http.Request) {
	round, err := getIntParam(r, "round")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	pairings, err := h.tournamentService.StartRound(r.Context(), round)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"round": pairings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
