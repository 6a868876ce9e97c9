package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type StandingsHandler struct {
	standingsService services.StandingsService
	pairingService   services.PairingService
}

func NewStandingsHandler(ss services.StandingsService, ps services.PairingService) *StandingsHandler {
	return &StandingsHandler{
		standingsService: ss,
		pairingService:   ps,
	}
}

// StandingsHandler godoc
// @Summary Турнирная таблица
// @Tags standings
// @Description Сортировка по победам, при равенстве по id.
// @Produce json
// @Success 200 {object} map[string]interface{} "standings"
// @Router /standings [get]
func (h *StandingsHandler) StandingsHandler(w http.ResponseWriter, r *http.Request) {
	standings, err := h.standingsService.Standings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"standings": standings}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// PairingsHandler godoc
// @Summary Пары следующего тура
// @Tags standings
// @Description Игрок без соперника попадает в unpaired, а не в ошибку.
// @Produce json
// @Success 200 {object} models.PairingRound
// @Router /pairings [get]
func (h *StandingsHandler) PairingsHandler(w http.ResponseWriter, r *http.Request) {
	round, err := h.pairingService.SwissPairings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, round, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
