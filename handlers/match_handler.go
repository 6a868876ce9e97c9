package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type MatchHandler struct {
	matchService services.MatchService
	adminService services.AdminService
}

func NewMatchHandler(ms services.MatchService, as services.AdminService) *MatchHandler {
	return &MatchHandler{
		matchService: ms,
		adminService: as,
	}
}

type reportMatchInput struct {
	WinnerID int `json:"winner_id"`
	LoserID  int `json:"loser_id"`
}

// CreateHandler godoc
// @Summary Записать результат матча
// @Tags matches
// @Description Повторные встречи допускаются; их избегает только жеребьёвка.
// @Accept json
// @Produce json
// @Param body body reportMatchInput true "Победитель и проигравший"
// @Success 201 {object} map[string]interface{} "Матч записан"
// @Failure 400 {object} map[string]string "Игрок против самого себя или неверные id"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 403 {object} map[string]string "Нет прав (не админ)"
// @Failure 404 {object} map[string]string "Игрок не найден"
// @Security BearerAuth
// @Router /matches [post]
func (h *MatchHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input reportMatchInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.matchService.ReportMatch(r.Context(), input.WinnerID, input.LoserID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler godoc
// @Summary Список матчей
// @Tags matches
// @Produce json
// @Success 200 {object} map[string]interface{} "matches"
// @Router /matches [get]
func (h *MatchHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	matches, err := h.matchService.ListMatches(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"matches": matches}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CheckHandler godoc
// @Summary Встречались ли два игрока
// @Tags matches
// @Produce json
// @Param player1 query int true "ID первого игрока"
// @Param player2 query int true "ID второго игрока"
// @Success 200 {object} map[string]interface{} "played"
// @Failure 400 {object} map[string]string "Неверные параметры"
// @Router /matches/check [get]
func (h *MatchHandler) CheckHandler(w http.ResponseWriter, r *http.Request) {
	p1, err := getIntQuery(r, "player1")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	p2, err := getIntQuery(r, "player2")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	played, err := h.matchService.CheckMatch(r.Context(), p1, p2)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"player1": p1, "player2": p2, "played": played}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// DeleteAllHandler godoc
// @Summary Удалить все матчи
// @Tags matches
// @Description Игроки остаются зарегистрированными.
// @Success 204 "Матчи удалены"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 403 {object} map[string]string "Нет прав (не админ)"
// @Security BearerAuth
// @Router /matches [delete]
func (h *MatchHandler) DeleteAllHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.DeleteMatches(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
