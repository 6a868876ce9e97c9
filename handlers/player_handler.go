package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type PlayerHandler struct {
	playerService services.PlayerService
}

func NewPlayerHandler(ps services.PlayerService) *PlayerHandler {
	return &PlayerHandler{playerService: ps}
}

type registerPlayerInput struct {
	Name string `json:"name"`
}

// CreateHandler godoc
// @Summary Зарегистрировать игрока
// @Tags players
// @Description Добавляет игрока в турнир. Доступно только администратору.
// @Accept json
// @Produce json
// @Param body body registerPlayerInput true "Имя игрока"
// @Success 201 {object} map[string]interface{} "Игрок зарегистрирован"
// @Failure 400 {object} map[string]string "Пустое или слишком длинное имя"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 403 {object} map[string]string "Нет прав (не админ)"
// @Failure 503 {object} map[string]string "Хранилище недоступно"
// @Security BearerAuth
// @Router /players [post]
func (h *PlayerHandler) CreateHandler(w http.ResponseWriter, r *http.Request) {
	var input registerPlayerInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	player, err := h.playerService.RegisterPlayer(r.Context(), input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"player": player}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListHandler godoc
// @Summary Список игроков
// @Tags players
// @Produce json
// @Success 200 {object} map[string]interface{} "players"
// @Failure 503 {object} map[string]string "Хранилище недоступно"
// @Router /players [get]
func (h *PlayerHandler) ListHandler(w http.ResponseWriter, r *http.Request) {
	players, err := h.playerService.ListPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"players": players}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CountHandler godoc
// @Summary Количество игроков
// @Tags players
// @Produce json
// @Success 200 {object} map[string]int "count"
// @Router /players/count [get]
func (h *PlayerHandler) CountHandler(w http.ResponseWriter, r *http.Request) {
	count, err := h.playerService.CountPlayers(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"count": count}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
