package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type AdminHandler struct {
	adminService services.AdminService
}

func NewAdminHandler(as services.AdminService) *AdminHandler {
	return &AdminHandler{adminService: as}
}

// ResetHandler godoc
// @Summary Сбросить турнир
// @Tags admin
// @Description Удаляет все матчи и всех игроков в одной транзакции.
// @Success 204 "Турнир сброшен"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 403 {object} map[string]string "Нет прав (не админ)"
// @Security BearerAuth
// @Router /admin/reset [post]
func (h *AdminHandler) ResetHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.adminService.ResetAll(r.Context()); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ExportHandler godoc
// @Summary Выгрузить таблицу в R2
// @Tags admin
// @Produce json
// @Success 201 {object} map[string]interface{} "export"
// @Failure 401 {object} map[string]string "Неавторизован"
// @Failure 501 {object} map[string]string "Экспорт не настроен"
// @Failure 503 {object} map[string]string "Хранилище недоступно"
// @Security BearerAuth
// @Router /admin/export [post]
func (h *AdminHandler) ExportHandler(w http.ResponseWriter, r *http.Request) {
	result, err := h.adminService.ExportStandings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"export": result}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
