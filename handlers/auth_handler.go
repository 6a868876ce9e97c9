package handlers

import (
	"net/http"

	"github.com/Dosada05/swiss-tournament/services"
)

type AuthHandler struct {
	authService services.AuthService
}

func NewAuthHandler(as services.AuthService) *AuthHandler {
	return &AuthHandler{authService: as}
}

type loginInput struct {
	Password string `json:"password"`
}

// LoginHandler godoc
// @Summary Вход администратора
// @Tags auth
// @Accept json
// @Produce json
// @Param body body loginInput true "Пароль администратора"
// @Success 200 {object} map[string]interface{} "token, expires_at"
// @Failure 400 {object} map[string]string "Ошибка валидации"
// @Failure 401 {object} map[string]string "Неверный пароль"
// @Router /auth/login [post]
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var input loginInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	token, expiresAt, err := h.authService.Login(r.Context(), input.Password)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"token": token, "expires_at": expiresAt}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
