package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
var (
	// Ошибки валидации и бизнес-правил
	ErrValidationFailed   = errors.New("validation failed")
	ErrPlayerNameRequired = errors.New("player name is required")
	ErrPlayerNameTooLong  = errors.New("player name is too long")
	ErrMatchSelfPlay      = errors.New("a player cannot play against themselves")

	// Не найдено
	ErrPlayerNotFound = errors.New("player not found")

	// Аутентификация
	ErrInvalidCredentials = errors.New("invalid admin password")
	ErrInvalidToken       = errors.New("invalid or expired token")

	// Инфраструктура
	ErrStorageFailure = errors.New("tournament storage is unavailable")
	ErrExportDisabled = errors.New("standings export is not configured")
)
