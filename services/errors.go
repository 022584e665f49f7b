package services

import "errors"

// Общие ошибки, используемые в разных сервисах и маппинге HTTP.
// Ошибки движка сборки (balancer.ErrNoPlayersSelected, balancer.ErrUnsupportedTeamSize)
// возвращаются как есть.
var (
	ErrValidationFailed = errors.New("validation failed")

	ErrPlayerNotFound = errors.New("player not found")

	ErrRosterLoadFailed = errors.New("failed to load roster")
)
