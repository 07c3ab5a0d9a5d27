package dto

import "stickynotes/internal/notes/domain/entities"

// AppStateRequest - частичное изменение настроек.
type AppStateRequest struct {
	IsTransparent *bool `json:"isTransparent"`
	IsDarkMode    *bool `json:"isDarkMode"`
}

// Merge накладывает переданные поля на текущее состояние.
func (r *AppStateRequest) Merge(current entities.AppState) entities.AppState {
	if r.IsTransparent != nil {
		current.IsTransparent = *r.IsTransparent
	}
	if r.IsDarkMode != nil {
		current.IsDarkMode = *r.IsDarkMode
	}
	return current
}

// HealthResponse - ответ проверки состояния.
type HealthResponse struct {
	Status  string `json:"status"`
	Loading bool   `json:"loading"`
}
