// Package state содержит HTTP-обработчики настроек отображения.
package state

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"stickynotes/internal/notes/adapters/http/dto"
	"stickynotes/internal/notes/adapters/http/middleware"
	"stickynotes/internal/notes/app"
	"stickynotes/internal/notes/domain/entities"
	"stickynotes/internal/notes/ports/services"
	"stickynotes/pkg/logger"
)

// Константы сообщений.
const (
	LogStateChanged          = "app state changed"
	ErrMsgInvalidRequestBody = "invalid request body"
)

// Handler обрабатывает запросы к настройкам.
type Handler struct {
	prefs services.Preferences
}

// NewHandler создает обработчик настроек.
func NewHandler(prefs services.Preferences) *Handler {
	return &Handler{prefs: prefs}
}

// GetState возвращает текущие настройки.
func (h *Handler) GetState(ctx fiber.Ctx) error {
	return send(ctx, h.prefs.State())
}

// PutState сливает переданные поля с текущими настройками.
func (h *Handler) PutState(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)

	var req dto.AppStateRequest
	if err := ctx.Bind().Body(&req); err != nil {
		logger.Log(reqCtx).Warn(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		if err := ctx.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": ErrMsgInvalidRequestBody,
		}); err != nil {
			return fmt.Errorf("failed to send bad request response: %w", err)
		}
		return nil
	}

	state, err := h.prefs.Merge(reqCtx, func(s *entities.AppState) { *s = req.Merge(*s) })
	if err != nil {
		return handleError(ctx, err)
	}
	logger.Log(reqCtx).Debug(reqCtx, LogStateChanged,
		zap.Bool("transparent", state.IsTransparent),
		zap.Bool("dark_mode", state.IsDarkMode))

	return send(ctx, state)
}

// ToggleTransparency переключает прозрачность заметок.
func (h *Handler) ToggleTransparency(ctx fiber.Ctx) error {
	state, err := h.prefs.ToggleTransparency(middleware.RequestContext(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, state)
}

// ToggleDarkMode переключает темную тему.
func (h *Handler) ToggleDarkMode(ctx fiber.Ctx) error {
	state, err := h.prefs.ToggleDarkMode(middleware.RequestContext(ctx))
	if err != nil {
		return handleError(ctx, err)
	}
	return send(ctx, state)
}

func handleError(ctx fiber.Ctx, err error) error {
	status, msg := fiber.StatusInternalServerError, "Internal server error"
	if errors.Is(err, app.ErrLoading) {
		status, msg = fiber.StatusServiceUnavailable, middleware.ErrMsgLoading
	}
	if err := ctx.Status(status).JSON(fiber.Map{"error": msg}); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func send(ctx fiber.Ctx, body any) error {
	if err := ctx.JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}
