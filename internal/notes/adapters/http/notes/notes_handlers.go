// Package notes содержит HTTP-обработчики для управления заметками.
package notes

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/zap"

	"stickynotes/internal/notes/adapters/http/dto"
	"stickynotes/internal/notes/adapters/http/middleware"
	"stickynotes/internal/notes/app"
	"stickynotes/internal/notes/app/validation"
	"stickynotes/internal/notes/layout"
	"stickynotes/internal/notes/ports/services"
	"stickynotes/pkg/logger"
)

// Константы ошибок и сообщений для логирования.
const (
	LogHandlerCreateNote = "handling create note request"
	LogHandlerGetNote    = "handling get note request"
	LogHandlerListNotes  = "handling list notes request"
	LogHandlerUpdateNote = "handling update note request"
	LogHandlerDeleteNote = "handling delete note request"
	LogHandlerLayout     = "handling notes layout request"

	ErrMsgInvalidNoteID      = "invalid note id"
	ErrMsgNoteNotFound       = "note not found"
	ErrMsgInvalidRequestBody = "invalid request body"
	ErrMsgValidationFailed   = "validation failed"
	ErrMsgInvalidViewport    = "invalid viewport size"
)

// Размер области просмотра, если он не передан.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 800
)

// Handler обработчик HTTP-запросов для работы с заметками.
type Handler struct {
	repo       services.NotesRepository
	positioner layout.Positioner
	validator  *validation.Validator
}

// NewHandler создает новый экземпляр обработчика заметок.
func NewHandler(repo services.NotesRepository, positioner layout.Positioner, validator *validation.Validator) *Handler {
	return &Handler{
		repo:       repo,
		positioner: positioner,
		validator:  validator,
	}
}

// ListNotes возвращает коллекцию или результат поиска по параметру q.
func (h *Handler) ListNotes(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	query := ctx.Query("q")
	logger.Log(reqCtx).Debug(reqCtx, LogHandlerListNotes, zap.String("query", query))

	return sendJSON(ctx, fiber.StatusOK, dto.FromNotes(h.repo.SearchNotes(query)))
}

// CreateNote обрабатывает запрос на создание новой заметки.
func (h *Handler) CreateNote(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.CreateNote"))
	log.Debug(reqCtx, LogHandlerCreateNote)

	var req validation.CreateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Warn(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	if violations := h.validator.Validate(&req); violations != nil {
		return sendValidation(ctx, violations)
	}

	note, err := h.repo.AddNote(reqCtx, req.Input())
	if err != nil {
		log.Error(reqCtx, "failed to create note", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendJSON(ctx, fiber.StatusCreated, dto.FromNote(note))
}

// GetNote обрабатывает запрос на получение заметки по ID.
func (h *Handler) GetNote(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	noteID := ctx.Params("note_id")
	logger.Log(reqCtx).Debug(reqCtx, LogHandlerGetNote, zap.String("note_id", noteID))

	note, ok := h.repo.Get(noteID)
	if !ok {
		return sendError(ctx, fiber.StatusNotFound, ErrMsgNoteNotFound)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.FromNote(note))
}

// UpdateNote сливает переданные поля в заметку. Для неизвестного id
// ничего не меняется и возвращается 204.
func (h *Handler) UpdateNote(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	noteID := ctx.Params("note_id")
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.UpdateNote"), zap.String("note_id", noteID))
	log.Debug(reqCtx, LogHandlerUpdateNote)

	if noteID == "" {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidNoteID)
	}

	var req validation.UpdateNoteRequest
	if err := ctx.Bind().Body(&req); err != nil {
		log.Warn(reqCtx, ErrMsgInvalidRequestBody, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidRequestBody)
	}
	if violations := h.validator.Validate(&req); violations != nil {
		return sendValidation(ctx, violations)
	}

	note, found, err := h.repo.UpdateNote(reqCtx, noteID, req.Update())
	if err != nil {
		log.Error(reqCtx, "failed to update note", zap.Error(err))
		return handleError(ctx, err)
	}
	if !found {
		return sendStatus(ctx, fiber.StatusNoContent)
	}

	return sendJSON(ctx, fiber.StatusOK, dto.FromNote(note))
}

// DeleteNote обрабатывает запрос на удаление заметки. Повторное удаление не ошибка.
func (h *Handler) DeleteNote(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)
	noteID := ctx.Params("note_id")
	log := logger.Log(reqCtx).With(zap.String("handler", "Handler.DeleteNote"), zap.String("note_id", noteID))
	log.Debug(reqCtx, LogHandlerDeleteNote)

	if noteID == "" {
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidNoteID)
	}

	if _, err := h.repo.DeleteNote(reqCtx, noteID); err != nil {
		log.Error(reqCtx, "failed to delete note", zap.Error(err))
		return handleError(ctx, err)
	}

	return sendStatus(ctx, fiber.StatusNoContent)
}

// Layout возвращает начальные позиции карточек в порядке коллекции.
func (h *Handler) Layout(ctx fiber.Ctx) error {
	reqCtx := middleware.RequestContext(ctx)

	width, errW := strconv.Atoi(ctx.Query("width", strconv.Itoa(DefaultViewportWidth)))
	height, errH := strconv.Atoi(ctx.Query("height", strconv.Itoa(DefaultViewportHeight)))
	if err := errors.Join(errW, errH); err != nil || width < 0 || height < 0 {
		logger.Log(reqCtx).Warn(reqCtx, ErrMsgInvalidViewport, zap.Error(err))
		return sendError(ctx, fiber.StatusBadRequest, ErrMsgInvalidViewport)
	}

	logger.Log(reqCtx).Debug(reqCtx, LogHandlerLayout, zap.Int("width", width), zap.Int("height", height))

	notes := h.repo.Notes()
	ids := make([]string, 0, len(notes))
	for _, n := range notes {
		ids = append(ids, n.ID)
	}

	return sendJSON(ctx, fiber.StatusOK, h.positioner.Place(ids, width, height))
}

// handleError обрабатывает ошибки и возвращает соответствующий HTTP-статус.
func handleError(ctx fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, app.ErrLoading):
		return sendError(ctx, fiber.StatusServiceUnavailable, middleware.ErrMsgLoading)
	default:
		return sendError(ctx, fiber.StatusInternalServerError, "Internal server error")
	}
}

func sendJSON(ctx fiber.Ctx, status int, body any) error {
	if err := ctx.Status(status).JSON(body); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendStatus(ctx fiber.Ctx, status int) error {
	if err := ctx.SendStatus(status); err != nil {
		return fmt.Errorf("error sending response: %w", err)
	}
	return nil
}

func sendError(ctx fiber.Ctx, status int, msg string) error {
	return sendJSON(ctx, status, fiber.Map{"error": msg})
}

func sendValidation(ctx fiber.Ctx, violations []string) error {
	return sendJSON(ctx, fiber.StatusBadRequest, fiber.Map{
		"error":   ErrMsgValidationFailed,
		"details": violations,
	})
}
