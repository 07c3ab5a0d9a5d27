// Package http содержит компоненты для HTTP сервера.
package http

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"stickynotes/internal/notes/adapters/http/dto"
	"stickynotes/internal/notes/adapters/http/middleware"
	"stickynotes/internal/notes/adapters/http/notes"
	"stickynotes/internal/notes/adapters/http/state"
	"stickynotes/internal/notes/app/validation"
	"stickynotes/internal/notes/domain/entities"
	"stickynotes/internal/notes/layout"
	"stickynotes/internal/notes/ports/services"
	"stickynotes/pkg/metrics"
)

// StatusOK - значение status в ответе /healthz.
const StatusOK = "ok"

// SetupRouter настраивает маршрутизацию для HTTP сервера. m может быть nil,
// тогда /metrics не регистрируется.
func SetupRouter(
	app *fiber.App,
	repo services.NotesRepository,
	prefs services.Preferences,
	positioner layout.Positioner,
	m *metrics.Metrics,
) {
	notesHandler := notes.NewHandler(repo, positioner, validation.NewValidator())
	stateHandler := state.NewHandler(prefs)

	// Middleware для всех запросов.
	app.Use(middleware.NewRequestIDMiddleware())
	app.Use(middleware.NewLoggerMiddleware())
	app.Use(middleware.NewRecoveryMiddleware())
	if m != nil {
		app.Use(middleware.NewMetricsMiddleware(m))
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(m.Registry(), promhttp.HandlerOpts{})))
	}

	app.Get("/healthz", func(ctx fiber.Ctx) error {
		return ctx.JSON(dto.HealthResponse{Status: StatusOK, Loading: repo.Loading() || prefs.Loading()})
	})

	// API версии 1.
	apiV1 := app.Group("/api/v1")

	apiV1.Get("/palette", func(ctx fiber.Ctx) error {
		return ctx.JSON(entities.Palette)
	})

	// Маршруты заметок недоступны до завершения загрузки.
	notesRoutes := apiV1.Group("/notes")
	notesRoutes.Use(middleware.NewLoadingGate(repo))
	notesRoutes.Get("/", notesHandler.ListNotes)
	notesRoutes.Post("/", notesHandler.CreateNote)
	notesRoutes.Get("/layout", notesHandler.Layout)
	notesRoutes.Get("/:note_id", notesHandler.GetNote)
	notesRoutes.Patch("/:note_id", notesHandler.UpdateNote)
	notesRoutes.Put("/:note_id", notesHandler.UpdateNote)
	notesRoutes.Delete("/:note_id", notesHandler.DeleteNote)

	// Настройки тоже закрыты до загрузки, иначе значения по умолчанию затрут сохраненные.
	stateRoutes := apiV1.Group("/state")
	stateRoutes.Use(middleware.NewLoadingGate(prefs))
	stateRoutes.Get("/", stateHandler.GetState)
	stateRoutes.Put("/", stateHandler.PutState)
	stateRoutes.Post("/transparency/toggle", stateHandler.ToggleTransparency)
	stateRoutes.Post("/dark-mode/toggle", stateHandler.ToggleDarkMode)

	// Обработчик для несуществующих маршрутов.
	app.Use(func(c fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Route not found",
		})
	})
}
