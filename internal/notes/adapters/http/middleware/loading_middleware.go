package middleware

import (
	"github.com/gofiber/fiber/v3"
)

// ErrMsgLoading - текст ответа, пока данные не загружены из хранилища.
const ErrMsgLoading = "data is still loading"

// LoadingReporter сообщает о незавершенной начальной загрузке.
type LoadingReporter interface {
	Loading() bool
}

// NewLoadingGate отвечает 503, пока источник в состоянии загрузки.
func NewLoadingGate(source LoadingReporter) fiber.Handler {
	return func(ctx fiber.Ctx) error {
		if source.Loading() {
			ctx.Set(fiber.HeaderRetryAfter, "1")
			return ctx.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"error": ErrMsgLoading,
			})
		}
		return ctx.Next()
	}
}
