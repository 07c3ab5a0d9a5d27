package middleware

import (
	"github.com/gofiber/fiber/v3"

	"stickynotes/pkg/logger"
)

// HeaderRequestID - заголовок с идентификатором запроса.
const HeaderRequestID = "X-Request-ID"

// NewRequestIDMiddleware берет идентификатор из заголовка или создает новый
// и возвращает его в ответе.
func NewRequestIDMiddleware() fiber.Handler {
	return func(ctx fiber.Ctx) error {
		reqCtx := logger.NewRequestIDContext(ctx.Context(), ctx.Get(HeaderRequestID))
		requestID, _ := logger.GetRequestID(reqCtx)

		ctx.Locals(LocalsRequestContext, reqCtx)
		ctx.Set(HeaderRequestID, requestID)

		return ctx.Next()
	}
}
