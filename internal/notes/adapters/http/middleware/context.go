// Package middleware содержит промежуточное ПО для HTTP обработчиков.
package middleware

import (
	"context"

	"github.com/gofiber/fiber/v3"
)

// LocalsRequestContext - ключ Locals, под которым хранится контекст запроса
// с идентификатором запроса.
const LocalsRequestContext = "requestContext"

// RequestContext возвращает контекст запроса, сохраненный NewRequestIDMiddleware.
func RequestContext(ctx fiber.Ctx) context.Context {
	if reqCtx, ok := ctx.Locals(LocalsRequestContext).(context.Context); ok {
		return reqCtx
	}
	return ctx.Context()
}
