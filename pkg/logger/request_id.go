package logger

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// MaxRequestIDLength ограничивает длину идентификатора, принятого от клиента.
const MaxRequestIDLength = 64

type ctxKey string

const requestIDKey ctxKey = RequestID

// NewRequestIDContext кладет идентификатор запроса в контекст.
// Пустой или непригодный для логов идентификатор заменяется новым.
func NewRequestIDContext(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, SanitizeRequestID(requestID))
}

// GetRequestID извлекает идентификатор запроса из контекста.
func GetRequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}

// SanitizeRequestID возвращает id без пробелов по краям, если он короче
// MaxRequestIDLength и состоит из букв, цифр и символов "-_.:".
// Иначе возвращается новый идентификатор.
func SanitizeRequestID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" || len(id) > MaxRequestIDLength || strings.IndexFunc(id, notTokenRune) >= 0 {
		return GenerateRequestID()
	}
	return id
}

// GenerateRequestID генерирует новый идентификатор запроса.
func GenerateRequestID() string {
	return uuid.NewString()
}

func notTokenRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return false
	case r == '-', r == '_', r == '.', r == ':':
		return false
	}
	return true
}
