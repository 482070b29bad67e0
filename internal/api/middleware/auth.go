package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/okettle/marketplace-booking/internal/api/handlers"
)

type contextKey string

const userIDKey contextKey = "userID"

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth middleware аутентификации по заголовку X-User-ID
// Идентификацию выполняет API gateway; сервис доверяет заголовку
func Auth(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userIDStr := r.Header.Get("X-User-ID")
			if userIDStr == "" {
				logger.Warn("%s %s - Missing X-User-ID header", r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, "X-User-ID header is required")
				return
			}

			userID, err := strconv.ParseInt(userIDStr, 10, 64)
			if err != nil || userID <= 0 {
				logger.Warn("%s %s - Invalid X-User-ID header: %s", r.Method, r.URL.Path, userIDStr)
				handlers.RespondUnauthorized(w, "invalid X-User-ID header")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext извлекает ID пользователя из контекста запроса
func UserIDFromContext(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
