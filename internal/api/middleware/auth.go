package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/sebschult/FeWo-BookingService/internal/api/handlers"
)

const (
	// AdminTokenHeader заголовок с операторским токеном
	AdminTokenHeader = "X-Admin-Token"

	msgMissingToken = "autorisierung erforderlich"
	msgInvalidToken = "zugriff verweigert"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth middleware операторских маршрутов: сверяет X-Admin-Token с
// токеном из конфигурации. Отдельных пользователей и ролей нет —
// оператор один.
func Auth(adminToken string, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(AdminTokenHeader)
			if token == "" {
				logger.Warn("Auth: missing %s header for %s %s", AdminTokenHeader, r.Method, r.URL.Path)
				handlers.RespondUnauthorized(w, msgMissingToken)
				return
			}

			if subtle.ConstantTimeCompare([]byte(token), []byte(adminToken)) != 1 {
				logger.Warn("Auth: invalid admin token for %s %s", r.Method, r.URL.Path)
				handlers.RespondForbidden(w, msgInvalidToken)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
