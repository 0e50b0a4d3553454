package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/SMC-ReservationService/internal/api/handlers"
	"github.com/m04kA/SMC-ReservationService/internal/integrations/authservice"
)

const (
	// AdminTokenHeader заголовок с токеном административной сессии
	AdminTokenHeader = "X-Admin-Token"

	msgUnauthorized = "требуется действующий токен администратора"
)

type sessionContextKey struct{}

// AuthValidator интерфейс валидации административных сессий
type AuthValidator interface {
	ValidateSession(ctx context.Context, token string) (*authservice.Session, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Auth проверяет токен администратора для защищенных маршрутов
// Публичные маршруты этим middleware не оборачиваются
func Auth(validator AuthValidator, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.Header.Get(AdminTokenHeader)

			requestID, _ := RequestIDFromContext(r.Context())

			session, err := validator.ValidateSession(r.Context(), token)
			if err != nil {
				if errors.Is(err, authservice.ErrSessionInvalid) {
					logger.Warn("Auth: invalid admin token for %s %s (request_id=%s)", r.Method, r.URL.Path, requestID)
					handlers.RespondUnauthorized(w, msgUnauthorized)
					return
				}
				logger.Error("Auth: session validation failed for %s %s: %v", r.Method, r.URL.Path, err)
				handlers.RespondInternalError(w)
				return
			}

			ctx := context.WithValue(r.Context(), sessionContextKey{}, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext возвращает сессию администратора из контекста запроса
func SessionFromContext(ctx context.Context) (*authservice.Session, bool) {
	session, ok := ctx.Value(sessionContextKey{}).(*authservice.Session)
	return session, ok
}
