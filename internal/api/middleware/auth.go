package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"github.com/m04kA/SMC-RestaurantService/internal/api/handlers"
)

const (
	msgMissingToken = "требуется авторизация"
	msgInvalidToken = "недействительный токен"
)

type ctxKey struct{}

var userIDKey ctxKey

// Logger интерфейс для логирования
type Logger interface {
	Warn(format string, v ...interface{})
}

// Auth middleware проверки JWT bearer токена.
// Кладёт идентификатор пользователя из claim "sub" в контекст запроса
type Auth struct {
	secret []byte
	logger Logger
}

// NewAuth создает middleware авторизации
func NewAuth(secret string, logger Logger) *Auth {
	return &Auth{
		secret: []byte(secret),
		logger: logger,
	}
}

// Middleware возвращает http middleware, совместимый с mux.Router.Use
func (a *Auth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" || !strings.HasPrefix(header, "Bearer ") {
			a.logger.Warn("auth: missing bearer token for %s %s", r.Method, r.URL.Path)
			handlers.RespondUnauthorized(w, msgMissingToken)
			return
		}

		userID, err := a.parseToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			a.logger.Warn("auth: invalid token for %s %s: %v", r.Method, r.URL.Path, err)
			handlers.RespondUnauthorized(w, msgInvalidToken)
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), userIDKey, userID)))
	})
}

// parseToken валидирует подпись и срок действия, возвращает id пользователя
func (a *Auth) parseToken(raw string) (int64, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return 0, fmt.Errorf("invalid claims")
	}

	// jwt декодирует числовые claims как float64
	sub, ok := claims["sub"].(float64)
	if !ok {
		return 0, fmt.Errorf("missing sub claim")
	}

	return int64(sub), nil
}

// GetUserID возвращает id пользователя, положенный Auth middleware
func GetUserID(ctx context.Context) (int64, bool) {
	userID, ok := ctx.Value(userIDKey).(int64)
	return userID, ok
}
