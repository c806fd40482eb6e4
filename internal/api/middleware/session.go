package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
)

const msgUnauthorized = "authentification requise"

type adminKey struct{}

// SessionCookie параметры cookie сессии администратора
type SessionCookie struct {
	Name   string
	Secure bool
}

// Set выставляет cookie с токеном до expiresAt
func (c SessionCookie) Set(w http.ResponseWriter, token string, expiresAt time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		MaxAge:   int(time.Until(expiresAt).Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Clear удаляет cookie
func (c SessionCookie) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     c.Name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// Read токен из cookie запроса
func (c SessionCookie) Read(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(c.Name)
	if err != nil || cookie.Value == "" {
		return "", false
	}
	return cookie.Value, true
}

// RequireAdmin пропускает запрос только с действительной сессией администратора, иначе 401
func RequireAdmin(verifier SessionVerifier, cookie SessionCookie, logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := cookie.Read(r)
			if !ok {
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			if err := verifier.Verify(r.Context(), token); err != nil {
				logger.Warn("%s %s - Rejected admin session: %v", r.Method, r.URL.Path, err)
				handlers.RespondUnauthorized(w, msgUnauthorized)
				return
			}
			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), adminKey{}, true)))
		})
	}
}

// IsAdmin true, если запрос прошел RequireAdmin
func IsAdmin(ctx context.Context) bool {
	ok, _ := ctx.Value(adminKey{}).(bool)
	return ok
}
