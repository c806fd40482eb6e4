package admin_logout

import (
	"context"
	"errors"
	"net/http"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	"github.com/m04kA/juice-reservations/internal/api/middleware"
	"github.com/m04kA/juice-reservations/internal/service/auth"
)

type SessionRevoker interface {
	Logout(ctx context.Context, token string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	sessions SessionRevoker
	cookie   middleware.SessionCookie
	logger   Logger
}

func NewHandler(sessions SessionRevoker, cookie middleware.SessionCookie, logger Logger) *Handler {
	return &Handler{sessions: sessions, cookie: cookie, logger: logger}
}

// Handle POST /api/v1/admin/logout
// Сессия отзывается на сервере, cookie удаляется в любом случае
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if token, ok := h.cookie.Read(r); ok {
		err := h.sessions.Logout(r.Context(), token)
		switch {
		case err == nil:
			h.logger.Info("POST /admin/logout - Admin session revoked")
		case errors.Is(err, auth.ErrInvalidSession):
			h.logger.Warn("POST /admin/logout - Session already invalid: %v", err)
		default:
			h.logger.Error("POST /admin/logout - Failed to revoke session: %v", err)
			h.cookie.Clear(w)
			handlers.RespondInternalError(w)
			return
		}
	}

	h.cookie.Clear(w)
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
}
