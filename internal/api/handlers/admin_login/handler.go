package admin_login

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	"github.com/m04kA/juice-reservations/internal/api/middleware"
	"github.com/m04kA/juice-reservations/internal/service/auth"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidCredentials = "mot de passe incorrect"
)

// LoginRequest HTTP request model
type LoginRequest struct {
	Password string `json:"password"`
}

// LoginResponse HTTP response model. Сам токен передается только в cookie.
type LoginResponse struct {
	Authenticated bool   `json:"authenticated"`
	ExpiresAt     string `json:"expiresAt"`
}

type Handler struct {
	auth   Authenticator
	cookie middleware.SessionCookie
	logger Logger
}

func NewHandler(auth Authenticator, cookie middleware.SessionCookie, logger Logger) *Handler {
	return &Handler{
		auth:   auth,
		cookie: cookie,
		logger: logger,
	}
}

// Handle POST /api/v1/admin/login
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/login - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	token, expiresAt, err := h.auth.Login(req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNotConfigured):
			h.logger.Warn("POST /admin/login - Login rejected: %v", err)
			handlers.RespondUnauthorized(w, msgInvalidCredentials)
		default:
			h.logger.Error("POST /admin/login - Failed to issue session: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.cookie.Set(w, token, expiresAt)
	h.logger.Info("POST /admin/login - Admin logged in, session expires at %s", expiresAt.Format(time.RFC3339))
	handlers.RespondJSON(w, http.StatusOK, LoginResponse{
		Authenticated: true,
		ExpiresAt:     expiresAt.UTC().Format(time.RFC3339),
	})
}
