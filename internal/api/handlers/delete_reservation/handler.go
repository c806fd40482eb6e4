package delete_reservation

import (
	"context"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	"github.com/m04kA/juice-reservations/internal/service/reservations"
)

const (
	msgNotFound      = "réservation introuvable"
	msgNotConfigured = "le stockage n'est pas configuré"
)

type ReservationService interface {
	DeleteByToken(ctx context.Context, token string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle DELETE /api/v1/admin/reservations/{token}
// Администратор удаляет бронирование в любой момент, без проверки начала слота
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteByToken(r.Context(), mux.Vars(r)["token"]); err != nil {
		switch {
		case errors.Is(err, reservations.ErrNotFound):
			h.logger.Warn("DELETE /admin/reservations/{token} - Reservation not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reservations.ErrNotConfigured):
			h.logger.Error("DELETE /admin/reservations/{token} - Storage not configured")
			handlers.RespondServiceUnavailable(w, msgNotConfigured)

		default:
			h.logger.Error("DELETE /admin/reservations/{token} - Failed to delete reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/reservations/{token} - Reservation deleted by admin")
	handlers.RespondJSON(w, http.StatusOK, map[string]bool{"deleted": true})
}
