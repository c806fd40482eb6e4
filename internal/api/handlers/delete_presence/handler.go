package delete_presence

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	"github.com/m04kA/juice-reservations/internal/service/availability"
)

const (
	msgInvalidPresenceID = "identifiant de présence invalide"
	msgNotFound          = "présence introuvable"
	msgNotConfigured     = "le stockage n'est pas configuré"
)

type AvailabilityService interface {
	DeletePresence(ctx context.Context, id int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle DELETE /api/v1/admin/presences/{presenceId}
// Слоты и бронирования присутствия удаляются вместе с ним
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["presenceId"], 10, 64)
	if err != nil || id <= 0 {
		h.logger.Warn("DELETE /admin/presences/{id} - Invalid presence ID: %q", mux.Vars(r)["presenceId"])
		handlers.RespondBadRequest(w, msgInvalidPresenceID)
		return
	}

	if err := h.service.DeletePresence(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, availability.ErrNotFound):
			h.logger.Warn("DELETE /admin/presences/{id} - Presence not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, availability.ErrNotConfigured):
			h.logger.Error("DELETE /admin/presences/{id} - Storage not configured")
			handlers.RespondServiceUnavailable(w, msgNotConfigured)

		default:
			h.logger.Error("DELETE /admin/presences/{id} - Failed to delete presence: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /admin/presences/{id} - Presence deleted: id=%d", id)
	handlers.RespondJSON(w, http.StatusOK, map[string]interface{}{"deleted": true, "id": id})
}
