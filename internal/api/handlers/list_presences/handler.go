package list_presences

import (
	"context"
	"net/http"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	"github.com/m04kA/juice-reservations/internal/domain"
)

type AvailabilityService interface {
	ListPresences(ctx context.Context) ([]domain.Presence, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Response все присутствия по дате и времени начала
type Response struct {
	Presences []handlers.PresenceResponse `json:"presences"`
	Count     int                         `json:"count"`
}

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Handle GET /api/v1/admin/presences
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	presences, err := h.service.ListPresences(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/presences - Failed to list presences: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		Presences: handlers.NewPresenceList(presences),
		Count:     len(presences),
	})
}
