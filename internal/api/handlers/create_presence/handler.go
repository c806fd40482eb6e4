package create_presence

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	"github.com/m04kA/juice-reservations/internal/service/availability"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidPresence    = "présence invalide"
	msgNotConfigured      = "le stockage n'est pas configuré"
)

type Handler struct {
	service  AvailabilityService
	location *time.Location
	now      func() time.Time
	logger   Logger
}

func NewHandler(service AvailabilityService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		now:      time.Now,
		logger:   logger,
	}
}

// Handle POST /api/v1/admin/presences
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreatePresenceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/presences - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	serviceReq, err := req.ToServiceRequest(h.now(), h.location)
	if err != nil {
		h.logger.Warn("POST /admin/presences - Validation failed: %v", err)
		handlers.RespondValidation(w, err, msgInvalidPresence)
		return
	}

	created, err := h.service.CreatePresence(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("POST /admin/presences - Invalid presence: %v", err)
			handlers.RespondBadRequest(w, msgInvalidPresence)

		case errors.Is(err, availability.ErrNotConfigured):
			h.logger.Error("POST /admin/presences - Storage not configured")
			handlers.RespondServiceUnavailable(w, msgNotConfigured)

		default:
			h.logger.Error("POST /admin/presences - Failed to create presence: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /admin/presences - Presence created: id=%d, slots=%d", created.Presence.ID, len(created.Slots))
	handlers.RespondJSON(w, http.StatusCreated, FromServiceResponse(created, h.location))
}
