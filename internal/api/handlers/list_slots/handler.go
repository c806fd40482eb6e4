package list_slots

import (
	"net/http"
	"time"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	"github.com/m04kA/juice-reservations/internal/service/availability"
)

const msgInvalidFilter = "filtre invalide"

type Handler struct {
	service  AvailabilityService
	location *time.Location
	logger   Logger
}

func NewHandler(service AvailabilityService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/slots
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	filter, err := parseFilter(r.URL.Query(), h.location)
	if err != nil {
		h.logger.Warn("GET /slots - Invalid filter: %v", err)
		handlers.RespondValidation(w, err, msgInvalidFilter)
		return
	}

	slots, err := h.service.ListUpcomingSlots(r.Context(), filter)
	if err != nil {
		h.logger.Error("GET /slots - Failed to list slots: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /slots - %d upcoming slots", len(slots))
	handlers.RespondJSON(w, http.StatusOK, fromGroups(availability.GroupSlots(slots), h.location))
}
