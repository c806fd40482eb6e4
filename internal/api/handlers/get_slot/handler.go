package get_slot

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	"github.com/m04kA/juice-reservations/internal/service/availability"
)

const (
	msgInvalidSlotID = "identifiant de créneau invalide"
	msgNotFound      = "créneau introuvable"
)

// Response слот и признак того, что он уже начался
type Response struct {
	handlers.SlotResponse
	Started bool `json:"started"`
}

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

// Handle GET /api/v1/slots/{slotId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		h.logger.Warn("GET /slots/{id} - Invalid slot ID: %q", mux.Vars(r)["slotId"])
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	slot, err := h.service.GetSlotByID(r.Context(), slotID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrNotFound):
			h.logger.Warn("GET /slots/{id} - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("GET /slots/{id} - Failed to get slot: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		SlotResponse: handlers.NewSlotResponse(*slot, h.location),
		Started:      slot.HasStarted(h.now()),
	})
}
