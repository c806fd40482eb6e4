package create_reservation

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	createReservation "github.com/m04kA/juice-reservations/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidSlotID      = "identifiant de créneau invalide"
	msgInvalidInput       = "données de réservation invalides"
	msgSlotNotFound       = "créneau introuvable"
	msgSlotStarted        = "ce créneau a déjà commencé"
	msgNotConfigured      = "les réservations sont momentanément indisponibles"
)

type Handler struct {
	useCase  CreateReservationUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CreateReservationUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle POST /api/v1/slots/{slotId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	slotID, err := strconv.ParseInt(mux.Vars(r)["slotId"], 10, 64)
	if err != nil || slotID <= 0 {
		h.logger.Warn("POST /slots/{id}/reservations - Invalid slot ID: %q", mux.Vars(r)["slotId"])
		handlers.RespondBadRequest(w, msgInvalidSlotID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /slots/{id}/reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(slotID)
	if err != nil {
		h.logger.Warn("POST /slots/{id}/reservations - Validation failed: slot_id=%d, %v", slotID, err)
		handlers.RespondValidation(w, err, msgInvalidInput)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /slots/{id}/reservations - Invalid input: slot_id=%d, %v", slotID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createReservation.ErrSlotNotFound):
			h.logger.Warn("POST /slots/{id}/reservations - Slot not found: slot_id=%d", slotID)
			handlers.RespondNotFound(w, msgSlotNotFound)

		case errors.Is(err, createReservation.ErrSlotStarted):
			h.logger.Warn("POST /slots/{id}/reservations - Slot already started: slot_id=%d", slotID)
			handlers.RespondConflict(w, msgSlotStarted)

		case errors.Is(err, createReservation.ErrNotConfigured):
			h.logger.Error("POST /slots/{id}/reservations - Storage not configured")
			handlers.RespondServiceUnavailable(w, msgNotConfigured)

		default:
			h.logger.Error("POST /slots/{id}/reservations - Failed to create reservation: slot_id=%d, error=%v", slotID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /slots/{id}/reservations - Reservation created: slot_id=%d, quantity=%d, email_sent=%t",
		slotID, result.Reservation.Quantity, result.EmailSent)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result, h.location))
}
