package update_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	modifyReservation "github.com/m04kA/juice-reservations/internal/usecase/modify_reservation"
)

const (
	msgInvalidRequestBody = "corps de requête invalide"
	msgInvalidInput       = "données de réservation invalides"
	msgNotFound           = "réservation introuvable"
	msgNotModifiable      = "le créneau a déjà commencé, la réservation ne peut plus être modifiée"
	msgNotConfigured      = "les réservations sont momentanément indisponibles"
)

type Handler struct {
	useCase  ModifyReservationUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase ModifyReservationUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle PUT /api/v1/reservations/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req UpdateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /reservations/{token} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(mux.Vars(r)["token"])
	if err != nil {
		h.logger.Warn("PUT /reservations/{token} - Validation failed: %v", err)
		handlers.RespondValidation(w, err, msgInvalidInput)
		return
	}

	updated, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, modifyReservation.ErrInvalidInput):
			h.logger.Warn("PUT /reservations/{token} - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, modifyReservation.ErrReservationNotFound):
			h.logger.Warn("PUT /reservations/{token} - Reservation not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, modifyReservation.ErrNotModifiable):
			h.logger.Warn("PUT /reservations/{token} - Slot already started")
			handlers.RespondForbidden(w, msgNotModifiable)

		case errors.Is(err, modifyReservation.ErrNotConfigured):
			h.logger.Error("PUT /reservations/{token} - Storage not configured")
			handlers.RespondServiceUnavailable(w, msgNotConfigured)

		default:
			h.logger.Error("PUT /reservations/{token} - Failed to update reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /reservations/{token} - Reservation updated: quantity=%d", updated.Quantity)
	handlers.RespondJSON(w, http.StatusOK, handlers.NewReservationResponse(*updated, h.location))
}
