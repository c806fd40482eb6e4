package cancel_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	cancelReservation "github.com/m04kA/juice-reservations/internal/usecase/cancel_reservation"
)

const (
	msgNotFound      = "réservation introuvable"
	msgNotModifiable = "le créneau a déjà commencé, la réservation ne peut plus être annulée"
	msgNotConfigured = "les réservations sont momentanément indisponibles"
)

// Response отмененное бронирование
type Response struct {
	Cancelled   bool                         `json:"cancelled"`
	Reservation handlers.ReservationResponse `json:"reservation"`
}

type Handler struct {
	useCase  CancelReservationUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase CancelReservationUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle DELETE /api/v1/reservations/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	cancelled, err := h.useCase.Execute(r.Context(), mux.Vars(r)["token"])
	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrReservationNotFound):
			h.logger.Warn("DELETE /reservations/{token} - Reservation not found")
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, cancelReservation.ErrNotModifiable):
			h.logger.Warn("DELETE /reservations/{token} - Slot already started")
			handlers.RespondForbidden(w, msgNotModifiable)

		case errors.Is(err, cancelReservation.ErrNotConfigured):
			h.logger.Error("DELETE /reservations/{token} - Storage not configured")
			handlers.RespondServiceUnavailable(w, msgNotConfigured)

		default:
			h.logger.Error("DELETE /reservations/{token} - Failed to cancel reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /reservations/{token} - Reservation cancelled: quantity=%d", cancelled.Quantity)
	handlers.RespondJSON(w, http.StatusOK, Response{
		Cancelled:   true,
		Reservation: handlers.NewReservationResponse(*cancelled, h.location),
	})
}
