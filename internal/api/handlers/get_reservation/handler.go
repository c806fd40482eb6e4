package get_reservation

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	getReservation "github.com/m04kA/juice-reservations/internal/usecase/get_reservation"
)

const msgNotFound = "réservation introuvable"

// Response бронирование и признак того, что его ещё можно изменить
type Response struct {
	Reservation handlers.ReservationResponse `json:"reservation"`
	Modifiable  bool                         `json:"modifiable"`
}

type Handler struct {
	useCase  GetReservationUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase GetReservationUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/reservations/{token}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]

	result, err := h.useCase.Execute(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, getReservation.ErrReservationNotFound):
			h.logger.Warn("GET /reservations/{token} - Reservation not found")
			handlers.RespondNotFound(w, msgNotFound)
		default:
			h.logger.Error("GET /reservations/{token} - Failed to get reservation: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		Reservation: handlers.NewReservationResponse(result.Reservation, h.location),
		Modifiable:  result.Modifiable,
	})
}
