package list_reservations

import (
	"net/http"
	"strings"
	"time"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	"github.com/m04kA/juice-reservations/internal/domain"
)

const msgInvalidFilter = "filtre invalide"

// Response бронирования (новые первыми) и суммарное количество
type Response struct {
	Reservations  []handlers.ReservationResponse `json:"reservations"`
	Count         int                            `json:"count"`
	TotalQuantity int                            `json:"totalQuantity"`
}

type Handler struct {
	service  ReservationService
	location *time.Location
	logger   Logger
}

func NewHandler(service ReservationService, location *time.Location, logger Logger) *Handler {
	return &Handler{
		service:  service,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/reservations?date=&location=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	date, err := handlers.ParseOptionalDate("date", q.Get("date"), h.location)
	if err != nil {
		h.logger.Warn("GET /admin/reservations - Invalid filter: %v", err)
		handlers.RespondValidation(w, err, msgInvalidFilter)
		return
	}

	views, summary, err := h.service.List(r.Context(), domain.ReservationFilter{
		Date:     date,
		Location: strings.TrimSpace(q.Get("location")),
	})
	if err != nil {
		h.logger.Error("GET /admin/reservations - Failed to list reservations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, Response{
		Reservations:  handlers.NewReservationList(views, h.location),
		Count:         summary.Count,
		TotalQuantity: summary.TotalQuantity,
	})
}
