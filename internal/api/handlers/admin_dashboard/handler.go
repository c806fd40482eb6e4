package admin_dashboard

import (
	"net/http"
	"time"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
)

type Handler struct {
	useCase  DashboardUseCase
	location *time.Location
	logger   Logger
}

func NewHandler(useCase DashboardUseCase, location *time.Location, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		location: location,
		logger:   logger,
	}
}

// Handle GET /api/v1/admin/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context())
	if err != nil {
		h.logger.Error("GET /admin/stats - Failed to build dashboard: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result, h.location))
}
