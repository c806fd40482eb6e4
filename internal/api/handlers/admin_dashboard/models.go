package admin_dashboard

import (
	"time"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	adminDashboard "github.com/m04kA/juice-reservations/internal/usecase/admin_dashboard"
)

// DashboardResponse HTTP response model
type DashboardResponse struct {
	Today             string                         `json:"today"`
	Stats             StatsResponse                  `json:"stats"`
	Presences         []handlers.PresenceResponse    `json:"presences"`
	TodayReservations []handlers.ReservationResponse `json:"todayReservations"`
}

type StatsResponse struct {
	TotalPresences     int    `json:"totalPresences"`
	TodayReservations  int    `json:"todayReservations"`
	TotalQuantityToday int    `json:"totalQuantityToday"`
	LastUpdate         string `json:"lastUpdate"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *adminDashboard.Response, loc *time.Location) *DashboardResponse {
	return &DashboardResponse{
		Today: resp.Today,
		Stats: StatsResponse{
			TotalPresences:     resp.Stats.TotalPresences,
			TodayReservations:  resp.Stats.TodayReservations,
			TotalQuantityToday: resp.Stats.TotalQuantityToday,
			LastUpdate:         resp.Stats.LastUpdate.Format(time.RFC3339),
		},
		Presences:         handlers.NewPresenceList(resp.Presences),
		TodayReservations: handlers.NewReservationList(resp.TodayReservations, loc),
	}
}
