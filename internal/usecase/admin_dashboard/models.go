package admin_dashboard

import (
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
)

// Stats сводка для панели администратора
type Stats struct {
	TotalPresences     int
	TodayReservations  int
	TotalQuantityToday int
	LastUpdate         time.Time
}

// Response панель администратора: все присутствия, бронирования на сегодня и сводка
type Response struct {
	Today             string // YYYY-MM-DD в зоне сервиса
	Presences         []domain.Presence
	TodayReservations []domain.ReservationView
	Stats             Stats
}
