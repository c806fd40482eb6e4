package admin_dashboard

import (
	"context"
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/service/reservations/models"
)

// AvailabilityService интерфейс списка присутствий
type AvailabilityService interface {
	ListPresences(ctx context.Context) ([]domain.Presence, error)
}

// ReservationService интерфейс журнала бронирований
type ReservationService interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.ReservationView, models.ListSummary, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
