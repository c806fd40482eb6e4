package get_reservation

import (
	"context"
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
)

// ReservationService интерфейс журнала бронирований
type ReservationService interface {
	GetByToken(ctx context.Context, token string) (*domain.ReservationView, error)
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
