package modify_reservation

import (
	"context"
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/pkg/metrics"
)

// ReservationService интерфейс журнала бронирований
type ReservationService interface {
	GetByToken(ctx context.Context, token string) (*domain.ReservationView, error)
	Update(ctx context.Context, token string, update domain.ReservationUpdate) error
}

// Metrics счетчики бизнес-событий
type Metrics interface {
	Record(e metrics.Event)
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
