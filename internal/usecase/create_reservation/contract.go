package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/integrations/mailer"
	"github.com/m04kA/juice-reservations/internal/service/reservations/models"
	"github.com/m04kA/juice-reservations/pkg/metrics"
)

// AvailabilityService интерфейс поиска слота
type AvailabilityService interface {
	GetSlotByID(ctx context.Context, id int64) (*domain.SlotView, error)
}

// ReservationService интерфейс журнала бронирований
type ReservationService interface {
	Create(ctx context.Context, req models.CreateRequest) (*domain.Reservation, error)
}

// Mailer интерфейс отправки подтверждения
type Mailer interface {
	SendConfirmation(ctx context.Context, c mailer.Confirmation) error
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
