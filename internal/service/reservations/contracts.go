package reservations

import (
	"context"
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
)

// ReservationRepository интерфейс репозитория бронирований
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	GetByToken(ctx context.Context, token string) (*domain.ReservationView, error)
	UpdateByToken(ctx context.Context, token string, update domain.ReservationUpdate) error
	DeleteByToken(ctx context.Context, token string) error
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.ReservationView, error)
}

// TokenIssuer выдает непредсказуемые токены доступа к бронированию
type TokenIssuer interface {
	Issue() (string, error)
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
