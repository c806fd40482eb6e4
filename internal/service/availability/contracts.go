package availability

import (
	"context"
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/pkg/metrics"
)

// PresenceRepository интерфейс репозитория присутствий и слотов
type PresenceRepository interface {
	Create(ctx context.Context, p *domain.Presence) (*domain.Presence, error)
	CreateSlots(ctx context.Context, presenceID int64, starts []time.Time) error
	ListUpcoming(ctx context.Context, now time.Time, filter domain.SlotFilter) ([]domain.SlotView, error)
	GetSlotByID(ctx context.Context, id int64) (*domain.SlotView, error)
	List(ctx context.Context) ([]domain.Presence, error)
	Delete(ctx context.Context, id int64) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
