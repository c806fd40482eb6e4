package backend

import (
	"context"
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
)

// PresenceRepository присутствия и слоты
type PresenceRepository interface {
	Create(ctx context.Context, p *domain.Presence) (*domain.Presence, error)
	CreateSlots(ctx context.Context, presenceID int64, starts []time.Time) error
	ListUpcoming(ctx context.Context, now time.Time, filter domain.SlotFilter) ([]domain.SlotView, error)
	GetSlotByID(ctx context.Context, id int64) (*domain.SlotView, error)
	List(ctx context.Context) ([]domain.Presence, error)
	Delete(ctx context.Context, id int64) error
}

// ReservationRepository бронирования
type ReservationRepository interface {
	Create(ctx context.Context, r *domain.Reservation) (*domain.Reservation, error)
	GetByToken(ctx context.Context, token string) (*domain.ReservationView, error)
	UpdateByToken(ctx context.Context, token string, update domain.ReservationUpdate) error
	DeleteByToken(ctx context.Context, token string) error
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.ReservationView, error)
}

// TxManager выполнение функции в транзакции
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
