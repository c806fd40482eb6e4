package backend

import (
	"context"
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/infra/storage"
)

// unconfiguredPresences: чтения пустые, записи отклоняются
type unconfiguredPresences struct{}

func (unconfiguredPresences) Create(context.Context, *domain.Presence) (*domain.Presence, error) {
	return nil, storage.ErrNotConfigured
}

func (unconfiguredPresences) CreateSlots(context.Context, int64, []time.Time) error {
	return storage.ErrNotConfigured
}

func (unconfiguredPresences) ListUpcoming(context.Context, time.Time, domain.SlotFilter) ([]domain.SlotView, error) {
	return []domain.SlotView{}, nil
}

func (unconfiguredPresences) GetSlotByID(context.Context, int64) (*domain.SlotView, error) {
	return nil, storage.ErrSlotNotFound
}

func (unconfiguredPresences) List(context.Context) ([]domain.Presence, error) {
	return []domain.Presence{}, nil
}

func (unconfiguredPresences) Delete(context.Context, int64) error {
	return storage.ErrNotConfigured
}

type unconfiguredReservations struct{}

func (unconfiguredReservations) Create(context.Context, *domain.Reservation) (*domain.Reservation, error) {
	return nil, storage.ErrNotConfigured
}

func (unconfiguredReservations) GetByToken(context.Context, string) (*domain.ReservationView, error) {
	return nil, storage.ErrReservationNotFound
}

func (unconfiguredReservations) UpdateByToken(context.Context, string, domain.ReservationUpdate) error {
	return storage.ErrNotConfigured
}

func (unconfiguredReservations) DeleteByToken(context.Context, string) error {
	return storage.ErrNotConfigured
}

func (unconfiguredReservations) List(context.Context, domain.ReservationFilter) ([]domain.ReservationView, error) {
	return []domain.ReservationView{}, nil
}

// readOnlyPresences чтения через ограниченную учетную запись, записи отклоняются
type readOnlyPresences struct {
	PresenceRepository
}

func (readOnlyPresences) Create(context.Context, *domain.Presence) (*domain.Presence, error) {
	return nil, storage.ErrNotConfigured
}

func (readOnlyPresences) CreateSlots(context.Context, int64, []time.Time) error {
	return storage.ErrNotConfigured
}

func (readOnlyPresences) Delete(context.Context, int64) error {
	return storage.ErrNotConfigured
}

type readOnlyReservations struct {
	ReservationRepository
}

func (readOnlyReservations) Create(context.Context, *domain.Reservation) (*domain.Reservation, error) {
	return nil, storage.ErrNotConfigured
}

func (readOnlyReservations) UpdateByToken(context.Context, string, domain.ReservationUpdate) error {
	return storage.ErrNotConfigured
}

func (readOnlyReservations) DeleteByToken(context.Context, string) error {
	return storage.ErrNotConfigured
}
