package modify_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/service/reservations"
	"github.com/m04kA/juice-reservations/pkg/metrics"
)

// UseCase изменение бронирования держателем токена
type UseCase struct {
	reservations ReservationService
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservations ReservationService, m Metrics, logger Logger) *UseCase {
	if m == nil {
		m = (*metrics.Metrics)(nil)
	}
	return &UseCase{
		reservations: reservations,
		metrics:      m,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute проверяет, что слот ещё не начался, и применяет изменения
// Правило проверяется заново при каждом запросе: страница, открытая до начала слота, не дает права менять его после
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*domain.ReservationView, error) {
	if req.Update.Quantity < domain.MinQuantity || req.Update.Quantity > domain.MaxQuantity {
		return nil, fmt.Errorf("%w: quantity must be between %d and %d", ErrInvalidInput, domain.MinQuantity, domain.MaxQuantity)
	}

	view, err := uc.reservations.GetByToken(ctx, req.Token)
	if err != nil {
		return nil, mapError(err)
	}

	if !view.IsModifiable(uc.timeProvider.Now()) {
		uc.logger.Warn("ModifyReservation: reservation id=%d slot started at %s", view.ID, view.StartAt)
		return nil, ErrNotModifiable
	}

	if err := uc.reservations.Update(ctx, req.Token, req.Update); err != nil {
		return nil, mapError(err)
	}
	uc.metrics.Record(metrics.EventReservationModified)

	view.Apply(req.Update)
	uc.logger.Info("ModifyReservation: reservation id=%d updated", view.ID)
	return view, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, reservations.ErrNotFound):
		return ErrReservationNotFound
	case errors.Is(err, reservations.ErrNotConfigured):
		return ErrNotConfigured
	case errors.Is(err, reservations.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
