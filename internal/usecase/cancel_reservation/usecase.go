package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/service/reservations"
	"github.com/m04kA/juice-reservations/pkg/metrics"
)

// UseCase отмена бронирования держателем токена
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

// Execute удаляет бронирование, если его слот ещё не начался. Возвращает удаленное бронирование.
func (uc *UseCase) Execute(ctx context.Context, token string) (*domain.ReservationView, error) {
	view, err := uc.reservations.GetByToken(ctx, token)
	if err != nil {
		return nil, mapError(err)
	}

	if !view.IsModifiable(uc.timeProvider.Now()) {
		uc.logger.Warn("CancelReservation: reservation id=%d slot started at %s", view.ID, view.StartAt)
		return nil, ErrNotModifiable
	}

	if err := uc.reservations.DeleteByToken(ctx, token); err != nil {
		return nil, mapError(err)
	}
	uc.metrics.Record(metrics.EventReservationCancelled)

	uc.logger.Info("CancelReservation: reservation id=%d cancelled", view.ID)
	return view, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, reservations.ErrNotFound):
		return ErrReservationNotFound
	case errors.Is(err, reservations.ErrNotConfigured):
		return ErrNotConfigured
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
