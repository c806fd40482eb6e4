package get_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/juice-reservations/internal/service/reservations"
)

// UseCase просмотр бронирования по токену
type UseCase struct {
	reservations ReservationService
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(reservations ReservationService, logger Logger) *UseCase {
	return &UseCase{
		reservations: reservations,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute возвращает бронирование и признак изменяемости на текущий момент
func (uc *UseCase) Execute(ctx context.Context, token string) (*Response, error) {
	view, err := uc.reservations.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, reservations.ErrNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	return &Response{
		Reservation: *view,
		Modifiable:  view.IsModifiable(uc.timeProvider.Now()),
	}, nil
}
