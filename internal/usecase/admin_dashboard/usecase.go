package admin_dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
)

// UseCase сводка для панели администратора
type UseCase struct {
	availability AvailabilityService
	reservations ReservationService
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// "Сегодня" определяется в зоне location
func NewUseCase(availability AvailabilityService, reservations ReservationService, location *time.Location, logger Logger) *UseCase {
	if location == nil {
		location = time.UTC
	}
	return &UseCase{
		availability: availability,
		reservations: reservations,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute собирает присутствия, бронирования на сегодня и их суммарное количество
func (uc *UseCase) Execute(ctx context.Context) (*Response, error) {
	now := uc.timeProvider.Now()
	today := now.In(uc.location).Format(domain.DateFormat)

	presences, err := uc.availability.ListPresences(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: list presences: %v", ErrInternal, err)
	}

	todays, summary, err := uc.reservations.List(ctx, domain.ReservationFilter{Date: &today})
	if err != nil {
		return nil, fmt.Errorf("%w: list reservations: %v", ErrInternal, err)
	}

	return &Response{
		Today:             today,
		Presences:         presences,
		TodayReservations: todays,
		Stats: Stats{
			TotalPresences:     len(presences),
			TodayReservations:  summary.Count,
			TotalQuantityToday: summary.TotalQuantity,
			LastUpdate:         now.UTC(),
		},
	}, nil
}
