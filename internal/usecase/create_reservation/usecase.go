package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/juice-reservations/internal/integrations/mailer"
	"github.com/m04kA/juice-reservations/internal/service/availability"
	"github.com/m04kA/juice-reservations/internal/service/reservations"
	"github.com/m04kA/juice-reservations/internal/service/reservations/models"
	"github.com/m04kA/juice-reservations/pkg/metrics"
)

// UseCase use case бронирования слота
type UseCase struct {
	availability AvailabilityService
	reservations ReservationService
	mailer       Mailer
	metrics      Metrics
	baseURL      string
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
// baseURL - публичный адрес сервиса для ссылок в письме
func NewUseCase(
	availability AvailabilityService,
	reservations ReservationService,
	mailer Mailer,
	m Metrics,
	baseURL string,
	logger Logger,
) *UseCase {
	if m == nil {
		m = (*metrics.Metrics)(nil)
	}
	return &UseCase{
		availability: availability,
		reservations: reservations,
		mailer:       mailer,
		metrics:      m,
		baseURL:      baseURL,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute находит слот, проверяет что он ещё не начался, сохраняет бронирование
// и пытается отправить подтверждение. Ошибка отправки письма не отменяет бронирование.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: slot=%d, quantity=%d", req.SlotID, req.Quantity)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Слот должен существовать
	slot, err := uc.availability.GetSlotByID(ctx, req.SlotID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrNotFound):
			uc.logger.Warn("CreateReservation: slot id=%d not found", req.SlotID)
			return nil, ErrSlotNotFound
		case errors.Is(err, availability.ErrNotConfigured):
			return nil, ErrNotConfigured
		default:
			return nil, fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}
	}

	// 3. И ещё не начаться
	now := uc.timeProvider.Now()
	if slot.HasStarted(now) {
		uc.logger.Warn("CreateReservation: slot id=%d started at %s", slot.SlotID, slot.StartAt)
		return nil, ErrSlotStarted
	}

	// 4. Сохраняем
	created, err := uc.reservations.Create(ctx, models.CreateRequest{
		SlotID:    slot.SlotID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Quantity:  req.Quantity,
		Comment:   req.Comment,
	})
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrNotConfigured):
			return nil, ErrNotConfigured
		case errors.Is(err, reservations.ErrInvalidInput):
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		default:
			return nil, fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}
	}
	uc.metrics.Record(metrics.EventReservationCreated)

	resp := &Response{ManageURL: mailer.ManageURL(uc.baseURL, created.Token)}
	resp.Reservation.Reservation = *created
	resp.Reservation.StartAt = slot.StartAt
	resp.Reservation.Location = slot.Location
	resp.Reservation.Date = slot.Date

	// 5. Подтверждение по почте (best effort)
	if req.Email != nil && *req.Email != "" {
		err := uc.mailer.SendConfirmation(ctx, mailer.Confirmation{
			To:          *req.Email,
			Reservation: resp.Reservation,
			BaseURL:     uc.baseURL,
		})
		if err != nil {
			uc.metrics.Record(metrics.EventEmailFailed)
			uc.logger.Warn("CreateReservation: confirmation e-mail for reservation id=%d failed: %v", created.ID, err)
		} else {
			resp.EmailSent = true
		}
	}

	uc.logger.Info("CreateReservation: reservation id=%d created for slot=%d", created.ID, slot.SlotID)
	return resp, nil
}
