package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/infra/storage"
	"github.com/m04kA/juice-reservations/internal/service/reservations/models"
)

// Service журнал бронирований
type Service struct {
	reservations ReservationRepository
	tokens       TokenIssuer
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(reservations ReservationRepository, tokens TokenIssuer, logger Logger) *Service {
	if tokens == nil {
		tokens = UUIDTokenIssuer{}
	}
	return &Service{
		reservations: reservations,
		tokens:       tokens,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Create выпускает токен и сохраняет бронирование
// Проверка, что слот существует и ещё не начался, лежит на вызывающем коде
func (s *Service) Create(ctx context.Context, req models.CreateRequest) (*domain.Reservation, error) {
	if req.Quantity < domain.MinQuantity {
		return nil, fmt.Errorf("%w: quantity must be at least %d", ErrInvalidInput, domain.MinQuantity)
	}

	token, err := s.tokens.Issue()
	if err != nil {
		s.logger.Error("Create: %v", err)
		return nil, err
	}

	reservation := &domain.Reservation{
		SlotID:    req.SlotID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Quantity:  req.Quantity,
		Comment:   req.Comment,
		Token:     token,
		CreatedAt: s.timeProvider.Now().UTC(),
	}

	created, err := s.reservations.Create(ctx, reservation)
	if err != nil {
		return nil, s.storageError("Create", err)
	}

	s.logger.Info("Create: reservation id=%d for slot=%d, quantity=%d", created.ID, created.SlotID, created.Quantity)
	return created, nil
}

// GetByToken бронирование с данными слота
func (s *Service) GetByToken(ctx context.Context, token string) (*domain.ReservationView, error) {
	view, err := s.reservations.GetByToken(ctx, token)
	if err != nil {
		return nil, s.storageError("GetByToken", err)
	}
	return view, nil
}

// Update меняет изменяемые поля. Токен, слот и дата создания не меняются.
func (s *Service) Update(ctx context.Context, token string, update domain.ReservationUpdate) error {
	if update.Quantity < domain.MinQuantity {
		return fmt.Errorf("%w: quantity must be at least %d", ErrInvalidInput, domain.MinQuantity)
	}
	if err := s.reservations.UpdateByToken(ctx, token, update); err != nil {
		return s.storageError("Update", err)
	}

	s.logger.Info("Update: reservation updated, quantity=%d", update.Quantity)
	return nil
}

// DeleteByToken удаляет бронирование. Повторное удаление - ErrNotFound.
func (s *Service) DeleteByToken(ctx context.Context, token string) error {
	if err := s.reservations.DeleteByToken(ctx, token); err != nil {
		return s.storageError("DeleteByToken", err)
	}

	s.logger.Info("DeleteByToken: reservation deleted")
	return nil
}

// List бронирования, новые первыми
func (s *Service) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.ReservationView, models.ListSummary, error) {
	views, err := s.reservations.List(ctx, filter)
	if err != nil {
		return nil, models.ListSummary{}, s.storageError("List", err)
	}

	summary := models.ListSummary{Count: len(views)}
	for _, v := range views {
		summary.TotalQuantity += v.Quantity
	}

	return views, summary, nil
}

func (s *Service) storageError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrReservationNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrNotConfigured):
		s.logger.Warn("%s: storage is not configured", op)
		return ErrNotConfigured
	default:
		s.logger.Error("%s: storage error: %v", op, err)
		return fmt.Errorf("%w: %s - %v", ErrPersistence, op, err)
	}
}
