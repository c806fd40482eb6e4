package availability

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/infra/storage"
	"github.com/m04kA/juice-reservations/internal/service/availability/models"
	"github.com/m04kA/juice-reservations/pkg/metrics"
)

// Service хранилище доступности: присутствия и их слоты
type Service struct {
	presences    PresenceRepository
	txManager    TransactionManager
	metrics      Metrics
	location     *time.Location
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса доступности
// location - зона, в которой интерпретируются дата и время присутствия
func NewService(
	presences PresenceRepository,
	txManager TransactionManager,
	m Metrics,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	if m == nil {
		m = (*metrics.Metrics)(nil)
	}
	return &Service{
		presences:    presences,
		txManager:    txManager,
		metrics:      m,
		location:     location,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник текущего времени
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// Location зона присутствий
func (s *Service) Location() *time.Location {
	return s.location
}

// CreatePresence создает присутствие и все его слоты в одной транзакции
// При любой ошибке ничего не сохраняется: читатели не видят присутствия без слотов
func (s *Service) CreatePresence(ctx context.Context, req models.CreatePresenceRequest) (*models.CreatedPresence, error) {
	s.logger.Info("CreatePresence: location=%q, date=%s, %s-%s", req.Location, req.Date, req.StartTime, req.EndTime)

	presence := domain.Presence{
		Location:  strings.TrimSpace(req.Location),
		Date:      req.Date,
		StartTime: req.StartTime,
		EndTime:   req.EndTime,
	}
	if presence.Location == "" {
		return nil, fmt.Errorf("%w: location is required", ErrInvalidInput)
	}
	if !presence.HasValidWindow() {
		return nil, fmt.Errorf("%w: start time must be before end time", ErrInvalidInput)
	}

	starts, err := GenerateSlots(presence.Date, presence.StartTime, presence.EndTime, s.location)
	if err != nil {
		s.logger.Warn("CreatePresence: %v", err)
		return nil, err
	}

	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		if _, err := s.presences.Create(ctx, &presence); err != nil {
			return err
		}
		return s.presences.CreateSlots(ctx, presence.ID, starts)
	})
	if err != nil {
		return nil, s.storageError("CreatePresence", err)
	}

	s.metrics.Record(metrics.EventPresenceCreated)
	s.logger.Info("CreatePresence: created presence id=%d with %d slots", presence.ID, len(starts))

	return &models.CreatedPresence{Presence: presence, Slots: starts}, nil
}

// ListUpcomingSlots слоты, начинающиеся не раньше текущего момента, по дате, месту и времени
func (s *Service) ListUpcomingSlots(ctx context.Context, filter domain.SlotFilter) ([]domain.SlotView, error) {
	filter.Location = strings.TrimSpace(filter.Location)

	slots, err := s.presences.ListUpcoming(ctx, s.timeProvider.Now(), filter)
	if err != nil {
		return nil, s.storageError("ListUpcomingSlots", err)
	}
	return slots, nil
}

// GetSlotByID слот с местом и датой
func (s *Service) GetSlotByID(ctx context.Context, id int64) (*domain.SlotView, error) {
	slot, err := s.presences.GetSlotByID(ctx, id)
	if err != nil {
		return nil, s.storageError("GetSlotByID", err)
	}
	return slot, nil
}

// ListPresences все присутствия по дате и времени начала
func (s *Service) ListPresences(ctx context.Context) ([]domain.Presence, error) {
	presences, err := s.presences.List(ctx)
	if err != nil {
		return nil, s.storageError("ListPresences", err)
	}
	return presences, nil
}

// DeletePresence удаляет присутствие вместе со слотами и их бронированиями
func (s *Service) DeletePresence(ctx context.Context, id int64) error {
	s.logger.Info("DeletePresence: id=%d", id)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.presences.Delete(ctx, id)
	})
	if err != nil {
		return s.storageError("DeletePresence", err)
	}

	s.logger.Info("DeletePresence: deleted presence id=%d", id)
	return nil
}

// GroupSlots группирует упорядоченные слоты по дате, затем по месту, сохраняя порядок
func GroupSlots(slots []domain.SlotView) []models.DayGroup {
	groups := make([]models.DayGroup, 0)

	for _, slot := range slots {
		if len(groups) == 0 || groups[len(groups)-1].Date != slot.Date {
			groups = append(groups, models.DayGroup{Date: slot.Date})
		}
		day := &groups[len(groups)-1]

		if len(day.Locations) == 0 || day.Locations[len(day.Locations)-1].Location != slot.Location {
			day.Locations = append(day.Locations, models.LocationGroup{Location: slot.Location})
		}
		loc := &day.Locations[len(day.Locations)-1]
		loc.Slots = append(loc.Slots, slot)
	}

	return groups
}

func (s *Service) storageError(op string, err error) error {
	switch {
	case errors.Is(err, storage.ErrSlotNotFound), errors.Is(err, storage.ErrPresenceNotFound):
		return ErrNotFound
	case errors.Is(err, storage.ErrNotConfigured):
		s.logger.Warn("%s: storage is not configured", op)
		return ErrNotConfigured
	default:
		s.logger.Error("%s: storage error: %v", op, err)
		return fmt.Errorf("%w: %s - %v", ErrPersistence, op, err)
	}
}
