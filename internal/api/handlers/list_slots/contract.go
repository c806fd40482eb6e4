package list_slots

import (
	"context"

	"github.com/m04kA/juice-reservations/internal/domain"
)

type AvailabilityService interface {
	ListUpcomingSlots(ctx context.Context, filter domain.SlotFilter) ([]domain.SlotView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
