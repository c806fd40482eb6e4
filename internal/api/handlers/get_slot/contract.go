package get_slot

import (
	"context"

	"github.com/m04kA/juice-reservations/internal/domain"
)

type AvailabilityService interface {
	GetSlotByID(ctx context.Context, id int64) (*domain.SlotView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
