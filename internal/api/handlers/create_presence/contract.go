package create_presence

import (
	"context"

	"github.com/m04kA/juice-reservations/internal/service/availability/models"
)

type AvailabilityService interface {
	CreatePresence(ctx context.Context, req models.CreatePresenceRequest) (*models.CreatedPresence, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
