package list_reservations

import (
	"context"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/service/reservations/models"
)

type ReservationService interface {
	List(ctx context.Context, filter domain.ReservationFilter) ([]domain.ReservationView, models.ListSummary, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
