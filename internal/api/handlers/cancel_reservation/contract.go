package cancel_reservation

import (
	"context"

	"github.com/m04kA/juice-reservations/internal/domain"
)

type CancelReservationUseCase interface {
	Execute(ctx context.Context, token string) (*domain.ReservationView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
