package get_reservation

import (
	"context"

	getReservation "github.com/m04kA/juice-reservations/internal/usecase/get_reservation"
)

type GetReservationUseCase interface {
	Execute(ctx context.Context, token string) (*getReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
