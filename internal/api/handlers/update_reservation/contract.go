package update_reservation

import (
	"context"

	"github.com/m04kA/juice-reservations/internal/domain"
	modifyReservation "github.com/m04kA/juice-reservations/internal/usecase/modify_reservation"
)

type ModifyReservationUseCase interface {
	Execute(ctx context.Context, req *modifyReservation.Request) (*domain.ReservationView, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
