package get_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("get_reservation: reservation not found")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_reservation: internal error")
)
