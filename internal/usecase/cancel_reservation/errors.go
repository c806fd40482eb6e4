package cancel_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда бронирование не найдено (в том числе уже отменено)
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrNotModifiable возвращается, когда слот бронирования уже начался
	ErrNotModifiable = errors.New("cancel_reservation: reservation can no longer be cancelled")

	// ErrNotConfigured возвращается, когда хранилище не настроено
	ErrNotConfigured = errors.New("cancel_reservation: storage is not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
