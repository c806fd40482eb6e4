package modify_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("modify_reservation: invalid input data")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("modify_reservation: reservation not found")

	// ErrNotModifiable возвращается, когда слот бронирования уже начался
	ErrNotModifiable = errors.New("modify_reservation: reservation can no longer be modified")

	// ErrNotConfigured возвращается, когда хранилище не настроено
	ErrNotConfigured = errors.New("modify_reservation: storage is not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("modify_reservation: internal error")
)
