package create_reservation

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("create_reservation: slot not found")

	// ErrSlotStarted возвращается, когда слот уже начался
	ErrSlotStarted = errors.New("create_reservation: slot has already started")

	// ErrNotConfigured возвращается, когда хранилище не настроено
	ErrNotConfigured = errors.New("create_reservation: storage is not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
