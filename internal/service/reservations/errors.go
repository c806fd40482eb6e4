package reservations

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных данных бронирования
	ErrInvalidInput = errors.New("reservations: invalid input data")

	// ErrNotFound возвращается, когда бронирование не найдено
	ErrNotFound = errors.New("reservations: reservation not found")

	// ErrNotConfigured возвращается при записи без настроенного хранилища
	ErrNotConfigured = errors.New("reservations: storage is not configured")

	// ErrTokenIssue возвращается, когда не удалось выпустить токен
	ErrTokenIssue = errors.New("reservations: failed to issue token")

	// ErrPersistence возвращается при ошибках хранилища
	ErrPersistence = errors.New("reservations: persistence failure")
)
