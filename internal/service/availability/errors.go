package availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных данных присутствия
	ErrInvalidInput = errors.New("availability: invalid input data")

	// ErrNotFound возвращается, когда слот или присутствие не найдены
	ErrNotFound = errors.New("availability: not found")

	// ErrNotConfigured возвращается при записи без настроенного хранилища
	ErrNotConfigured = errors.New("availability: storage is not configured")

	// ErrPersistence возвращается при ошибках хранилища
	ErrPersistence = errors.New("availability: persistence failure")
)
