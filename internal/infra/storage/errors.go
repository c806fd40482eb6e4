package storage

import "errors"

// Общие ошибки хранилища. Все реализации (SQL, in-memory, unconfigured) возвращают именно их,
// чтобы сервисный слой мог маппить ошибки через errors.Is независимо от бэкенда.
var (
	// ErrNotConfigured возвращается при записи, когда нет бэкенда с правами на запись
	ErrNotConfigured = errors.New("storage: no writable backend configured")

	// ErrPresenceNotFound возвращается, когда присутствие не найдено
	ErrPresenceNotFound = errors.New("storage: presence not found")

	// ErrSlotNotFound возвращается, когда слот не найден
	ErrSlotNotFound = errors.New("storage: slot not found")

	// ErrReservationNotFound возвращается, когда бронирование не найдено
	ErrReservationNotFound = errors.New("storage: reservation not found")

	// ErrDuplicate возвращается при нарушении уникальности (например, token)
	ErrDuplicate = errors.New("storage: duplicate key")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("storage: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("storage: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("storage: failed to scan row")

	// ErrMigrate возвращается при ошибке создания схемы
	ErrMigrate = errors.New("storage: failed to migrate schema")
)
