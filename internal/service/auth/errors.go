package auth

import "errors"

var (
	// ErrInvalidCredentials возвращается при неверном пароле
	ErrInvalidCredentials = errors.New("auth: invalid credentials")

	// ErrNotConfigured возвращается, когда пароль администратора не задан
	ErrNotConfigured = errors.New("auth: admin password is not configured")

	// ErrInvalidSession возвращается для отсутствующей, просроченной или поддельной сессии
	ErrInvalidSession = errors.New("auth: invalid session")

	// ErrInternal возвращается при внутренних ошибках (генерация секрета, подпись)
	ErrInternal = errors.New("auth: internal error")
)
