package admin_dashboard

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("admin_dashboard: internal error")
