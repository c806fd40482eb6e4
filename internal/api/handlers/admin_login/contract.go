package admin_login

import "time"

type Authenticator interface {
	Login(password string) (string, time.Time, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
