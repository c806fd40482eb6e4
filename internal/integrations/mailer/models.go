package mailer

import (
	"net/url"

	"github.com/m04kA/juice-reservations/internal/domain"
)

// Confirmation данные письма-подтверждения бронирования
type Confirmation struct {
	To          string
	Reservation domain.ReservationView
	BaseURL     string // публичный адрес сервиса
}

// ManageURL ссылка на просмотр/изменение/отмену бронирования
func (c Confirmation) ManageURL() string {
	return ManageURL(c.BaseURL, c.Reservation.Token)
}

// ManageURL <baseURL>/reservations/<token>
func ManageURL(baseURL, token string) string {
	link, err := url.JoinPath(baseURL, "reservations", token)
	if err != nil {
		return baseURL + "/reservations/" + token
	}
	return link
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
