package create_reservation

import "github.com/m04kA/juice-reservations/internal/domain"

// Request модель запроса на создание бронирования (уже провалидирована на границе)
type Request struct {
	SlotID    int64
	FirstName string
	LastName  string
	Phone     string
	Quantity  int
	Comment   *string
	Email     *string // адрес для подтверждения (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	Reservation domain.ReservationView
	ManageURL   string
	EmailSent   bool
}
