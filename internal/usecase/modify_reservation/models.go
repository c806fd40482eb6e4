package modify_reservation

import "github.com/m04kA/juice-reservations/internal/domain"

// Request новые значения изменяемых полей
type Request struct {
	Token  string
	Update domain.ReservationUpdate
}
