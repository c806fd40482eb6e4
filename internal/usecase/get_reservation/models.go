package get_reservation

import "github.com/m04kA/juice-reservations/internal/domain"

// Response бронирование и признак, можно ли его ещё изменить или отменить
type Response struct {
	Reservation domain.ReservationView
	Modifiable  bool
}
