package domain

import "time"

// Reservation бронирование ровно одного слота одним человеком
// Наружу адресуется только по Token, внутренний ID не публикуется
type Reservation struct {
	ID        int64
	SlotID    int64
	FirstName string
	LastName  string
	Phone     string
	Quantity  int
	Comment   *string
	Token     string
	CreatedAt time.Time
}

// ReservationView бронирование с денормализованными полями слота и присутствия
type ReservationView struct {
	Reservation
	StartAt  time.Time
	Location string
	Date     string
}

// IsModifiable можно ли ещё изменить или отменить бронирование
func (r *ReservationView) IsModifiable(now time.Time) bool {
	return IsModifiable(r.StartAt, now)
}

// Apply применяет изменяемые поля
func (r *Reservation) Apply(u ReservationUpdate) {
	r.FirstName = u.FirstName
	r.LastName = u.LastName
	r.Phone = u.Phone
	r.Quantity = u.Quantity
	r.Comment = u.Comment
}

// ReservationUpdate изменяемые поля бронирования
type ReservationUpdate struct {
	FirstName string
	LastName  string
	Phone     string
	Quantity  int
	Comment   *string
}

// ReservationFilter фильтр списка бронирований для администратора
type ReservationFilter struct {
	Date     *string // точное совпадение даты присутствия
	Location string  // подстрока без учета регистра
}

// IsModifiable правило отсечки: изменять и отменять можно строго до начала слота
func IsModifiable(slotStart, now time.Time) bool {
	return now.Before(slotStart)
}
