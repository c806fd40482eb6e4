package domain

import "time"

// Slot атомарная единица бронирования длиной SlotDuration
type Slot struct {
	ID         int64
	PresenceID int64
	StartAt    time.Time // абсолютный момент начала (UTC в хранилище)
}

// SlotView слот вместе с полями присутствия (результат join'а)
type SlotView struct {
	SlotID     int64
	PresenceID int64
	StartAt    time.Time
	Location   string
	Date       string
}

// HasStarted true, если слот уже начался к моменту now
func (s *SlotView) HasStarted(now time.Time) bool {
	return !IsModifiable(s.StartAt, now)
}

// SlotFilter фильтр для списка ближайших слотов
type SlotFilter struct {
	Date     *string // точное совпадение даты присутствия (опционально)
	Location string  // подстрока без учета регистра (пусто = без фильтра)
}
