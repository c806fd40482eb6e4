package domain

import (
	"time"

	"github.com/m04kA/juice-reservations/pkg/types"
)

// Presence окно доступности, объявленное администратором: место, дата, интервал времени
type Presence struct {
	ID        int64
	Location  string
	Date      string           // YYYY-MM-DD, локальная дата
	StartTime types.TimeString // HH:MM
	EndTime   types.TimeString // HH:MM
}

// HasValidWindow true, если начало строго раньше конца
func (p *Presence) HasValidWindow() bool {
	return p.StartTime.IsBefore(p.EndTime)
}

// ParseDate разбирает дату присутствия в указанной зоне
func (p *Presence) ParseDate(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation(DateFormat, p.Date, loc)
}
