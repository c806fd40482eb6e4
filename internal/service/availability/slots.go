package availability

import (
	"fmt"
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/pkg/types"
)

// GenerateSlots нарезает окно [start, end) даты date на слоты по domain.SlotDuration
// Возвращает моменты начала слотов. Неполный хвостовой слот отбрасывается,
// окно короче одного слота (или с end <= start) дает пустой список.
func GenerateSlots(date string, start, end types.TimeString, loc *time.Location) ([]time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}

	day, err := time.ParseInLocation(domain.DateFormat, date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: date %q: %v", ErrInvalidInput, date, err)
	}

	from, err := start.On(day, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: start time: %v", ErrInvalidInput, err)
	}
	to, err := end.On(day, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: end time: %v", ErrInvalidInput, err)
	}

	starts := make([]time.Time, 0)
	for t := from; !t.Add(domain.SlotDuration).After(to); t = t.Add(domain.SlotDuration) {
		starts = append(starts, t)
	}

	return starts, nil
}
