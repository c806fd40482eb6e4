package models

import (
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/pkg/types"
)

// CreatePresenceRequest запрос на создание присутствия
type CreatePresenceRequest struct {
	Location  string
	Date      string // YYYY-MM-DD
	StartTime types.TimeString
	EndTime   types.TimeString
}

// CreatedPresence созданное присутствие и моменты начала его слотов
type CreatedPresence struct {
	Presence domain.Presence
	Slots    []time.Time
}

// DayGroup слоты одного дня, сгруппированные по месту
type DayGroup struct {
	Date      string
	Locations []LocationGroup
}

// LocationGroup слоты одного места в течение дня
type LocationGroup struct {
	Location string
	Slots    []domain.SlotView
}
