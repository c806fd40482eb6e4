package domain

import "time"

// Длительность одного слота: окно присутствия нарезается на отрезки по 15 минут
const SlotDuration = 15 * time.Minute

// Ограничения на входные данные (проверяются на границе, в HTTP-слое)
const (
	MaxNameLength     = 50
	MinPhoneLength    = 8
	MaxPhoneLength    = 20
	MinQuantity       = 1
	MaxQuantity       = 10
	MaxCommentLength  = 500
	MaxEmailLength    = 100
	MaxLocationLength = 100
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// DefaultTimezone зона, в которой интерпретируются дата и время присутствия
const DefaultTimezone = "Europe/Brussels"
