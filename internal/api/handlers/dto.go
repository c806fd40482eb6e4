package handlers

import (
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
)

// SlotResponse слот для клиента: время показывается в зоне сервиса
type SlotResponse struct {
	ID         int64  `json:"id"`
	PresenceID int64  `json:"presenceId"`
	Location   string `json:"location"`
	Date       string `json:"date"`
	Time       string `json:"time"`
	StartAt    string `json:"startAt"`
}

// NewSlotResponse конвертирует слот в HTTP модель
func NewSlotResponse(s domain.SlotView, loc *time.Location) SlotResponse {
	local := s.StartAt.In(loc)
	return SlotResponse{
		ID:         s.SlotID,
		PresenceID: s.PresenceID,
		Location:   s.Location,
		Date:       s.Date,
		Time:       local.Format(domain.TimeFormat),
		StartAt:    local.Format(time.RFC3339),
	}
}

// ReservationResponse бронирование для клиента. Внутренний ID не публикуется.
type ReservationResponse struct {
	Token     string  `json:"token"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     string  `json:"phone"`
	Quantity  int     `json:"quantity"`
	Comment   *string `json:"comment,omitempty"`
	SlotID    int64   `json:"slotId"`
	Location  string  `json:"location"`
	Date      string  `json:"date"`
	Time      string  `json:"time"`
	StartAt   string  `json:"startAt"`
	CreatedAt string  `json:"createdAt"`
}

// NewReservationResponse конвертирует бронирование в HTTP модель
func NewReservationResponse(v domain.ReservationView, loc *time.Location) ReservationResponse {
	local := v.StartAt.In(loc)
	return ReservationResponse{
		Token:     v.Token,
		FirstName: v.FirstName,
		LastName:  v.LastName,
		Phone:     v.Phone,
		Quantity:  v.Quantity,
		Comment:   v.Comment,
		SlotID:    v.SlotID,
		Location:  v.Location,
		Date:      v.Date,
		Time:      local.Format(domain.TimeFormat),
		StartAt:   local.Format(time.RFC3339),
		CreatedAt: v.CreatedAt.In(loc).Format(time.RFC3339),
	}
}

// NewReservationList конвертирует список бронирований
func NewReservationList(views []domain.ReservationView, loc *time.Location) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(views))
	for _, v := range views {
		out = append(out, NewReservationResponse(v, loc))
	}
	return out
}

// PresenceResponse присутствие для администратора
type PresenceResponse struct {
	ID        int64  `json:"id"`
	Location  string `json:"location"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
}

// NewPresenceResponse конвертирует присутствие в HTTP модель
func NewPresenceResponse(p domain.Presence) PresenceResponse {
	return PresenceResponse{
		ID:        p.ID,
		Location:  p.Location,
		Date:      p.Date,
		StartTime: p.StartTime.String(),
		EndTime:   p.EndTime.String(),
	}
}

// NewPresenceList конвертирует список присутствий
func NewPresenceList(presences []domain.Presence) []PresenceResponse {
	out := make([]PresenceResponse, 0, len(presences))
	for _, p := range presences {
		out = append(out, NewPresenceResponse(p))
	}
	return out
}
