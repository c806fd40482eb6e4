package create_presence

import (
	"strings"
	"time"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/service/availability/models"
	"github.com/m04kA/juice-reservations/pkg/types"
)

// CreatePresenceRequest HTTP request model
type CreatePresenceRequest struct {
	Location  string `json:"location"`
	Date      string `json:"date"`      // "2025-10-01"
	StartTime string `json:"startTime"` // "09:00"
	EndTime   string `json:"endTime"`   // "12:00"
}

// CreatePresenceResponse HTTP response model
type CreatePresenceResponse struct {
	Presence   handlers.PresenceResponse `json:"presence"`
	Slots      []string                  `json:"slots"`
	SlotsCount int                       `json:"slotsCount"`
}

// ToServiceRequest проверяет поля и конвертирует HTTP запрос в модель сервиса
// Дата должна быть сегодняшней или будущей в зоне loc
func (r *CreatePresenceRequest) ToServiceRequest(now time.Time, loc *time.Location) (models.CreatePresenceRequest, error) {
	location := strings.TrimSpace(r.Location)
	if err := handlers.CheckLength("location", "le lieu", location, 1, domain.MaxLocationLength); err != nil {
		return models.CreatePresenceRequest{}, err
	}

	date, err := handlers.ParseDate("date", r.Date, loc)
	if err != nil {
		return models.CreatePresenceRequest{}, err
	}
	today := now.In(loc).Format(domain.DateFormat)
	if date.Format(domain.DateFormat) < today {
		return models.CreatePresenceRequest{}, &handlers.ValidationError{Field: "date", Message: "la date ne peut pas être dans le passé"}
	}

	start, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return models.CreatePresenceRequest{}, &handlers.ValidationError{Field: "startTime", Message: "heure de début invalide, format attendu HH:MM"}
	}
	end, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return models.CreatePresenceRequest{}, &handlers.ValidationError{Field: "endTime", Message: "heure de fin invalide, format attendu HH:MM"}
	}
	if !start.IsBefore(end) {
		return models.CreatePresenceRequest{}, &handlers.ValidationError{Field: "endTime", Message: "l'heure de fin doit être après l'heure de début"}
	}

	return models.CreatePresenceRequest{
		Location:  location,
		Date:      date.Format(domain.DateFormat),
		StartTime: start,
		EndTime:   end,
	}, nil
}

// FromServiceResponse конвертирует созданное присутствие в HTTP response
func FromServiceResponse(created *models.CreatedPresence, loc *time.Location) *CreatePresenceResponse {
	slots := make([]string, 0, len(created.Slots))
	for _, s := range created.Slots {
		slots = append(slots, s.In(loc).Format(domain.TimeFormat))
	}
	return &CreatePresenceResponse{
		Presence:   handlers.NewPresenceResponse(created.Presence),
		Slots:      slots,
		SlotsCount: len(slots),
	}
}
