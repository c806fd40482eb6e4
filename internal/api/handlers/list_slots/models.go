package list_slots

import (
	"net/url"
	"strings"
	"time"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/service/availability/models"
)

// Response ближайшие слоты, сгруппированные по дате и месту
type Response struct {
	Days       []DayResponse `json:"days"`
	TotalSlots int           `json:"totalSlots"`
}

type DayResponse struct {
	Date      string             `json:"date"`
	Locations []LocationResponse `json:"locations"`
}

type LocationResponse struct {
	Location string                  `json:"location"`
	Slots    []handlers.SlotResponse `json:"slots"`
}

// parseFilter ?date=YYYY-MM-DD&location=... ("lieu" - синоним location)
func parseFilter(q url.Values, loc *time.Location) (domain.SlotFilter, error) {
	date, err := handlers.ParseOptionalDate("date", q.Get("date"), loc)
	if err != nil {
		return domain.SlotFilter{}, err
	}

	location := q.Get("location")
	if location == "" {
		location = q.Get("lieu")
	}

	return domain.SlotFilter{Date: date, Location: strings.TrimSpace(location)}, nil
}

func fromGroups(groups []models.DayGroup, loc *time.Location) Response {
	resp := Response{Days: make([]DayResponse, 0, len(groups))}
	for _, g := range groups {
		day := DayResponse{Date: g.Date, Locations: make([]LocationResponse, 0, len(g.Locations))}
		for _, l := range g.Locations {
			lr := LocationResponse{Location: l.Location, Slots: make([]handlers.SlotResponse, 0, len(l.Slots))}
			for _, s := range l.Slots {
				lr.Slots = append(lr.Slots, handlers.NewSlotResponse(s, loc))
			}
			resp.TotalSlots += len(lr.Slots)
			day.Locations = append(day.Locations, lr)
		}
		resp.Days = append(resp.Days, day)
	}
	return resp
}
