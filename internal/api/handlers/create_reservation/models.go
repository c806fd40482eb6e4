package create_reservation

import (
	"time"

	"github.com/m04kA/juice-reservations/internal/api/handlers"
	createReservation "github.com/m04kA/juice-reservations/internal/usecase/create_reservation"
)

// CreateReservationRequest HTTP request model
type CreateReservationRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     string  `json:"phone"`
	Quantity  int     `json:"quantity"`
	Comment   *string `json:"comment,omitempty"`
	Email     *string `json:"email,omitempty"`
}

// CreateReservationResponse HTTP response model
type CreateReservationResponse struct {
	Reservation handlers.ReservationResponse `json:"reservation"`
	ManageURL   string                       `json:"manageUrl"`
	EmailSent   bool                         `json:"emailSent"`
}

// ToUseCaseRequest проверяет поля и конвертирует HTTP запрос в модель use case
func (r *CreateReservationRequest) ToUseCaseRequest(slotID int64) (*createReservation.Request, error) {
	contact := handlers.Contact{
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Phone:     r.Phone,
		Quantity:  r.Quantity,
		Comment:   r.Comment,
	}
	if err := contact.Normalize(); err != nil {
		return nil, err
	}

	email, err := handlers.NormalizeEmail(r.Email)
	if err != nil {
		return nil, err
	}

	return &createReservation.Request{
		SlotID:    slotID,
		FirstName: contact.FirstName,
		LastName:  contact.LastName,
		Phone:     contact.Phone,
		Quantity:  contact.Quantity,
		Comment:   contact.Comment,
		Email:     email,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createReservation.Response, loc *time.Location) *CreateReservationResponse {
	return &CreateReservationResponse{
		Reservation: handlers.NewReservationResponse(resp.Reservation, loc),
		ManageURL:   resp.ManageURL,
		EmailSent:   resp.EmailSent,
	}
}
