package update_reservation

import (
	"github.com/m04kA/juice-reservations/internal/api/handlers"
	"github.com/m04kA/juice-reservations/internal/domain"
	modifyReservation "github.com/m04kA/juice-reservations/internal/usecase/modify_reservation"
)

// UpdateReservationRequest HTTP request model: все изменяемые поля целиком
type UpdateReservationRequest struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Phone     string  `json:"phone"`
	Quantity  int     `json:"quantity"`
	Comment   *string `json:"comment,omitempty"`
}

// ToUseCaseRequest проверяет поля и конвертирует HTTP запрос в модель use case
func (r *UpdateReservationRequest) ToUseCaseRequest(token string) (*modifyReservation.Request, error) {
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

	return &modifyReservation.Request{
		Token: token,
		Update: domain.ReservationUpdate{
			FirstName: contact.FirstName,
			LastName:  contact.LastName,
			Phone:     contact.Phone,
			Quantity:  contact.Quantity,
			Comment:   contact.Comment,
		},
	}, nil
}
