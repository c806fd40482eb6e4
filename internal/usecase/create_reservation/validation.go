package create_reservation

import (
	"fmt"
	"strings"

	"github.com/m04kA/juice-reservations/internal/domain"
)

// validateRequest проверяет инварианты, которые должен гарантировать слой выше
func validateRequest(req *Request) error {
	if req.SlotID <= 0 {
		return fmt.Errorf("%w: slotID must be positive", ErrInvalidInput)
	}

	if strings.TrimSpace(req.FirstName) == "" || strings.TrimSpace(req.LastName) == "" {
		return fmt.Errorf("%w: first and last name are required", ErrInvalidInput)
	}

	if req.Quantity < domain.MinQuantity || req.Quantity > domain.MaxQuantity {
		return fmt.Errorf("%w: quantity must be between %d and %d", ErrInvalidInput, domain.MinQuantity, domain.MaxQuantity)
	}

	return nil
}
