package reservations

import (
	"fmt"

	"github.com/google/uuid"
)

// UUIDTokenIssuer токены на основе случайного UUID v4 (122 случайных бита)
type UUIDTokenIssuer struct{}

// Issue выпускает новый токен
func (UUIDTokenIssuer) Issue() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrTokenIssue, err)
	}
	return id.String(), nil
}
