package user

import (
	"strings"

	"github.com/satriajanaka/workforce-management/internal"
)

// LinkProfileDTO requests linking the caller's account to the employee
// profile registered under the given email.
type LinkProfileDTO struct {
	Email string `json:"email"`
}

func (dto LinkProfileDTO) Validate() error {
	if strings.TrimSpace(dto.Email) == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeValidationFailed)
	}
	if !strings.Contains(dto.Email, "@") {
		return internal.NewValidationError("email is not valid", internal.ErrCodeValidationFailed)
	}
	return nil
}
