package employee

import (
	"strings"

	"github.com/satriajanaka/workforce-management/internal"
)

// CreateEmployeeDTO represents the request payload for registering an employee.
type CreateEmployeeDTO struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Mobile      string `json:"mobile,omitempty"`
	Designation string `json:"designation,omitempty"`
	Skills      string `json:"skills,omitempty"`
}

func (dto CreateEmployeeDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.Email) == "" {
		return internal.NewValidationError("email is required", internal.ErrCodeValidationFailed)
	}
	if !strings.Contains(dto.Email, "@") {
		return internal.NewValidationError("email is not valid", internal.ErrCodeValidationFailed)
	}
	return nil
}

// BenchEmployeeDTO is an employee on the bench annotated with how long they
// have been there.
type BenchEmployeeDTO struct {
	*Employee
	BenchDays int `json:"bench_days"`
}
