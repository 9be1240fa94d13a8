package allocation

import (
	"time"

	"github.com/satriajanaka/workforce-management/internal"
)

const dateLayout = "2006-01-02"

// CreateAllocationDTO represents the request payload for assigning an
// employee to a project. Dates are YYYY-MM-DD strings.
type CreateAllocationDTO struct {
	EmployeeID     int64  `json:"employee_id"`
	ProjectID      int64  `json:"project_id"`
	AllocatedHours int    `json:"allocated_hours"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
}

func (dto CreateAllocationDTO) Validate() error {
	if dto.EmployeeID <= 0 {
		return internal.NewValidationError("employee_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.ProjectID <= 0 {
		return internal.NewValidationError("project_id is required", internal.ErrCodeValidationFailed)
	}
	if dto.AllocatedHours <= 0 {
		return internal.NewValidationError("allocated_hours must be positive", internal.ErrCodeInvalidHours)
	}
	start, err := parseDate(dto.StartDate, "start_date")
	if err != nil {
		return err
	}
	end, err := parseDate(dto.EndDate, "end_date")
	if err != nil {
		return err
	}
	if end.Before(start) {
		return internal.NewValidationError("end_date must not be before start_date", internal.ErrCodeInvalidDateRange)
	}
	return nil
}

func (dto CreateAllocationDTO) ParsedStartDate() (time.Time, error) {
	return parseDate(dto.StartDate, "start_date")
}

func (dto CreateAllocationDTO) ParsedEndDate() (time.Time, error) {
	return parseDate(dto.EndDate, "end_date")
}

// UpdateAllocationDTO represents a partial update. Nil fields keep their
// current value; the merged record is re-validated with the create rules.
type UpdateAllocationDTO struct {
	AllocatedHours *int    `json:"allocated_hours,omitempty"`
	StartDate      *string `json:"start_date,omitempty"`
	EndDate        *string `json:"end_date,omitempty"`
}

// ApplyTo merges the provided fields onto the existing record, validating the
// result.
func (dto UpdateAllocationDTO) ApplyTo(existing *Allocation) error {
	if dto.AllocatedHours != nil {
		existing.AllocatedHours = *dto.AllocatedHours
	}
	if dto.StartDate != nil {
		start, err := parseDate(*dto.StartDate, "start_date")
		if err != nil {
			return err
		}
		existing.StartDate = start
	}
	if dto.EndDate != nil {
		end, err := parseDate(*dto.EndDate, "end_date")
		if err != nil {
			return err
		}
		existing.EndDate = end
	}

	if existing.AllocatedHours <= 0 {
		return internal.NewValidationError("allocated_hours must be positive", internal.ErrCodeInvalidHours)
	}
	if existing.EndDate.Before(existing.StartDate) {
		return internal.NewValidationError("end_date must not be before start_date", internal.ErrCodeInvalidDateRange)
	}
	return nil
}

func parseDate(raw, field string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, internal.NewValidationError(field+" is required", internal.ErrCodeValidationFailed)
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, internal.NewValidationError(field+" must be in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}
	return parsed, nil
}
