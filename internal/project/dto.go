package project

import (
	"strings"
	"time"

	"github.com/satriajanaka/workforce-management/internal"
)

const dateLayout = "2006-01-02"

// CreateProjectDTO represents the request payload for opening a project.
// Dates are optional YYYY-MM-DD strings.
type CreateProjectDTO struct {
	Name           string `json:"name"`
	ClientName     string `json:"client_name"`
	RequiredSkills string `json:"required_skills,omitempty"`
	StartDate      string `json:"start_date,omitempty"`
	EndDate        string `json:"end_date,omitempty"`
}

func (dto CreateProjectDTO) Validate() error {
	if strings.TrimSpace(dto.Name) == "" {
		return internal.NewValidationError("name is required", internal.ErrCodeValidationFailed)
	}
	if strings.TrimSpace(dto.ClientName) == "" {
		return internal.NewValidationError("client_name is required", internal.ErrCodeValidationFailed)
	}
	start, err := dto.ParsedStartDate()
	if err != nil {
		return err
	}
	end, err := dto.ParsedEndDate()
	if err != nil {
		return err
	}
	if start != nil && end != nil && end.Before(*start) {
		return internal.NewValidationError("end_date must not be before start_date", internal.ErrCodeInvalidDateRange)
	}
	return nil
}

func (dto CreateProjectDTO) ParsedStartDate() (*time.Time, error) {
	return parseOptionalDate(dto.StartDate, "start_date")
}

func (dto CreateProjectDTO) ParsedEndDate() (*time.Time, error) {
	return parseOptionalDate(dto.EndDate, "end_date")
}

func parseOptionalDate(raw, field string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, internal.NewValidationError(field+" must be in YYYY-MM-DD format", internal.ErrCodeInvalidDate)
	}
	return &parsed, nil
}

// UpdateProjectStatusDTO represents the request for moving a project between
// Active and Completed.
type UpdateProjectStatusDTO struct {
	Status string `json:"status"`
}

func (dto UpdateProjectStatusDTO) Validate() error {
	if dto.Status != StatusActive && dto.Status != StatusCompleted {
		return internal.NewValidationError("status must be either 'Active' or 'Completed'", internal.ErrCodeInvalidStatus)
	}
	return nil
}
