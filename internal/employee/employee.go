package employee

import (
	"time"

	employeeDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/employee"
	"github.com/satriajanaka/workforce-management/internal/core/skills"
)

// Availability statuses. The value is derived from active allocations and is
// only ever written by the utilization engine; treat it as a cached
// projection, not an input.
const (
	StatusBench             = "Bench"
	StatusPartiallyUtilized = "Partially Utilized"
	StatusFullyUtilized     = "Fully Utilized"
)

type Employee struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Mobile             string    `json:"mobile,omitempty"`
	Designation        string    `json:"designation,omitempty"`
	Skills             string    `json:"skills"`
	AvailabilityStatus string    `json:"availability_status"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

// SkillSet parses the stored delimited skill labels into the normalized form
// used by the matcher.
func (e *Employee) SkillSet() skills.Set {
	return skills.Parse(e.Skills)
}

// IsAssignable reports whether the employee can be offered to projects.
// Fully utilized employees are never candidates, regardless of skill fit.
func (e *Employee) IsAssignable() bool {
	return e.AvailabilityStatus == StatusBench || e.AvailabilityStatus == StatusPartiallyUtilized
}

func ToDataModel(e *Employee) *employeeDatamodel.Employee {
	return &employeeDatamodel.Employee{
		ID:                 e.ID,
		Name:               e.Name,
		Email:              e.Email,
		Mobile:             e.Mobile,
		Designation:        e.Designation,
		Skills:             e.Skills,
		AvailabilityStatus: e.AvailabilityStatus,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func FromDataModel(e *employeeDatamodel.Employee) *Employee {
	return &Employee{
		ID:                 e.ID,
		Name:               e.Name,
		Email:              e.Email,
		Mobile:             e.Mobile,
		Designation:        e.Designation,
		Skills:             e.Skills,
		AvailabilityStatus: e.AvailabilityStatus,
		CreatedAt:          e.CreatedAt,
		UpdatedAt:          e.UpdatedAt,
	}
}

func FromDataModelSlice(records []*employeeDatamodel.Employee) []*Employee {
	result := make([]*Employee, len(records))
	for i, e := range records {
		result[i] = FromDataModel(e)
	}
	return result
}
