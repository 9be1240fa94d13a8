package allocation

import (
	"time"

	allocationDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/allocation"
)

// FullTimeHoursPerWeek is the fixed full-time baseline. Utilization is always
// measured against this constant, not against any per-employee capacity.
const FullTimeHoursPerWeek = 40

type Allocation struct {
	ID             int64     `json:"id"`
	EmployeeID     int64     `json:"employee_id"`
	ProjectID      int64     `json:"project_id"`
	AllocatedHours int       `json:"allocated_hours"`
	StartDate      time.Time `json:"start_date"`
	EndDate        time.Time `json:"end_date"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// IsActiveOn reports whether the allocation counts toward utilization as of
// the reference date. Only the end date is checked: an allocation whose start
// date is still in the future already counts. That mirrors the upstream
// behavior and is covered by a test rather than silently corrected.
func (a *Allocation) IsActiveOn(referenceDate time.Time) bool {
	return !dateOf(a.EndDate).Before(dateOf(referenceDate))
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func ToDataModel(a *Allocation) *allocationDatamodel.Allocation {
	return &allocationDatamodel.Allocation{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		ProjectID:      a.ProjectID,
		AllocatedHours: a.AllocatedHours,
		StartDate:      a.StartDate,
		EndDate:        a.EndDate,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func FromDataModel(a *allocationDatamodel.Allocation) *Allocation {
	return &Allocation{
		ID:             a.ID,
		EmployeeID:     a.EmployeeID,
		ProjectID:      a.ProjectID,
		AllocatedHours: a.AllocatedHours,
		StartDate:      a.StartDate,
		EndDate:        a.EndDate,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}
}

func FromDataModelSlice(records []*allocationDatamodel.Allocation) []*Allocation {
	result := make([]*Allocation, len(records))
	for i, a := range records {
		result[i] = FromDataModel(a)
	}
	return result
}
