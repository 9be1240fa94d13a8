package project

import (
	"time"

	projectDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/project"
	"github.com/satriajanaka/workforce-management/internal/core/skills"
)

const (
	StatusActive    = "Active"
	StatusCompleted = "Completed"
)

type Project struct {
	ID             int64      `json:"id"`
	Name           string     `json:"name"`
	ClientName     string     `json:"client_name"`
	RequiredSkills string     `json:"required_skills"`
	StartDate      *time.Time `json:"start_date,omitempty"`
	EndDate        *time.Time `json:"end_date,omitempty"`
	Status         string     `json:"status"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// RequiredSkillSet parses the stored delimited skill labels into the
// normalized form used by the matcher.
func (p *Project) RequiredSkillSet() skills.Set {
	return skills.Parse(p.RequiredSkills)
}

func (p *Project) IsActive() bool {
	return p.Status == StatusActive
}

func ToDataModel(p *Project) *projectDatamodel.Project {
	return &projectDatamodel.Project{
		ID:             p.ID,
		Name:           p.Name,
		ClientName:     p.ClientName,
		RequiredSkills: p.RequiredSkills,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func FromDataModel(p *projectDatamodel.Project) *Project {
	return &Project{
		ID:             p.ID,
		Name:           p.Name,
		ClientName:     p.ClientName,
		RequiredSkills: p.RequiredSkills,
		StartDate:      p.StartDate,
		EndDate:        p.EndDate,
		Status:         p.Status,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
	}
}

func FromDataModelSlice(records []*projectDatamodel.Project) []*Project {
	result := make([]*Project, len(records))
	for i, p := range records {
		result[i] = FromDataModel(p)
	}
	return result
}
