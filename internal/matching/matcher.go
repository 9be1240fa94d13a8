// Package matching ranks employees against a project's required skills and
// vice versa. Matching is read-only: it never mutates any record and is safe
// to run concurrently and repeatedly.
package matching

import (
	"context"
	"log/slog"
	"math"
	"sort"

	"github.com/satriajanaka/workforce-management/internal/core/skills"
	"github.com/satriajanaka/workforce-management/internal/employee"
	"github.com/satriajanaka/workforce-management/internal/project"
)

// DefaultMinMatchPercent is the cutoff applied when the caller does not
// supply one.
const DefaultMinMatchPercent = 50.0

type EmployeeStore interface {
	GetByID(ctx context.Context, id int64) (*employee.Employee, error)
	GetByAvailability(ctx context.Context, statuses ...string) ([]*employee.Employee, error)
}

type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*project.Project, error)
	GetByStatus(ctx context.Context, status string) ([]*project.Project, error)
}

// EmployeeMatch is a candidate employee for a project. MatchedSkills is
// carried for display only and plays no part in ordering.
type EmployeeMatch struct {
	Employee      *employee.Employee `json:"employee"`
	MatchPercent  float64            `json:"match_percent"`
	MatchedSkills skills.Set         `json:"matched_skills"`
}

// ProjectMatch is a candidate project for an employee.
type ProjectMatch struct {
	Project       *project.Project `json:"project"`
	MatchPercent  float64          `json:"match_percent"`
	MatchedSkills skills.Set       `json:"matched_skills"`
}

type Service struct {
	employees EmployeeStore
	projects  ProjectStore
	logger    *slog.Logger
}

func NewService(employees EmployeeStore, projects ProjectStore, logger *slog.Logger) *Service {
	return &Service{
		employees: employees,
		projects:  projects,
		logger:    logger,
	}
}

// MatchEmployeesForProject scores bench and partially utilized employees
// against the project's required skills. Fully utilized employees are never
// candidates regardless of fit, and employees with no recorded skills are
// skipped rather than scored at zero. A project with no required skills
// yields an empty result: there is no signal to rank against.
func (s *Service) MatchEmployeesForProject(ctx context.Context, projectID int64, minMatchPercent float64) ([]*EmployeeMatch, error) {
	proj, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		s.logger.Error("project not found for matching", "error", err, "project_id", projectID)
		return nil, err
	}

	required := proj.RequiredSkillSet()
	if required.IsEmpty() {
		return []*EmployeeMatch{}, nil
	}

	candidates, err := s.employees.GetByAvailability(ctx, employee.StatusBench, employee.StatusPartiallyUtilized)
	if err != nil {
		s.logger.Error("failed to load match candidates", "error", err, "project_id", projectID)
		return nil, err
	}

	matches := make([]*EmployeeMatch, 0, len(candidates))
	for _, emp := range candidates {
		candidateSkills := emp.SkillSet()
		if candidateSkills.IsEmpty() {
			continue
		}

		matched := required.Intersect(candidateSkills)
		percent := matchPercent(len(matched), len(required))
		if percent < minMatchPercent {
			continue
		}

		matches = append(matches, &EmployeeMatch{
			Employee:      emp,
			MatchPercent:  percent,
			MatchedSkills: matched,
		})
	}

	// Descending by match percent; ties break on employee ID ascending to
	// keep the ordering stable across runs.
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].MatchPercent != matches[j].MatchPercent {
			return matches[i].MatchPercent > matches[j].MatchPercent
		}
		return matches[i].Employee.ID < matches[j].Employee.ID
	})

	return matches, nil
}

// MatchProjectsForEmployee mirrors MatchEmployeesForProject with the roles
// reversed: candidates are active projects, and each project's own
// required-skill count is the scoring denominator.
func (s *Service) MatchProjectsForEmployee(ctx context.Context, employeeID int64, minMatchPercent float64) ([]*ProjectMatch, error) {
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		s.logger.Error("employee not found for matching", "error", err, "employee_id", employeeID)
		return nil, err
	}

	candidateSkills := emp.SkillSet()
	if candidateSkills.IsEmpty() {
		return []*ProjectMatch{}, nil
	}

	candidates, err := s.projects.GetByStatus(ctx, project.StatusActive)
	if err != nil {
		s.logger.Error("failed to load active projects for matching", "error", err, "employee_id", employeeID)
		return nil, err
	}

	matches := make([]*ProjectMatch, 0, len(candidates))
	for _, proj := range candidates {
		required := proj.RequiredSkillSet()
		if required.IsEmpty() {
			continue
		}

		matched := required.Intersect(candidateSkills)
		percent := matchPercent(len(matched), len(required))
		if percent < minMatchPercent {
			continue
		}

		matches = append(matches, &ProjectMatch{
			Project:       proj,
			MatchPercent:  percent,
			MatchedSkills: matched,
		})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].MatchPercent != matches[j].MatchPercent {
			return matches[i].MatchPercent > matches[j].MatchPercent
		}
		return matches[i].Project.ID < matches[j].Project.ID
	})

	return matches, nil
}

// matchPercent scores the overlap against the required-skill count. The
// denominator is always the requirement side: a candidate carrying extra
// unrelated skills is not penalized.
func matchPercent(matched, required int) float64 {
	percent := float64(matched) / float64(required) * 100
	return math.Round(percent*10) / 10
}
