// Package dashboard aggregates workforce-wide numbers for the landing page:
// headcount, bench size, active projects and the overall utilization rate.
package dashboard

import (
	"context"
	"log/slog"
	"math"
	"time"

	"github.com/satriajanaka/workforce-management/internal/allocation"
	"github.com/satriajanaka/workforce-management/internal/employee"
	"github.com/satriajanaka/workforce-management/internal/project"
)

type EmployeeStore interface {
	GetAll(ctx context.Context) ([]*employee.Employee, error)
}

type ProjectStore interface {
	GetByStatus(ctx context.Context, status string) ([]*project.Project, error)
}

type AllocationStore interface {
	SumActiveHours(ctx context.Context, referenceDate time.Time) (int, error)
}

// Stats is the dashboard snapshot for a reference date.
type Stats struct {
	TotalEmployees   int     `json:"total_employees"`
	BenchCount       int     `json:"bench_count"`
	PartialCount     int     `json:"partial_count"`
	FullyCount       int     `json:"fully_count"`
	ActiveProjects   int     `json:"active_projects"`
	AllocatedHours   int     `json:"allocated_hours"`
	UtilizationRate  float64 `json:"utilization_rate"`
	ReferenceDateISO string  `json:"reference_date"`
}

type Service struct {
	employees   EmployeeStore
	projects    ProjectStore
	allocations AllocationStore
	logger      *slog.Logger
}

func NewService(employees EmployeeStore, projects ProjectStore, allocations AllocationStore, logger *slog.Logger) *Service {
	return &Service{
		employees:   employees,
		projects:    projects,
		allocations: allocations,
		logger:      logger,
	}
}

// GetStats computes the snapshot. The utilization rate is allocated hours
// over total capacity, where capacity is headcount times the full-time week.
func (s *Service) GetStats(ctx context.Context, referenceDate time.Time) (*Stats, error) {
	employees, err := s.employees.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to load employees for stats", "error", err)
		return nil, err
	}

	stats := &Stats{
		TotalEmployees:   len(employees),
		ReferenceDateISO: referenceDate.Format("2006-01-02"),
	}
	for _, emp := range employees {
		switch emp.AvailabilityStatus {
		case employee.StatusBench:
			stats.BenchCount++
		case employee.StatusPartiallyUtilized:
			stats.PartialCount++
		case employee.StatusFullyUtilized:
			stats.FullyCount++
		}
	}

	active, err := s.projects.GetByStatus(ctx, project.StatusActive)
	if err != nil {
		s.logger.Error("failed to load active projects for stats", "error", err)
		return nil, err
	}
	stats.ActiveProjects = len(active)

	hours, err := s.allocations.SumActiveHours(ctx, referenceDate)
	if err != nil {
		s.logger.Error("failed to sum allocated hours for stats", "error", err)
		return nil, err
	}
	stats.AllocatedHours = hours

	if stats.TotalEmployees > 0 {
		capacity := float64(stats.TotalEmployees * allocation.FullTimeHoursPerWeek)
		rate := float64(hours) / capacity * 100
		stats.UtilizationRate = math.Round(rate*10) / 10
	}

	return stats, nil
}
