package employee

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/satriajanaka/workforce-management/internal"
)

// Repository defines the data access methods for employees.
type Repository interface {
	Create(ctx context.Context, emp *Employee) error
	GetByID(ctx context.Context, id int64) (*Employee, error)
	GetByEmail(ctx context.Context, email string) (*Employee, error)
	GetAll(ctx context.Context) ([]*Employee, error)
	GetByAvailability(ctx context.Context, statuses ...string) ([]*Employee, error)
}

// UserLinker attaches an employee profile to the user account registered with
// the same email, if one exists.
type UserLinker interface {
	LinkEmployeeByEmail(ctx context.Context, email string, employeeID int64) (bool, error)
}

// BenchCalculator reports how many days an employee has been on the bench as
// of a reference date.
type BenchCalculator interface {
	BenchDays(ctx context.Context, employeeID int64, referenceDate time.Time) (int, error)
}

type Service struct {
	repo   Repository
	users  UserLinker
	bench  BenchCalculator
	logger *slog.Logger
}

func NewService(repo Repository, users UserLinker, bench BenchCalculator, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		users:  users,
		bench:  bench,
		logger: logger,
	}
}

// CreateEmployee registers a new employee. New employees start on the bench;
// a user account registered with the same email is linked automatically.
func (s *Service) CreateEmployee(ctx context.Context, dto CreateEmployeeDTO) (*Employee, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("employee validation failed", "error", err, "email", dto.Email)
		return nil, err
	}

	existing, err := s.repo.GetByEmail(ctx, dto.Email)
	if err != nil && !errors.Is(err, internal.ErrEmployeeNotFound) {
		s.logger.Error("failed to check employee email", "error", err, "email", dto.Email)
		return nil, err
	}
	if existing != nil {
		return nil, internal.ErrEmployeeEmailTaken
	}

	emp := &Employee{
		Name:               dto.Name,
		Email:              dto.Email,
		Mobile:             dto.Mobile,
		Designation:        dto.Designation,
		Skills:             dto.Skills,
		AvailabilityStatus: StatusBench,
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		s.logger.Error("failed to create employee", "error", err, "email", dto.Email)
		return nil, err
	}

	if s.users != nil {
		linked, err := s.users.LinkEmployeeByEmail(ctx, emp.Email, emp.ID)
		if err != nil {
			s.logger.Warn("failed to auto-link user account", "error", err, "email", emp.Email)
		} else if linked {
			s.logger.Info("employee linked to existing user account", "employee_id", emp.ID, "email", emp.Email)
		}
	}

	s.logger.Info("employee created", "employee_id", emp.ID, "email", emp.Email)
	return emp, nil
}

func (s *Service) GetEmployee(ctx context.Context, id int64) (*Employee, error) {
	emp, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get employee", "error", err, "employee_id", id)
		return nil, err
	}
	return emp, nil
}

func (s *Service) ListEmployees(ctx context.Context) ([]*Employee, error) {
	employees, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list employees", "error", err)
		return nil, err
	}
	return employees, nil
}

// ListBench returns employees currently on the bench, longest-benched first.
func (s *Service) ListBench(ctx context.Context, referenceDate time.Time) ([]*BenchEmployeeDTO, error) {
	employees, err := s.repo.GetByAvailability(ctx, StatusBench)
	if err != nil {
		s.logger.Error("failed to list bench employees", "error", err)
		return nil, err
	}

	report := make([]*BenchEmployeeDTO, 0, len(employees))
	for _, emp := range employees {
		days, err := s.bench.BenchDays(ctx, emp.ID, referenceDate)
		if err != nil {
			s.logger.Error("failed to compute bench days", "error", err, "employee_id", emp.ID)
			return nil, err
		}
		report = append(report, &BenchEmployeeDTO{Employee: emp, BenchDays: days})
	}

	sort.Slice(report, func(i, j int) bool {
		if report[i].BenchDays != report[j].BenchDays {
			return report[i].BenchDays > report[j].BenchDays
		}
		return report[i].ID < report[j].ID
	})

	return report, nil
}
