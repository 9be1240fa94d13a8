package allocation

import (
	"context"
	"log/slog"
	"time"

	"github.com/satriajanaka/workforce-management/internal/core/events"
	"github.com/satriajanaka/workforce-management/internal/employee"
	"github.com/satriajanaka/workforce-management/internal/project"
)

// Repository defines the data access methods for allocations.
type Repository interface {
	Create(ctx context.Context, alloc *Allocation) error
	GetByID(ctx context.Context, id int64) (*Allocation, error)
	GetByEmployeeID(ctx context.Context, employeeID int64) ([]*Allocation, error)
	GetByProjectID(ctx context.Context, projectID int64) ([]*Allocation, error)
	GetAll(ctx context.Context) ([]*Allocation, error)
	Update(ctx context.Context, alloc *Allocation) error
	Delete(ctx context.Context, id int64) error
}

type EmployeeStore interface {
	GetByID(ctx context.Context, id int64) (*employee.Employee, error)
}

type ProjectStore interface {
	GetByID(ctx context.Context, id int64) (*project.Project, error)
}

// StatusRecomputer re-derives an employee's availability status from their
// active allocations and persists it. Implemented by the utilization engine;
// the lifecycle service never writes the status itself.
type StatusRecomputer interface {
	Recompute(ctx context.Context, employeeID int64, referenceDate time.Time) (string, error)
}

// Service orchestrates the allocation lifecycle: every mutation is followed,
// synchronously and in order, by a status recomputation for the owning
// employee. No reader may observe a post-mutation allocation set paired with
// a stale availability status.
type Service struct {
	repo       Repository
	employees  EmployeeStore
	projects   ProjectStore
	recomputer StatusRecomputer
	bus        *events.EventBus
	logger     *slog.Logger

	// Now supplies the reference date for recomputation. Wall-clock by
	// default; overridable in tests.
	Now func() time.Time
}

func NewService(repo Repository, employees EmployeeStore, projects ProjectStore, recomputer StatusRecomputer, bus *events.EventBus, logger *slog.Logger) *Service {
	return &Service{
		repo:       repo,
		employees:  employees,
		projects:   projects,
		recomputer: recomputer,
		bus:        bus,
		logger:     logger,
		Now:        time.Now,
	}
}

// CreateAllocation assigns an employee to a project. Validation and existence
// checks run before any write; recomputation runs after the committed insert.
func (s *Service) CreateAllocation(ctx context.Context, dto CreateAllocationDTO) (*Allocation, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("allocation validation failed", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	if _, err := s.employees.GetByID(ctx, dto.EmployeeID); err != nil {
		s.logger.Error("allocation references missing employee", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}
	if _, err := s.projects.GetByID(ctx, dto.ProjectID); err != nil {
		s.logger.Error("allocation references missing project", "error", err, "project_id", dto.ProjectID)
		return nil, err
	}

	start, _ := dto.ParsedStartDate()
	end, _ := dto.ParsedEndDate()

	alloc := &Allocation{
		EmployeeID:     dto.EmployeeID,
		ProjectID:      dto.ProjectID,
		AllocatedHours: dto.AllocatedHours,
		StartDate:      start,
		EndDate:        end,
	}

	if err := s.repo.Create(ctx, alloc); err != nil {
		s.logger.Error("failed to create allocation", "error", err, "employee_id", dto.EmployeeID)
		return nil, err
	}

	if err := s.recomputeStatus(ctx, alloc.EmployeeID); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewAllocationCreatedEvent(alloc.ID, alloc.EmployeeID, alloc.ProjectID, alloc.AllocatedHours))

	s.logger.Info("allocation created",
		"allocation_id", alloc.ID,
		"employee_id", alloc.EmployeeID,
		"project_id", alloc.ProjectID,
		"allocated_hours", alloc.AllocatedHours)

	return alloc, nil
}

// UpdateAllocation applies a partial update, re-validating the merged record
// with the same rules as create.
func (s *Service) UpdateAllocation(ctx context.Context, id int64, dto UpdateAllocationDTO) (*Allocation, error) {
	alloc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("allocation not found for update", "error", err, "allocation_id", id)
		return nil, err
	}

	if err := dto.ApplyTo(alloc); err != nil {
		s.logger.Error("allocation update validation failed", "error", err, "allocation_id", id)
		return nil, err
	}

	if err := s.repo.Update(ctx, alloc); err != nil {
		s.logger.Error("failed to update allocation", "error", err, "allocation_id", id)
		return nil, err
	}

	if err := s.recomputeStatus(ctx, alloc.EmployeeID); err != nil {
		return nil, err
	}

	s.publish(ctx, events.NewAllocationUpdatedEvent(alloc.ID, alloc.EmployeeID, alloc.ProjectID, alloc.AllocatedHours))

	s.logger.Info("allocation updated", "allocation_id", alloc.ID, "employee_id", alloc.EmployeeID)
	return alloc, nil
}

// DeleteAllocation removes an allocation. The owning employee is captured
// before removal and recomputation runs only after the delete is committed,
// so the removed allocation is excluded from the active set; that is what
// lets the status revert to Bench.
func (s *Service) DeleteAllocation(ctx context.Context, id int64) error {
	alloc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("allocation not found for delete", "error", err, "allocation_id", id)
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		s.logger.Error("failed to delete allocation", "error", err, "allocation_id", id)
		return err
	}

	if err := s.recomputeStatus(ctx, alloc.EmployeeID); err != nil {
		return err
	}

	s.publish(ctx, events.NewAllocationDeletedEvent(alloc.ID, alloc.EmployeeID, alloc.ProjectID, alloc.AllocatedHours))

	s.logger.Info("allocation deleted", "allocation_id", id, "employee_id", alloc.EmployeeID)
	return nil
}

func (s *Service) GetAllocation(ctx context.Context, id int64) (*Allocation, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListAllocations(ctx context.Context) ([]*Allocation, error) {
	return s.repo.GetAll(ctx)
}

func (s *Service) ListByEmployee(ctx context.Context, employeeID int64) ([]*Allocation, error) {
	return s.repo.GetByEmployeeID(ctx, employeeID)
}

func (s *Service) ListByProject(ctx context.Context, projectID int64) ([]*Allocation, error) {
	return s.repo.GetByProjectID(ctx, projectID)
}

// recomputeStatus triggers the utilization engine for the employee. The
// engine retries its own status write; an error here means the allocation
// mutation committed but the derived status could not be brought up to date,
// which must surface to the caller rather than leave a silently stale value.
func (s *Service) recomputeStatus(ctx context.Context, employeeID int64) error {
	status, err := s.recomputer.Recompute(ctx, employeeID, s.Now())
	if err != nil {
		s.logger.Error("status recomputation failed after committed mutation",
			"error", err,
			"employee_id", employeeID)
		return err
	}

	s.publish(ctx, events.NewStatusRecomputedEvent(employeeID, status))
	return nil
}

// publish sends audit events on the in-process bus. Dispatch is synchronous
// so the audit trail stays ordered with the mutations it records; handler
// failures are logged and never fail the request.
func (s *Service) publish(ctx context.Context, event events.Event) {
	if s.bus == nil {
		return
	}
	if err := s.bus.PublishSync(ctx, event); err != nil {
		s.logger.Warn("failed to publish event", "error", err, "event_type", event.EventType())
	}
}
