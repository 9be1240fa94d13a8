// Package utilization derives an employee's availability status from their
// active allocations. The stored status is a cached projection: every write
// to it goes through the engine, never through callers directly.
package utilization

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/satriajanaka/workforce-management/internal"
	"github.com/satriajanaka/workforce-management/internal/allocation"
	"github.com/satriajanaka/workforce-management/internal/employee"
)

// Classification thresholds, in percent of the 40-hour full-time week.
// Highest first, no gaps, no overlap.
const (
	FullyUtilizedPercent     = 80.0
	PartiallyUtilizedPercent = 40.0
)

type EmployeeStore interface {
	GetByID(ctx context.Context, id int64) (*employee.Employee, error)
	UpdateAvailabilityStatus(ctx context.Context, id int64, status string) error
}

type AllocationStore interface {
	GetByEmployeeID(ctx context.Context, employeeID int64) ([]*allocation.Allocation, error)
}

// Engine recomputes and persists availability status. Recompute-and-write is
// serialized per employee so concurrent allocation mutations for the same
// employee cannot interleave into a lost update.
type Engine struct {
	employees   EmployeeStore
	allocations AllocationStore
	logger      *slog.Logger

	mu    sync.Mutex
	locks map[int64]*sync.Mutex
}

func NewEngine(employees EmployeeStore, allocations AllocationStore, logger *slog.Logger) *Engine {
	return &Engine{
		employees:   employees,
		allocations: allocations,
		logger:      logger,
		locks:       make(map[int64]*sync.Mutex),
	}
}

// Recompute derives the availability status of an employee as of the
// reference date and persists it unconditionally, even when unchanged. The
// status write is retried with backoff; if retries are exhausted the failure
// surfaces as a persistence error, since a silently stale status is a
// correctness violation rather than a display glitch.
func (e *Engine) Recompute(ctx context.Context, employeeID int64, referenceDate time.Time) (string, error) {
	lock := e.lockFor(employeeID)
	lock.Lock()
	defer lock.Unlock()

	if _, err := e.employees.GetByID(ctx, employeeID); err != nil {
		return "", err
	}

	allocations, err := e.allocations.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return "", err
	}

	totalHours := activeHours(allocations, referenceDate)
	status := classify(totalHours)

	backoff := retry.WithMaxRetries(3, retry.NewExponential(50*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := e.employees.UpdateAvailabilityStatus(ctx, employeeID, status); err != nil {
			if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
				return err
			}
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		if appErr, ok := internal.IsAppError(err); ok && appErr.Type == internal.ErrorTypeNotFound {
			return "", err
		}
		e.logger.Error("availability status write failed after retries",
			"error", err,
			"employee_id", employeeID,
			"status", status)
		return "", internal.NewPersistenceError("failed to persist availability status", err).
			WithDetails(map[string]interface{}{"employee_id": employeeID, "status": status})
	}

	e.logger.Debug("availability status recomputed",
		"employee_id", employeeID,
		"total_hours", totalHours,
		"status", status)

	return status, nil
}

// BenchDays reports how many days the employee has been on the bench as of
// the reference date: the gap since the latest end date across all of their
// allocations, clamped at zero. Employees not on the bench report 0, as do
// employees who have never been allocated.
func (e *Engine) BenchDays(ctx context.Context, employeeID int64, referenceDate time.Time) (int, error) {
	emp, err := e.employees.GetByID(ctx, employeeID)
	if err != nil {
		return 0, err
	}

	if emp.AvailabilityStatus != employee.StatusBench {
		return 0, nil
	}

	allocations, err := e.allocations.GetByEmployeeID(ctx, employeeID)
	if err != nil {
		return 0, err
	}
	if len(allocations) == 0 {
		return 0, nil
	}

	latestEnd := allocations[0].EndDate
	for _, alloc := range allocations[1:] {
		if alloc.EndDate.After(latestEnd) {
			latestEnd = alloc.EndDate
		}
	}

	days := int(dateOf(referenceDate).Sub(dateOf(latestEnd)).Hours() / 24)
	if days < 0 {
		return 0, nil
	}
	return days, nil
}

func (e *Engine) lockFor(employeeID int64) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()

	lock, ok := e.locks[employeeID]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[employeeID] = lock
	}
	return lock
}

// activeHours sums allocated hours across allocations still active on the
// reference date.
func activeHours(allocations []*allocation.Allocation, referenceDate time.Time) int {
	total := 0
	for _, alloc := range allocations {
		if alloc.IsActiveOn(referenceDate) {
			total += alloc.AllocatedHours
		}
	}
	return total
}

func classify(totalHours int) string {
	percent := float64(totalHours) / allocation.FullTimeHoursPerWeek * 100

	switch {
	case percent >= FullyUtilizedPercent:
		return employee.StatusFullyUtilized
	case percent >= PartiallyUtilizedPercent:
		return employee.StatusPartiallyUtilized
	default:
		return employee.StatusBench
	}
}

func dateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
