package utilization

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/satriajanaka/workforce-management/internal"
	"github.com/satriajanaka/workforce-management/internal/allocation"
	"github.com/satriajanaka/workforce-management/internal/employee"
	"github.com/satriajanaka/workforce-management/internal/project"
)

func TestUtilization(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Utilization Module Suite")
}

type mockEmployeeStore struct {
	employees    map[int64]*employee.Employee
	statusWrites []string
	writeErr     error
	failuresLeft int
}

func (m *mockEmployeeStore) GetByID(_ context.Context, id int64) (*employee.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *mockEmployeeStore) UpdateAvailabilityStatus(_ context.Context, id int64, status string) error {
	if m.failuresLeft > 0 {
		m.failuresLeft--
		return errors.New("connection reset")
	}
	if m.writeErr != nil {
		return m.writeErr
	}
	emp, ok := m.employees[id]
	if !ok {
		return internal.ErrEmployeeNotFound
	}
	emp.AvailabilityStatus = status
	m.statusWrites = append(m.statusWrites, status)
	return nil
}

type mockAllocationStore struct {
	allocations map[int64][]*allocation.Allocation
	err         error
}

func (m *mockAllocationStore) GetByEmployeeID(_ context.Context, employeeID int64) ([]*allocation.Allocation, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.allocations[employeeID], nil
}

// memAllocationRepo backs the lifecycle integration specs: it serves both the
// allocation service's repository and the engine's allocation store, so the
// engine reads the same data the service mutates.
type memAllocationRepo struct {
	allocations map[int64]*allocation.Allocation
	nextID      int64
}

func newMemAllocationRepo() *memAllocationRepo {
	return &memAllocationRepo{allocations: map[int64]*allocation.Allocation{}, nextID: 1}
}

func (r *memAllocationRepo) Create(_ context.Context, alloc *allocation.Allocation) error {
	alloc.ID = r.nextID
	r.nextID++
	stored := *alloc
	r.allocations[alloc.ID] = &stored
	return nil
}

func (r *memAllocationRepo) GetByID(_ context.Context, id int64) (*allocation.Allocation, error) {
	alloc, ok := r.allocations[id]
	if !ok {
		return nil, internal.ErrAllocationNotFound
	}
	copied := *alloc
	return &copied, nil
}

func (r *memAllocationRepo) GetByEmployeeID(_ context.Context, employeeID int64) ([]*allocation.Allocation, error) {
	var result []*allocation.Allocation
	for _, alloc := range r.allocations {
		if alloc.EmployeeID == employeeID {
			result = append(result, alloc)
		}
	}
	return result, nil
}

func (r *memAllocationRepo) GetByProjectID(_ context.Context, projectID int64) ([]*allocation.Allocation, error) {
	var result []*allocation.Allocation
	for _, alloc := range r.allocations {
		if alloc.ProjectID == projectID {
			result = append(result, alloc)
		}
	}
	return result, nil
}

func (r *memAllocationRepo) GetAll(_ context.Context) ([]*allocation.Allocation, error) {
	var result []*allocation.Allocation
	for _, alloc := range r.allocations {
		result = append(result, alloc)
	}
	return result, nil
}

func (r *memAllocationRepo) Update(_ context.Context, alloc *allocation.Allocation) error {
	if _, ok := r.allocations[alloc.ID]; !ok {
		return internal.ErrAllocationNotFound
	}
	stored := *alloc
	r.allocations[alloc.ID] = &stored
	return nil
}

func (r *memAllocationRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.allocations[id]; !ok {
		return internal.ErrAllocationNotFound
	}
	delete(r.allocations, id)
	return nil
}

type mockProjectStore struct {
	projects map[int64]*project.Project
}

func (m *mockProjectStore) GetByID(_ context.Context, id int64) (*project.Project, error) {
	proj, ok := m.projects[id]
	if !ok {
		return nil, internal.ErrProjectNotFound
	}
	return proj, nil
}

var _ = ginkgo.Describe("Engine", func() {
	var (
		employees   *mockEmployeeStore
		allocations *mockAllocationStore
		engine      *Engine
		ctx         context.Context
		refDate     time.Time
	)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	newAllocation := func(hours int, endsInDays int) *allocation.Allocation {
		return &allocation.Allocation{
			EmployeeID:     1,
			AllocatedHours: hours,
			StartDate:      refDate.AddDate(0, 0, -30),
			EndDate:        refDate.AddDate(0, 0, endsInDays),
		}
	}

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		refDate = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
		employees = &mockEmployeeStore{
			employees: map[int64]*employee.Employee{
				1: {ID: 1, Name: "Ayu", AvailabilityStatus: employee.StatusBench},
			},
		}
		allocations = &mockAllocationStore{allocations: map[int64][]*allocation.Allocation{}}
		engine = NewEngine(employees, allocations, testLogger)
	})

	ginkgo.Describe("Recompute", func() {
		ginkgo.It("classifies 80 percent or more as fully utilized", func() {
			allocations.allocations[1] = []*allocation.Allocation{newAllocation(32, 30)}

			status, err := engine.Recompute(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(status).To(gomega.Equal(employee.StatusFullyUtilized))
		})

		ginkgo.It("classifies just under 80 percent as partially utilized", func() {
			allocations.allocations[1] = []*allocation.Allocation{newAllocation(31, 30)}

			status, err := engine.Recompute(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(status).To(gomega.Equal(employee.StatusPartiallyUtilized))
		})

		ginkgo.It("classifies exactly 40 percent as partially utilized", func() {
			allocations.allocations[1] = []*allocation.Allocation{newAllocation(16, 30)}

			status, err := engine.Recompute(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(status).To(gomega.Equal(employee.StatusPartiallyUtilized))
		})

		ginkgo.It("classifies just under 40 percent as bench", func() {
			allocations.allocations[1] = []*allocation.Allocation{newAllocation(15, 30)}

			status, err := engine.Recompute(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(status).To(gomega.Equal(employee.StatusBench))
		})

		ginkgo.It("classifies an employee with no allocations as bench", func() {
			status, err := engine.Recompute(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(status).To(gomega.Equal(employee.StatusBench))
		})

		ginkgo.It("sums hours across overlapping allocations", func() {
			allocations.allocations[1] = []*allocation.Allocation{
				newAllocation(16, 30),
				newAllocation(16, 60),
			}

			status, err := engine.Recompute(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(status).To(gomega.Equal(employee.StatusFullyUtilized))
		})

		ginkgo.It("ignores allocations that ended before the reference date", func() {
			allocations.allocations[1] = []*allocation.Allocation{newAllocation(40, -1)}

			status, err := engine.Recompute(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(status).To(gomega.Equal(employee.StatusBench))
		})

		ginkgo.It("counts an allocation ending exactly on the reference date", func() {
			allocations.allocations[1] = []*allocation.Allocation{newAllocation(40, 0)}

			status, err := engine.Recompute(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(status).To(gomega.Equal(employee.StatusFullyUtilized))
		})

		ginkgo.It("counts allocations whose start date is still in the future", func() {
			future := newAllocation(40, 90)
			future.StartDate = refDate.AddDate(0, 0, 30)
			allocations.allocations[1] = []*allocation.Allocation{future}

			status, err := engine.Recompute(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(status).To(gomega.Equal(employee.StatusFullyUtilized))
		})

		ginkgo.It("persists the status even when it is unchanged", func() {
			_, err := engine.Recompute(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			_, err = engine.Recompute(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			gomega.Expect(employees.statusWrites).To(gomega.HaveLen(2))
		})

		ginkgo.It("returns not found for an unknown employee", func() {
			_, err := engine.Recompute(ctx, 99, refDate)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrEmployeeNotFound))
		})

		ginkgo.It("retries a transient status write failure", func() {
			employees.failuresLeft = 1
			allocations.allocations[1] = []*allocation.Allocation{newAllocation(40, 30)}

			status, err := engine.Recompute(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(status).To(gomega.Equal(employee.StatusFullyUtilized))
			gomega.Expect(employees.statusWrites).To(gomega.HaveLen(1))
		})

		ginkgo.It("surfaces a persistence error when retries are exhausted", func() {
			employees.failuresLeft = 10

			_, err := engine.Recompute(ctx, 1, refDate)
			gomega.Expect(err).To(gomega.HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypePersistence))
		})

		ginkgo.It("does not retry when the employee vanished mid-write", func() {
			employees.writeErr = internal.ErrEmployeeNotFound

			_, err := engine.Recompute(ctx, 1, refDate)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrEmployeeNotFound))

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Type).To(gomega.Equal(internal.ErrorTypeNotFound))
		})
	})

	ginkgo.Describe("BenchDays", func() {
		ginkgo.It("reports the gap since the latest allocation end date", func() {
			allocations.allocations[1] = []*allocation.Allocation{
				newAllocation(20, -10),
				newAllocation(20, -25),
			}

			days, err := engine.BenchDays(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(days).To(gomega.Equal(10))
		})

		ginkgo.It("clamps at zero when the latest end date is in the future", func() {
			allocations.allocations[1] = []*allocation.Allocation{newAllocation(10, 30)}

			days, err := engine.BenchDays(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(days).To(gomega.Equal(0))
		})

		ginkgo.It("reports zero for a never-allocated employee", func() {
			days, err := engine.BenchDays(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(days).To(gomega.Equal(0))
		})

		ginkgo.It("reports zero for an employee not on the bench", func() {
			employees.employees[1].AvailabilityStatus = employee.StatusFullyUtilized
			allocations.allocations[1] = []*allocation.Allocation{newAllocation(40, -10)}

			days, err := engine.BenchDays(ctx, 1, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(days).To(gomega.Equal(0))
		})
	})
})

var _ = ginkgo.Describe("Allocation lifecycle through the engine", func() {
	var (
		repo      *memAllocationRepo
		employees *mockEmployeeStore
		service   *allocation.Service
		ctx       context.Context
		refDate   time.Time
	)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		refDate = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
		employees = &mockEmployeeStore{
			employees: map[int64]*employee.Employee{
				1: {ID: 1, Name: "Ayu", AvailabilityStatus: employee.StatusBench},
			},
		}
		repo = newMemAllocationRepo()
		projects := &mockProjectStore{projects: map[int64]*project.Project{
			1: {ID: 1, Name: "Billing Platform", Status: project.StatusActive},
		}}
		engine := NewEngine(employees, repo, testLogger)
		service = allocation.NewService(repo, employees, projects, engine, nil, testLogger)
		service.Now = func() time.Time { return refDate }
	})

	ginkgo.It("marks a full-time assignment fully utilized and reverts to bench on delete", func() {
		alloc, err := service.CreateAllocation(ctx, allocation.CreateAllocationDTO{
			EmployeeID:     1,
			ProjectID:      1,
			AllocatedHours: 40,
			StartDate:      "2025-06-01",
			EndDate:        "2025-09-30",
		})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(employees.employees[1].AvailabilityStatus).To(gomega.Equal(employee.StatusFullyUtilized))

		gomega.Expect(service.DeleteAllocation(ctx, alloc.ID)).To(gomega.Succeed())
		gomega.Expect(employees.employees[1].AvailabilityStatus).To(gomega.Equal(employee.StatusBench))
	})

	ginkgo.It("drops to partially utilized when hours are reduced", func() {
		alloc, err := service.CreateAllocation(ctx, allocation.CreateAllocationDTO{
			EmployeeID:     1,
			ProjectID:      1,
			AllocatedHours: 40,
			StartDate:      "2025-06-01",
			EndDate:        "2025-09-30",
		})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		hours := 20
		_, err = service.UpdateAllocation(ctx, alloc.ID, allocation.UpdateAllocationDTO{AllocatedHours: &hours})
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(employees.employees[1].AvailabilityStatus).To(gomega.Equal(employee.StatusPartiallyUtilized))
	})
})
