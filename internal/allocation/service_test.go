package allocation

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/satriajanaka/workforce-management/internal"
	"github.com/satriajanaka/workforce-management/internal/employee"
	"github.com/satriajanaka/workforce-management/internal/project"
)

func TestAllocation(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Allocation Module Suite")
}

type mockRepository struct {
	allocations map[int64]*Allocation
	nextID      int64
	createErr   error
	deleteErr   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{allocations: map[int64]*Allocation{}, nextID: 1}
}

func (m *mockRepository) Create(_ context.Context, alloc *Allocation) error {
	if m.createErr != nil {
		return m.createErr
	}
	alloc.ID = m.nextID
	m.nextID++
	stored := *alloc
	m.allocations[alloc.ID] = &stored
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id int64) (*Allocation, error) {
	alloc, ok := m.allocations[id]
	if !ok {
		return nil, internal.ErrAllocationNotFound
	}
	copied := *alloc
	return &copied, nil
}

func (m *mockRepository) GetByEmployeeID(_ context.Context, employeeID int64) ([]*Allocation, error) {
	var result []*Allocation
	for _, alloc := range m.allocations {
		if alloc.EmployeeID == employeeID {
			result = append(result, alloc)
		}
	}
	return result, nil
}

func (m *mockRepository) GetByProjectID(_ context.Context, projectID int64) ([]*Allocation, error) {
	var result []*Allocation
	for _, alloc := range m.allocations {
		if alloc.ProjectID == projectID {
			result = append(result, alloc)
		}
	}
	return result, nil
}

func (m *mockRepository) GetAll(_ context.Context) ([]*Allocation, error) {
	var result []*Allocation
	for _, alloc := range m.allocations {
		result = append(result, alloc)
	}
	return result, nil
}

func (m *mockRepository) Update(_ context.Context, alloc *Allocation) error {
	if _, ok := m.allocations[alloc.ID]; !ok {
		return internal.ErrAllocationNotFound
	}
	stored := *alloc
	m.allocations[alloc.ID] = &stored
	return nil
}

func (m *mockRepository) Delete(_ context.Context, id int64) error {
	if m.deleteErr != nil {
		return m.deleteErr
	}
	if _, ok := m.allocations[id]; !ok {
		return internal.ErrAllocationNotFound
	}
	delete(m.allocations, id)
	return nil
}

type mockEmployeeStore struct {
	employees map[int64]*employee.Employee
}

func (m *mockEmployeeStore) GetByID(_ context.Context, id int64) (*employee.Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
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

// mockRecomputer records every recompute request and can observe repository
// state at the moment it runs.
type mockRecomputer struct {
	calls  []int64
	dates  []time.Time
	status string
	err    error
	onCall func()
}

func (m *mockRecomputer) Recompute(_ context.Context, employeeID int64, referenceDate time.Time) (string, error) {
	m.calls = append(m.calls, employeeID)
	m.dates = append(m.dates, referenceDate)
	if m.onCall != nil {
		m.onCall()
	}
	if m.err != nil {
		return "", m.err
	}
	return m.status, nil
}

var _ = ginkgo.Describe("Allocation Service", func() {
	var (
		repo       *mockRepository
		employees  *mockEmployeeStore
		projects   *mockProjectStore
		recomputer *mockRecomputer
		service    *Service
		ctx        context.Context
		today      time.Time
	)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	validDTO := func() CreateAllocationDTO {
		return CreateAllocationDTO{
			EmployeeID:     1,
			ProjectID:      1,
			AllocatedHours: 20,
			StartDate:      "2025-06-01",
			EndDate:        "2025-09-30",
		}
	}

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		today = time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
		repo = newMockRepository()
		employees = &mockEmployeeStore{employees: map[int64]*employee.Employee{
			1: {ID: 1, Name: "Ayu", AvailabilityStatus: employee.StatusBench},
		}}
		projects = &mockProjectStore{projects: map[int64]*project.Project{
			1: {ID: 1, Name: "Billing Platform", Status: project.StatusActive},
		}}
		recomputer = &mockRecomputer{status: employee.StatusPartiallyUtilized}
		service = NewService(repo, employees, projects, recomputer, nil, testLogger)
		service.Now = func() time.Time { return today }
	})

	ginkgo.Describe("CreateAllocation", func() {
		ginkgo.It("persists the allocation and recomputes the employee status", func() {
			alloc, err := service.CreateAllocation(ctx, validDTO())
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(alloc.ID).To(gomega.Equal(int64(1)))
			gomega.Expect(repo.allocations).To(gomega.HaveLen(1))

			gomega.Expect(recomputer.calls).To(gomega.Equal([]int64{1}))
			gomega.Expect(recomputer.dates[0]).To(gomega.Equal(today))
		})

		ginkgo.It("rejects non-positive hours before touching the repository", func() {
			dto := validDTO()
			dto.AllocatedHours = 0

			_, err := service.CreateAllocation(ctx, dto)
			gomega.Expect(err).To(gomega.HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidHours))
			gomega.Expect(repo.allocations).To(gomega.BeEmpty())
			gomega.Expect(recomputer.calls).To(gomega.BeEmpty())
		})

		ginkgo.It("rejects an end date before the start date", func() {
			dto := validDTO()
			dto.StartDate = "2025-09-30"
			dto.EndDate = "2025-06-01"

			_, err := service.CreateAllocation(ctx, dto)
			gomega.Expect(err).To(gomega.HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidDateRange))
		})

		ginkgo.It("accepts a single-day allocation", func() {
			dto := validDTO()
			dto.StartDate = "2025-06-01"
			dto.EndDate = "2025-06-01"

			_, err := service.CreateAllocation(ctx, dto)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
		})

		ginkgo.It("rejects malformed dates", func() {
			dto := validDTO()
			dto.EndDate = "30-09-2025"

			_, err := service.CreateAllocation(ctx, dto)
			gomega.Expect(err).To(gomega.HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidDate))
		})

		ginkgo.It("fails when the employee does not exist", func() {
			dto := validDTO()
			dto.EmployeeID = 99

			_, err := service.CreateAllocation(ctx, dto)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrEmployeeNotFound))
			gomega.Expect(repo.allocations).To(gomega.BeEmpty())
		})

		ginkgo.It("fails when the project does not exist", func() {
			dto := validDTO()
			dto.ProjectID = 99

			_, err := service.CreateAllocation(ctx, dto)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrProjectNotFound))
			gomega.Expect(repo.allocations).To(gomega.BeEmpty())
		})

		ginkgo.It("surfaces a recompute failure even though the insert committed", func() {
			recomputer.err = internal.NewPersistenceError("status write failed", nil)

			_, err := service.CreateAllocation(ctx, validDTO())
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(repo.allocations).To(gomega.HaveLen(1))
		})
	})

	ginkgo.Describe("UpdateAllocation", func() {
		var existingID int64

		ginkgo.BeforeEach(func() {
			alloc, err := service.CreateAllocation(ctx, validDTO())
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			existingID = alloc.ID
			recomputer.calls = nil
		})

		ginkgo.It("merges partial fields and recomputes", func() {
			hours := 40
			updated, err := service.UpdateAllocation(ctx, existingID, UpdateAllocationDTO{AllocatedHours: &hours})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(updated.AllocatedHours).To(gomega.Equal(40))
			gomega.Expect(updated.EndDate.Format("2006-01-02")).To(gomega.Equal("2025-09-30"))
			gomega.Expect(recomputer.calls).To(gomega.Equal([]int64{1}))
		})

		ginkgo.It("re-validates the merged record", func() {
			badEnd := "2025-01-01"
			_, err := service.UpdateAllocation(ctx, existingID, UpdateAllocationDTO{EndDate: &badEnd})
			gomega.Expect(err).To(gomega.HaveOccurred())

			appErr, ok := internal.IsAppError(err)
			gomega.Expect(ok).To(gomega.BeTrue())
			gomega.Expect(appErr.Code).To(gomega.Equal(internal.ErrCodeInvalidDateRange))

			stored, _ := repo.GetByID(ctx, existingID)
			gomega.Expect(stored.EndDate.Format("2006-01-02")).To(gomega.Equal("2025-09-30"))
		})

		ginkgo.It("returns not found for an unknown allocation", func() {
			hours := 10
			_, err := service.UpdateAllocation(ctx, 99, UpdateAllocationDTO{AllocatedHours: &hours})
			gomega.Expect(err).To(gomega.MatchError(internal.ErrAllocationNotFound))
		})
	})

	ginkgo.Describe("DeleteAllocation", func() {
		var existingID int64

		ginkgo.BeforeEach(func() {
			alloc, err := service.CreateAllocation(ctx, validDTO())
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			existingID = alloc.ID
			recomputer.calls = nil
		})

		ginkgo.It("recomputes for the owning employee after the delete commits", func() {
			recomputer.onCall = func() {
				gomega.Expect(repo.allocations).To(gomega.BeEmpty())
			}

			err := service.DeleteAllocation(ctx, existingID)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(recomputer.calls).To(gomega.Equal([]int64{1}))
		})

		ginkgo.It("returns not found for an unknown allocation", func() {
			err := service.DeleteAllocation(ctx, 99)
			gomega.Expect(err).To(gomega.MatchError(internal.ErrAllocationNotFound))
			gomega.Expect(recomputer.calls).To(gomega.BeEmpty())
		})

		ginkgo.It("does not recompute when the delete itself fails", func() {
			repo.deleteErr = internal.NewPersistenceError("db down", nil)

			err := service.DeleteAllocation(ctx, existingID)
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(recomputer.calls).To(gomega.BeEmpty())
		})
	})
})
