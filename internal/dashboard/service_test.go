package dashboard

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/satriajanaka/workforce-management/internal/employee"
	"github.com/satriajanaka/workforce-management/internal/project"
)

func TestDashboard(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Dashboard Module Suite")
}

type mockEmployeeStore struct {
	employees []*employee.Employee
}

func (m *mockEmployeeStore) GetAll(_ context.Context) ([]*employee.Employee, error) {
	return m.employees, nil
}

type mockProjectStore struct {
	active []*project.Project
}

func (m *mockProjectStore) GetByStatus(_ context.Context, status string) ([]*project.Project, error) {
	if status == project.StatusActive {
		return m.active, nil
	}
	return nil, nil
}

type mockAllocationStore struct {
	hours int
}

func (m *mockAllocationStore) SumActiveHours(_ context.Context, _ time.Time) (int, error) {
	return m.hours, nil
}

var _ = ginkgo.Describe("Dashboard Service", func() {
	refDate := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)
	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ginkgo.It("aggregates headcount, bench size and utilization rate", func() {
		employees := &mockEmployeeStore{employees: []*employee.Employee{
			{ID: 1, AvailabilityStatus: employee.StatusFullyUtilized},
			{ID: 2, AvailabilityStatus: employee.StatusPartiallyUtilized},
			{ID: 3, AvailabilityStatus: employee.StatusBench},
			{ID: 4, AvailabilityStatus: employee.StatusBench},
		}}
		projects := &mockProjectStore{active: []*project.Project{{ID: 1}, {ID: 2}}}
		allocations := &mockAllocationStore{hours: 60}

		service := NewService(employees, projects, allocations, testLogger)
		stats, err := service.GetStats(context.Background(), refDate)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())

		gomega.Expect(stats.TotalEmployees).To(gomega.Equal(4))
		gomega.Expect(stats.BenchCount).To(gomega.Equal(2))
		gomega.Expect(stats.PartialCount).To(gomega.Equal(1))
		gomega.Expect(stats.FullyCount).To(gomega.Equal(1))
		gomega.Expect(stats.ActiveProjects).To(gomega.Equal(2))
		gomega.Expect(stats.AllocatedHours).To(gomega.Equal(60))
		// 60 of 160 possible hours
		gomega.Expect(stats.UtilizationRate).To(gomega.Equal(37.5))
		gomega.Expect(stats.ReferenceDateISO).To(gomega.Equal("2025-06-16"))
	})

	ginkgo.It("reports a zero rate for an empty workforce", func() {
		service := NewService(&mockEmployeeStore{}, &mockProjectStore{}, &mockAllocationStore{}, testLogger)
		stats, err := service.GetStats(context.Background(), refDate)
		gomega.Expect(err).NotTo(gomega.HaveOccurred())
		gomega.Expect(stats.UtilizationRate).To(gomega.BeZero())
	})
})
