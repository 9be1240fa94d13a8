package employee

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
)

func TestEmployee(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Employee Module Suite")
}

type mockRepository struct {
	employees map[int64]*Employee
	nextID    int64
	createErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{employees: map[int64]*Employee{}, nextID: 1}
}

func (m *mockRepository) Create(_ context.Context, emp *Employee) error {
	if m.createErr != nil {
		return m.createErr
	}
	emp.ID = m.nextID
	m.nextID++
	stored := *emp
	m.employees[emp.ID] = &stored
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id int64) (*Employee, error) {
	emp, ok := m.employees[id]
	if !ok {
		return nil, internal.ErrEmployeeNotFound
	}
	return emp, nil
}

func (m *mockRepository) GetByEmail(_ context.Context, email string) (*Employee, error) {
	for _, emp := range m.employees {
		if emp.Email == email {
			return emp, nil
		}
	}
	return nil, internal.ErrEmployeeNotFound
}

func (m *mockRepository) GetAll(_ context.Context) ([]*Employee, error) {
	var result []*Employee
	for _, emp := range m.employees {
		result = append(result, emp)
	}
	return result, nil
}

func (m *mockRepository) GetByAvailability(_ context.Context, statuses ...string) ([]*Employee, error) {
	var result []*Employee
	for _, emp := range m.employees {
		for _, status := range statuses {
			if emp.AvailabilityStatus == status {
				result = append(result, emp)
				break
			}
		}
	}
	return result, nil
}

type mockUserLinker struct {
	linked map[string]int64
	err    error
}

func (m *mockUserLinker) LinkEmployeeByEmail(_ context.Context, email string, employeeID int64) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	if m.linked == nil {
		m.linked = map[string]int64{}
	}
	m.linked[email] = employeeID
	return true, nil
}

type mockBenchCalculator struct {
	days map[int64]int
	err  error
}

func (m *mockBenchCalculator) BenchDays(_ context.Context, employeeID int64, _ time.Time) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return m.days[employeeID], nil
}

var _ = ginkgo.Describe("Employee Service", func() {
	var (
		repo    *mockRepository
		users   *mockUserLinker
		bench   *mockBenchCalculator
		service *Service
		ctx     context.Context
	)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		repo = newMockRepository()
		users = &mockUserLinker{}
		bench = &mockBenchCalculator{days: map[int64]int{}}
		service = NewService(repo, users, bench, testLogger)
	})

	ginkgo.Describe("CreateEmployee", func() {
		ginkgo.It("starts new employees on the bench", func() {
			emp, err := service.CreateEmployee(ctx, CreateEmployeeDTO{
				Name:  "Ayu Lestari",
				Email: "ayu@example.com",
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(emp.AvailabilityStatus).To(gomega.Equal(StatusBench))
		})

		ginkgo.It("links a user account registered with the same email", func() {
			emp, err := service.CreateEmployee(ctx, CreateEmployeeDTO{
				Name:  "Ayu Lestari",
				Email: "ayu@example.com",
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(users.linked).To(gomega.HaveKeyWithValue("ayu@example.com", emp.ID))
		})

		ginkgo.It("still creates the employee when linking fails", func() {
			users.err = errors.New("users table unavailable")

			emp, err := service.CreateEmployee(ctx, CreateEmployeeDTO{
				Name:  "Ayu Lestari",
				Email: "ayu@example.com",
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(emp.ID).NotTo(gomega.BeZero())
		})

		ginkgo.It("rejects a duplicate email", func() {
			_, err := service.CreateEmployee(ctx, CreateEmployeeDTO{Name: "Ayu", Email: "ayu@example.com"})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())

			_, err = service.CreateEmployee(ctx, CreateEmployeeDTO{Name: "Other", Email: "ayu@example.com"})
			gomega.Expect(err).To(gomega.MatchError(internal.ErrEmployeeEmailTaken))
		})

		ginkgo.It("rejects a missing name", func() {
			_, err := service.CreateEmployee(ctx, CreateEmployeeDTO{Email: "ayu@example.com"})
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(repo.employees).To(gomega.BeEmpty())
		})

		ginkgo.It("rejects an email without an at sign", func() {
			_, err := service.CreateEmployee(ctx, CreateEmployeeDTO{Name: "Ayu", Email: "not-an-email"})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})

	ginkgo.Describe("ListBench", func() {
		refDate := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

		ginkgo.BeforeEach(func() {
			repo.employees[1] = &Employee{ID: 1, Name: "Ayu", AvailabilityStatus: StatusBench}
			repo.employees[2] = &Employee{ID: 2, Name: "Budi", AvailabilityStatus: StatusBench}
			repo.employees[3] = &Employee{ID: 3, Name: "Citra", AvailabilityStatus: StatusFullyUtilized}
			repo.nextID = 4
		})

		ginkgo.It("lists only bench employees, longest-benched first", func() {
			bench.days[1] = 5
			bench.days[2] = 30

			report, err := service.ListBench(ctx, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(report).To(gomega.HaveLen(2))
			gomega.Expect(report[0].ID).To(gomega.Equal(int64(2)))
			gomega.Expect(report[0].BenchDays).To(gomega.Equal(30))
			gomega.Expect(report[1].ID).To(gomega.Equal(int64(1)))
		})

		ginkgo.It("breaks bench-day ties by employee id", func() {
			bench.days[1] = 10
			bench.days[2] = 10

			report, err := service.ListBench(ctx, refDate)
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(report[0].ID).To(gomega.Equal(int64(1)))
			gomega.Expect(report[1].ID).To(gomega.Equal(int64(2)))
		})

		ginkgo.It("surfaces bench-day computation failures", func() {
			bench.err = internal.NewPersistenceError("db down", nil)

			_, err := service.ListBench(ctx, refDate)
			gomega.Expect(err).To(gomega.HaveOccurred())
		})
	})
})
