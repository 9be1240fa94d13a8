package project

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/gomega"

	"github.com/satriajanaka/workforce-management/internal"
)

func TestProject(t *testing.T) {
	gomega.RegisterFailHandler(ginkgo.Fail)
	ginkgo.RunSpecs(t, "Project Module Suite")
}

type mockRepository struct {
	projects map[int64]*Project
	nextID   int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{projects: map[int64]*Project{}, nextID: 1}
}

func (m *mockRepository) Create(_ context.Context, proj *Project) error {
	proj.ID = m.nextID
	m.nextID++
	stored := *proj
	m.projects[proj.ID] = &stored
	return nil
}

func (m *mockRepository) GetByID(_ context.Context, id int64) (*Project, error) {
	proj, ok := m.projects[id]
	if !ok {
		return nil, internal.ErrProjectNotFound
	}
	copied := *proj
	return &copied, nil
}

func (m *mockRepository) GetAll(_ context.Context) ([]*Project, error) {
	var result []*Project
	for _, proj := range m.projects {
		result = append(result, proj)
	}
	return result, nil
}

func (m *mockRepository) GetByStatus(_ context.Context, status string) ([]*Project, error) {
	var result []*Project
	for _, proj := range m.projects {
		if proj.Status == status {
			result = append(result, proj)
		}
	}
	return result, nil
}

func (m *mockRepository) UpdateStatus(_ context.Context, id int64, status string) error {
	proj, ok := m.projects[id]
	if !ok {
		return internal.ErrProjectNotFound
	}
	proj.Status = status
	return nil
}

var _ = ginkgo.Describe("Project Service", func() {
	var (
		repo    *mockRepository
		service *Service
		ctx     context.Context
	)

	testLogger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ginkgo.BeforeEach(func() {
		ctx = context.Background()
		repo = newMockRepository()
		service = NewService(repo, testLogger)
	})

	ginkgo.Describe("CreateProject", func() {
		ginkgo.It("opens projects as active", func() {
			proj, err := service.CreateProject(ctx, CreateProjectDTO{
				Name:       "Billing Platform",
				ClientName: "Acme Corp",
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(proj.Status).To(gomega.Equal(StatusActive))
			gomega.Expect(proj.StartDate).To(gomega.BeNil())
		})

		ginkgo.It("accepts optional dates", func() {
			proj, err := service.CreateProject(ctx, CreateProjectDTO{
				Name:       "Billing Platform",
				ClientName: "Acme Corp",
				StartDate:  "2025-06-01",
				EndDate:    "2025-12-31",
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(proj.StartDate).NotTo(gomega.BeNil())
			gomega.Expect(proj.EndDate).NotTo(gomega.BeNil())
		})

		ginkgo.It("rejects an end date before the start date", func() {
			_, err := service.CreateProject(ctx, CreateProjectDTO{
				Name:       "Billing Platform",
				ClientName: "Acme Corp",
				StartDate:  "2025-12-31",
				EndDate:    "2025-06-01",
			})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("rejects a missing client name", func() {
			_, err := service.CreateProject(ctx, CreateProjectDTO{Name: "Billing Platform"})
			gomega.Expect(err).To(gomega.HaveOccurred())
			gomega.Expect(repo.projects).To(gomega.BeEmpty())
		})
	})

	ginkgo.Describe("UpdateProjectStatus", func() {
		var existingID int64

		ginkgo.BeforeEach(func() {
			proj, err := service.CreateProject(ctx, CreateProjectDTO{
				Name:       "Billing Platform",
				ClientName: "Acme Corp",
			})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			existingID = proj.ID
		})

		ginkgo.It("completes a project", func() {
			proj, err := service.UpdateProjectStatus(ctx, existingID, UpdateProjectStatusDTO{Status: StatusCompleted})
			gomega.Expect(err).NotTo(gomega.HaveOccurred())
			gomega.Expect(proj.Status).To(gomega.Equal(StatusCompleted))
		})

		ginkgo.It("rejects unknown statuses", func() {
			_, err := service.UpdateProjectStatus(ctx, existingID, UpdateProjectStatusDTO{Status: "Paused"})
			gomega.Expect(err).To(gomega.HaveOccurred())
		})

		ginkgo.It("returns not found for an unknown project", func() {
			_, err := service.UpdateProjectStatus(ctx, 99, UpdateProjectStatusDTO{Status: StatusCompleted})
			gomega.Expect(err).To(gomega.MatchError(internal.ErrProjectNotFound))
		})
	})
})
