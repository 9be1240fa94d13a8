package project

import (
	"context"
	"log/slog"
)

// Repository defines the data access methods for projects.
type Repository interface {
	Create(ctx context.Context, proj *Project) error
	GetByID(ctx context.Context, id int64) (*Project, error)
	GetAll(ctx context.Context) ([]*Project, error)
	GetByStatus(ctx context.Context, status string) ([]*Project, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type Service struct {
	repo   Repository
	logger *slog.Logger
}

func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// CreateProject opens a new project. Projects start Active.
func (s *Service) CreateProject(ctx context.Context, dto CreateProjectDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		s.logger.Error("project validation failed", "error", err, "name", dto.Name)
		return nil, err
	}

	start, _ := dto.ParsedStartDate()
	end, _ := dto.ParsedEndDate()

	proj := &Project{
		Name:           dto.Name,
		ClientName:     dto.ClientName,
		RequiredSkills: dto.RequiredSkills,
		StartDate:      start,
		EndDate:        end,
		Status:         StatusActive,
	}

	if err := s.repo.Create(ctx, proj); err != nil {
		s.logger.Error("failed to create project", "error", err, "name", dto.Name)
		return nil, err
	}

	s.logger.Info("project created", "project_id", proj.ID, "client", proj.ClientName)
	return proj, nil
}

func (s *Service) GetProject(ctx context.Context, id int64) (*Project, error) {
	proj, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get project", "error", err, "project_id", id)
		return nil, err
	}
	return proj, nil
}

func (s *Service) ListProjects(ctx context.Context) ([]*Project, error) {
	projects, err := s.repo.GetAll(ctx)
	if err != nil {
		s.logger.Error("failed to list projects", "error", err)
		return nil, err
	}
	return projects, nil
}

// UpdateProjectStatus moves a project between Active and Completed. Completed
// projects drop out of the matcher's candidate pool via the status filter.
func (s *Service) UpdateProjectStatus(ctx context.Context, id int64, dto UpdateProjectStatusDTO) (*Project, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.repo.GetByID(ctx, id); err != nil {
		s.logger.Error("project not found for status update", "error", err, "project_id", id)
		return nil, err
	}

	if err := s.repo.UpdateStatus(ctx, id, dto.Status); err != nil {
		s.logger.Error("failed to update project status", "error", err, "project_id", id)
		return nil, err
	}

	s.logger.Info("project status updated", "project_id", id, "status", dto.Status)
	return s.repo.GetByID(ctx, id)
}
