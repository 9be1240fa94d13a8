package postgres

import (
	"context"
	"errors"

	"github.com/satriajanaka/workforce-management/internal"
	projectDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/project"
	"github.com/satriajanaka/workforce-management/internal/project"
	"gorm.io/gorm"
)

// ProjectRepository implements the project.Repository interface using GORM
type ProjectRepository struct {
	db *gorm.DB
}

func NewProjectRepository(db *gorm.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

func (r *ProjectRepository) Create(ctx context.Context, proj *project.Project) error {
	record := project.ToDataModel(proj)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return internal.NewPersistenceError("failed to create project", err)
	}
	proj.ID = record.ID
	proj.CreatedAt = record.CreatedAt
	proj.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *ProjectRepository) GetByID(ctx context.Context, id int64) (*project.Project, error) {
	var record projectDatamodel.Project
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrProjectNotFound
		}
		return nil, internal.NewPersistenceError("failed to get project", err)
	}
	return project.FromDataModel(&record), nil
}

func (r *ProjectRepository) GetAll(ctx context.Context) ([]*project.Project, error) {
	var records []*projectDatamodel.Project
	err := r.db.WithContext(ctx).Order("name ASC").Find(&records).Error
	if err != nil {
		return nil, internal.NewPersistenceError("failed to list projects", err)
	}
	return project.FromDataModelSlice(records), nil
}

func (r *ProjectRepository) GetByStatus(ctx context.Context, status string) ([]*project.Project, error) {
	var records []*projectDatamodel.Project
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, internal.NewPersistenceError("failed to list projects by status", err)
	}
	return project.FromDataModelSlice(records), nil
}

func (r *ProjectRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	result := r.db.WithContext(ctx).
		Model(&projectDatamodel.Project{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return internal.NewPersistenceError("failed to update project status", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrProjectNotFound
	}
	return nil
}
