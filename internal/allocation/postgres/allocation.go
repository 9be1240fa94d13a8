package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/satriajanaka/workforce-management/internal"
	"github.com/satriajanaka/workforce-management/internal/allocation"
	allocationDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/allocation"
	"gorm.io/gorm"
)

// AllocationRepository implements the allocation.Repository interface using GORM
type AllocationRepository struct {
	db *gorm.DB
}

func NewAllocationRepository(db *gorm.DB) *AllocationRepository {
	return &AllocationRepository{db: db}
}

func (r *AllocationRepository) Create(ctx context.Context, alloc *allocation.Allocation) error {
	record := allocation.ToDataModel(alloc)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return internal.NewPersistenceError("failed to create allocation", err)
	}
	alloc.ID = record.ID
	alloc.CreatedAt = record.CreatedAt
	alloc.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *AllocationRepository) GetByID(ctx context.Context, id int64) (*allocation.Allocation, error) {
	var record allocationDatamodel.Allocation
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrAllocationNotFound
		}
		return nil, internal.NewPersistenceError("failed to get allocation", err)
	}
	return allocation.FromDataModel(&record), nil
}

func (r *AllocationRepository) GetByEmployeeID(ctx context.Context, employeeID int64) ([]*allocation.Allocation, error) {
	var records []*allocationDatamodel.Allocation
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Order("end_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, internal.NewPersistenceError("failed to list allocations by employee", err)
	}
	return allocation.FromDataModelSlice(records), nil
}

func (r *AllocationRepository) GetByProjectID(ctx context.Context, projectID int64) ([]*allocation.Allocation, error) {
	var records []*allocationDatamodel.Allocation
	err := r.db.WithContext(ctx).
		Where("project_id = ?", projectID).
		Order("end_date DESC").
		Find(&records).Error
	if err != nil {
		return nil, internal.NewPersistenceError("failed to list allocations by project", err)
	}
	return allocation.FromDataModelSlice(records), nil
}

func (r *AllocationRepository) GetAll(ctx context.Context) ([]*allocation.Allocation, error) {
	var records []*allocationDatamodel.Allocation
	err := r.db.WithContext(ctx).Order("end_date DESC").Find(&records).Error
	if err != nil {
		return nil, internal.NewPersistenceError("failed to list allocations", err)
	}
	return allocation.FromDataModelSlice(records), nil
}

// SumActiveHours totals allocated hours across all allocations still active
// on the reference date, used for the org-wide utilization rate.
func (r *AllocationRepository) SumActiveHours(ctx context.Context, referenceDate time.Time) (int, error) {
	var total *int
	err := r.db.WithContext(ctx).
		Model(&allocationDatamodel.Allocation{}).
		Select("SUM(allocated_hours)").
		Where("end_date >= ?", referenceDate).
		Scan(&total).Error
	if err != nil {
		return 0, internal.NewPersistenceError("failed to sum active hours", err)
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

func (r *AllocationRepository) Update(ctx context.Context, alloc *allocation.Allocation) error {
	record := allocation.ToDataModel(alloc)
	record.UpdatedAt = time.Now()
	if err := r.db.WithContext(ctx).Save(record).Error; err != nil {
		return internal.NewPersistenceError("failed to update allocation", err)
	}
	alloc.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *AllocationRepository) Delete(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).Delete(&allocationDatamodel.Allocation{}, id)
	if result.Error != nil {
		return internal.NewPersistenceError("failed to delete allocation", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrAllocationNotFound
	}
	return nil
}
