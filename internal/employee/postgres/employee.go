package postgres

import (
	"context"
	"errors"

	"github.com/satriajanaka/workforce-management/internal"
	employeeDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/employee"
	"github.com/satriajanaka/workforce-management/internal/employee"
	"gorm.io/gorm"
)

// EmployeeRepository implements the employee.Repository interface using GORM
type EmployeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) *EmployeeRepository {
	return &EmployeeRepository{db: db}
}

func (r *EmployeeRepository) Create(ctx context.Context, emp *employee.Employee) error {
	record := employee.ToDataModel(emp)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return internal.NewPersistenceError("failed to create employee", err)
	}
	emp.ID = record.ID
	emp.CreatedAt = record.CreatedAt
	emp.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *EmployeeRepository) GetByID(ctx context.Context, id int64) (*employee.Employee, error) {
	var record employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, internal.NewPersistenceError("failed to get employee", err)
	}
	return employee.FromDataModel(&record), nil
}

func (r *EmployeeRepository) GetByEmail(ctx context.Context, email string) (*employee.Employee, error) {
	var record employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrEmployeeNotFound
		}
		return nil, internal.NewPersistenceError("failed to get employee by email", err)
	}
	return employee.FromDataModel(&record), nil
}

func (r *EmployeeRepository) GetAll(ctx context.Context) ([]*employee.Employee, error) {
	var records []*employeeDatamodel.Employee
	err := r.db.WithContext(ctx).Order("name ASC").Find(&records).Error
	if err != nil {
		return nil, internal.NewPersistenceError("failed to list employees", err)
	}
	return employee.FromDataModelSlice(records), nil
}

func (r *EmployeeRepository) GetByAvailability(ctx context.Context, statuses ...string) ([]*employee.Employee, error) {
	var records []*employeeDatamodel.Employee
	err := r.db.WithContext(ctx).
		Where("availability_status IN ?", statuses).
		Order("id ASC").
		Find(&records).Error
	if err != nil {
		return nil, internal.NewPersistenceError("failed to list employees by availability", err)
	}
	return employee.FromDataModelSlice(records), nil
}

// UpdateAvailabilityStatus persists the derived availability tier. Only the
// utilization engine calls this.
func (r *EmployeeRepository) UpdateAvailabilityStatus(ctx context.Context, id int64, status string) error {
	result := r.db.WithContext(ctx).
		Model(&employeeDatamodel.Employee{}).
		Where("id = ?", id).
		Update("availability_status", status)
	if result.Error != nil {
		return internal.NewPersistenceError("failed to update availability status", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrEmployeeNotFound
	}
	return nil
}
