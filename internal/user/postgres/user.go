package postgres

import (
	"context"
	"errors"

	"github.com/satriajanaka/workforce-management/internal"
	userDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/user"
	"github.com/satriajanaka/workforce-management/internal/user"
	"gorm.io/gorm"
)

// UserRepository implements the user.Repository interface using GORM
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	record := user.ToDataModel(u)
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return internal.NewPersistenceError("failed to create user", err)
	}
	u.ID = record.ID
	u.CreatedAt = record.CreatedAt
	u.UpdatedAt = record.UpdatedAt
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*user.User, error) {
	var record userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewPersistenceError("failed to get user", err)
	}
	return user.FromDataModel(&record), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*user.User, error) {
	var record userDatamodel.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewPersistenceError("failed to get user by username", err)
	}
	return user.FromDataModel(&record), nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var record userDatamodel.User
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewPersistenceError("failed to get user by email", err)
	}
	return user.FromDataModel(&record), nil
}

func (r *UserRepository) ListUnverified(ctx context.Context) ([]*user.User, error) {
	var records []*userDatamodel.User
	err := r.db.WithContext(ctx).
		Where("is_verified = ?", false).
		Order("created_at ASC").
		Find(&records).Error
	if err != nil {
		return nil, internal.NewPersistenceError("failed to list unverified users", err)
	}
	return user.FromDataModelSlice(records), nil
}

func (r *UserRepository) SetVerified(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Update("is_verified", true)
	if result.Error != nil {
		return internal.NewPersistenceError("failed to verify user", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) LinkEmployee(ctx context.Context, id int64, employeeID int64) error {
	result := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("id = ?", id).
		Update("employee_id", employeeID)
	if result.Error != nil {
		return internal.NewPersistenceError("failed to link employee to user", result.Error)
	}
	if result.RowsAffected == 0 {
		return internal.ErrUserNotFound
	}
	return nil
}
