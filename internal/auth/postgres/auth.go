package postgres

import (
	"context"
	"errors"

	"github.com/satriajanaka/workforce-management/internal"
	"github.com/satriajanaka/workforce-management/internal/auth"
	userDatamodel "github.com/satriajanaka/workforce-management/internal/core/datamodel/user"
	"gorm.io/gorm"
)

// AuthRepository implements the auth.UserRepository interface using GORM
type AuthRepository struct {
	db *gorm.DB
}

func NewAuthRepository(db *gorm.DB) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) GetCredentialsByUsername(ctx context.Context, username string) (string, *auth.User, error) {
	var record userDatamodel.User
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, internal.ErrUserNotFound
		}
		return "", nil, internal.NewPersistenceError("failed to get user credentials", err)
	}
	return record.PasswordHash, toAuthUser(&record), nil
}

func (r *AuthRepository) GetUserByID(ctx context.Context, id int64) (*auth.User, error) {
	var record userDatamodel.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&record).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, internal.ErrUserNotFound
		}
		return nil, internal.NewPersistenceError("failed to get user", err)
	}
	return toAuthUser(&record), nil
}

func (r *AuthRepository) UsernameOrEmailExists(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&userDatamodel.User{}).
		Where("username = ? OR email = ?", username, email).
		Count(&count).Error
	if err != nil {
		return false, internal.NewPersistenceError("failed to check existing users", err)
	}
	return count > 0, nil
}

func (r *AuthRepository) CreateUser(ctx context.Context, u *auth.User, passwordHash string) (int64, error) {
	record := &userDatamodel.User{
		Username:     u.Username,
		Email:        u.Email,
		PasswordHash: passwordHash,
		Role:         u.Role,
		IsVerified:   u.IsVerified,
		EmployeeID:   u.EmployeeID,
	}
	if err := r.db.WithContext(ctx).Create(record).Error; err != nil {
		return 0, internal.NewPersistenceError("failed to create user", err)
	}
	return record.ID, nil
}

func toAuthUser(record *userDatamodel.User) *auth.User {
	return &auth.User{
		ID:         record.ID,
		Username:   record.Username,
		Email:      record.Email,
		Role:       record.Role,
		IsVerified: record.IsVerified,
		EmployeeID: record.EmployeeID,
	}
}
