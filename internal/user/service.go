package user

import (
	"context"
	"errors"
	"log/slog"

	"github.com/satriajanaka/workforce-management/internal"
	"github.com/satriajanaka/workforce-management/internal/employee"
)

// Repository defines the data access methods for user accounts.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListUnverified(ctx context.Context) ([]*User, error)
	SetVerified(ctx context.Context, id int64) error
	LinkEmployee(ctx context.Context, id int64, employeeID int64) error
}

type EmployeeStore interface {
	GetByEmail(ctx context.Context, email string) (*employee.Employee, error)
}

type Service struct {
	repo      Repository
	employees EmployeeStore
	logger    *slog.Logger
}

func NewService(repo Repository, employees EmployeeStore, logger *slog.Logger) *Service {
	return &Service{
		repo:      repo,
		employees: employees,
		logger:    logger,
	}
}

func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("failed to get user", "error", err, "user_id", id)
		return nil, err
	}
	return u, nil
}

// ListPending returns accounts still waiting for admin approval.
func (s *Service) ListPending(ctx context.Context) ([]*User, error) {
	users, err := s.repo.ListUnverified(ctx)
	if err != nil {
		s.logger.Error("failed to list pending users", "error", err)
		return nil, err
	}
	return users, nil
}

// ApproveUser marks a registered account as verified. If an employee profile
// shares the account's email it is linked automatically.
func (s *Service) ApproveUser(ctx context.Context, id int64) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("user not found for approval", "error", err, "user_id", id)
		return nil, err
	}

	if err := s.repo.SetVerified(ctx, id); err != nil {
		s.logger.Error("failed to verify user", "error", err, "user_id", id)
		return nil, err
	}

	emp, err := s.employees.GetByEmail(ctx, u.Email)
	if err != nil && !errors.Is(err, internal.ErrEmployeeNotFound) {
		s.logger.Error("failed to look up employee profile for approval", "error", err, "user_id", id)
		return nil, err
	}
	if emp != nil {
		if err := s.repo.LinkEmployee(ctx, id, emp.ID); err != nil {
			s.logger.Error("failed to link employee profile", "error", err, "user_id", id, "employee_id", emp.ID)
			return nil, err
		}
		s.logger.Info("user approved and linked to employee profile", "user_id", id, "employee_id", emp.ID)
	} else {
		s.logger.Info("user approved, no matching employee profile", "user_id", id, "email", u.Email)
	}

	return s.repo.GetByID(ctx, id)
}

// LinkProfile attaches the employee profile with the given email to the user
// account.
func (s *Service) LinkProfile(ctx context.Context, userID int64, email string) (*User, error) {
	if _, err := s.repo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	emp, err := s.employees.GetByEmail(ctx, email)
	if err != nil {
		s.logger.Error("no employee profile for email", "error", err, "user_id", userID)
		return nil, err
	}

	if err := s.repo.LinkEmployee(ctx, userID, emp.ID); err != nil {
		s.logger.Error("failed to link employee profile", "error", err, "user_id", userID, "employee_id", emp.ID)
		return nil, err
	}

	s.logger.Info("user linked to employee profile", "user_id", userID, "employee_id", emp.ID)
	return s.repo.GetByID(ctx, userID)
}

// LinkEmployeeByEmail links a freshly created employee profile to the user
// account registered with the same email, if any. Satisfies
// employee.UserLinker.
func (s *Service) LinkEmployeeByEmail(ctx context.Context, email string, employeeID int64) (bool, error) {
	u, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return false, nil
		}
		return false, err
	}

	if err := s.repo.LinkEmployee(ctx, u.ID, employeeID); err != nil {
		return false, err
	}
	return true, nil
}
