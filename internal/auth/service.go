package auth

import (
	"context"
	"errors"
	"log/slog"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/satriajanaka/workforce-management/internal"
)

type UserRepository interface {
	GetCredentialsByUsername(ctx context.Context, username string) (passwordHash string, u *User, err error)
	GetUserByID(ctx context.Context, id int64) (*User, error)
	UsernameOrEmailExists(ctx context.Context, username, email string) (bool, error)
	CreateUser(ctx context.Context, u *User, passwordHash string) (int64, error)
}

type Service struct {
	userRepo       UserRepository
	tokenGenerator TokenGenerator
	bcryptCost     int
	logger         *slog.Logger
}

func NewService(userRepo UserRepository, tokenGen TokenGenerator, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		userRepo:       userRepo,
		tokenGenerator: tokenGen,
		bcryptCost:     bcryptCost,
		logger:         logger,
	}
}

// Authenticate validates credentials and returns a token pair. Unverified
// accounts are rejected unless they hold the admin role, so a fresh install
// with only the seeded admin can still log in.
func (s *Service) Authenticate(ctx context.Context, dto LoginDTO) (AuthTokens, error) {
	if err := dto.Validate(); err != nil {
		return AuthTokens{}, err
	}

	storedHash, u, err := s.userRepo.GetCredentialsByUsername(ctx, dto.Username)
	if err != nil {
		if errors.Is(err, internal.ErrUserNotFound) {
			return AuthTokens{}, internal.ErrInvalidCredentials
		}
		return AuthTokens{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(dto.Password)); err != nil {
		return AuthTokens{}, internal.ErrInvalidCredentials
	}

	if !u.IsVerified && u.Role != RoleAdmin {
		s.logger.Warn("login attempt by unverified user", "user_id", u.ID)
		return AuthTokens{}, internal.ErrUserNotVerified
	}

	return s.issueTokens(u.ID, u.Role)
}

// Register creates an unverified account with the employee role. Role
// escalation happens through the user admin endpoints, never at signup.
func (s *Service) Register(ctx context.Context, dto RegisterDTO) (*User, error) {
	if err := dto.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.userRepo.UsernameOrEmailExists(ctx, dto.Username, dto.Email)
	if err != nil {
		s.logger.Error("failed to check existing accounts", "error", err)
		return nil, err
	}
	if exists {
		return nil, internal.ErrUserAlreadyExists
	}

	hash, err := s.HashPassword(dto.Password)
	if err != nil {
		return nil, err
	}

	u := &User{
		Username:   dto.Username,
		Email:      dto.Email,
		Role:       RoleEmployee,
		IsVerified: false,
	}
	id, err := s.userRepo.CreateUser(ctx, u, hash)
	if err != nil {
		s.logger.Error("failed to create user", "error", err)
		return nil, err
	}
	u.ID = id

	s.logger.Info("user registered, awaiting approval", "user_id", id, "username", dto.Username)
	return u, nil
}

// RefreshTokens rotates a refresh token into a new token pair.
func (s *Service) RefreshTokens(ctx context.Context, refreshToken string) (AuthTokens, error) {
	claims, err := s.tokenGenerator.ValidateRefreshToken(refreshToken)
	if err != nil {
		return AuthTokens{}, err
	}

	userID, err := strconv.ParseInt(claims.UserID, 10, 64)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}

	// Reload the account so a demoted or still-unverified user cannot keep
	// refreshing old claims.
	u, err := s.userRepo.GetUserByID(ctx, userID)
	if err != nil {
		return AuthTokens{}, internal.ErrInvalidToken
	}
	if !u.IsVerified && u.Role != RoleAdmin {
		return AuthTokens{}, internal.ErrUserNotVerified
	}

	return s.issueTokens(u.ID, u.Role)
}

// ValidateAccessToken validates an access token and returns its claims.
func (s *Service) ValidateAccessToken(tokenString string) (*Claims, error) {
	return s.tokenGenerator.ValidateAccessToken(tokenString)
}

// GetUserByID loads the principal for the auth middleware.
func (s *Service) GetUserByID(ctx context.Context, id int64) (*User, error) {
	return s.userRepo.GetUserByID(ctx, id)
}

func (s *Service) issueTokens(userID int64, role string) (AuthTokens, error) {
	subject := strconv.FormatInt(userID, 10)

	accessToken, err := s.tokenGenerator.GenerateAccessToken(subject, role)
	if err != nil {
		return AuthTokens{}, err
	}

	refreshToken, err := s.tokenGenerator.GenerateRefreshToken(subject, role)
	if err != nil {
		return AuthTokens{}, err
	}

	return AuthTokens{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// HashPassword creates a bcrypt hash of the password.
func (s *Service) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
