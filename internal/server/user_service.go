// Package server provides the HTTP APIs: the account and form API, and the ATS scoring service.
package server

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/config"
	"github.com/jonathan/resume-builder/internal/db"
	"github.com/jonathan/resume-builder/internal/storage"
	"github.com/jonathan/resume-builder/internal/types"
)

// DBClient is the subset of db.DB the server uses.
type DBClient interface {
	CreateUser(ctx context.Context, name, email, passwordHash string) (uuid.UUID, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	GetUser(ctx context.Context, id uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	StoreFor(accountID uuid.UUID) storage.Store
}

// UserService provides business logic for account operations
type UserService struct {
	db             DBClient
	passwordConfig *config.PasswordConfig
}

// NewUserService creates a new UserService with the given dependencies
func NewUserService(db DBClient, passwordConfig *config.PasswordConfig) *UserService {
	return &UserService{
		db:             db,
		passwordConfig: passwordConfig,
	}
}

// Register creates an account with a hashed password
func (s *UserService) Register(ctx context.Context, req *types.SignupRequest) (*types.Account, error) {
	if err := config.CheckPassword(req.Password); err != nil {
		return nil, &ErrValidation{Field: "password", Message: MsgWeakPassword}
	}
	if req.Password != req.ConfirmPassword {
		return nil, &ErrValidation{Field: "confirm_password", Message: MsgPasswordsDiffer}
	}

	exists, err := s.db.CheckEmailExists(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email existence: %w", err)
	}
	if exists {
		return nil, &ErrEmailAlreadyExists{Email: req.Email}
	}

	passwordHash, err := s.passwordConfig.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	userID, err := s.db.CreateUser(ctx, req.Name, req.Email, passwordHash)
	if err != nil {
		// Lost a race with a concurrent signup for the same email.
		if errors.Is(err, db.ErrEmailTaken) {
			return nil, &ErrEmailAlreadyExists{Email: req.Email}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	user, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to retrieve created user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("created user not found: %s", userID)
	}
	return user.Account(), nil
}

// Login authenticates an account by email and password
func (s *UserService) Login(ctx context.Context, req *types.LoginRequest) (*types.Account, error) {
	user, err := s.db.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Unknown email and wrong password are indistinguishable to the caller.
	if user == nil || !s.passwordConfig.VerifyPassword(req.Password, user.PasswordHash) {
		return nil, &ErrInvalidCredentials{}
	}
	return user.Account(), nil
}

// Account returns the account for userID
func (s *UserService) Account(ctx context.Context, userID uuid.UUID) (*types.Account, error) {
	user, err := s.db.GetUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, &ErrUserNotFound{UserID: userID}
	}
	return user.Account(), nil
}
