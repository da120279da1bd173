package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"algorithm_guessr/internal/common"
	"algorithm_guessr/internal/common/security"
	"algorithm_guessr/internal/domain/model"
	"algorithm_guessr/internal/domain/repository"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type RegisterResult struct {
	Success bool   `json:"success"`
	Role    string `json:"role"`
}

type AuthResponse struct {
	Token string `json:"token"`
}

type AuthService struct {
	userRepo repository.UserRepository
	settings *SettingsService
	tokens   *security.TokenService
}

func NewAuthService(userRepo repository.UserRepository, settings *SettingsService, tokens *security.TokenService) *AuthService {
	return &AuthService{userRepo: userRepo, settings: settings, tokens: tokens}
}

// Register creates a self-service account. The first account ever created
// becomes the administrator; after that, registration must be open.
func (s *AuthService) Register(ctx context.Context, req Credentials) (*RegisterResult, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.NewError(common.ErrBadRequest, common.MsgCredentialsRequired)
	}
	username := strings.TrimSpace(req.Username)
	if err := validate.Var(username, "min=3,max=32"); err != nil {
		return nil, common.WrapError(common.ErrValidation, common.MsgUsernameLength, err)
	}
	if err := validate.Var(req.Password, "min=6,max=64"); err != nil {
		return nil, common.WrapError(common.ErrValidation, common.MsgPasswordLength, err)
	}

	open, err := s.settings.RegistrationOpen(ctx)
	if err != nil {
		return nil, err
	}

	hash, salt, err := security.HashPassword(req.Password, "")
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	user := &model.User{Username: username, PasswordHash: hash, Salt: salt}
	if err := s.userRepo.Register(ctx, user, open); err != nil {
		switch {
		case errors.Is(err, repository.ErrRegistrationClosed):
			return nil, common.WrapError(common.ErrForbidden, common.MsgRegistrationClosed, err)
		case errors.Is(err, common.ErrConflict):
			return nil, common.WrapError(common.ErrConflict, common.MsgUsernameTaken, err)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &RegisterResult{Success: true, Role: user.Role}, nil
}

// Login checks credentials and issues a session token. The username is
// matched exactly as sent.
func (s *AuthService) Login(ctx context.Context, req Credentials) (*AuthResponse, error) {
	if req.Username == "" || req.Password == "" {
		return nil, common.NewError(common.ErrBadRequest, common.MsgCredentialsRequired)
	}

	user, err := s.userRepo.FindByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrUnauthorized, common.MsgBadCredentials)
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.IsBanned {
		return nil, common.NewError(common.ErrForbidden, common.MsgLoginBanned)
	}
	if !security.CheckPassword(req.Password, user.PasswordHash, user.Salt) {
		return nil, common.NewError(common.ErrUnauthorized, common.MsgBadCredentials)
	}

	token, err := s.tokens.GenerateToken(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &AuthResponse{Token: token}, nil
}

// UserByID loads the current state of a token's subject.
func (s *AuthService) UserByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewError(common.ErrUnauthorized, common.MsgUserMissing)
		}
		return nil, fmt.Errorf("failed to load user %d: %w", id, err)
	}
	return user, nil
}
