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
)

type UserListing struct {
	Users            []model.UserSummary `json:"users"`
	RegistrationOpen bool                `json:"registrationOpen"`
}

type AdminService struct {
	userRepo repository.UserRepository
	settings *SettingsService
}

func NewAdminService(userRepo repository.UserRepository, settings *SettingsService) *AdminService {
	return &AdminService{userRepo: userRepo, settings: settings}
}

// ListUsers returns every account in creation order together with the
// current registration flag.
func (s *AdminService) ListUsers(ctx context.Context) (*UserListing, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	open, err := s.settings.RegistrationOpen(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return &UserListing{Users: summaries, RegistrationOpen: open}, nil
}

// CreateUser adds a regular account regardless of the registration flag.
func (s *AdminService) CreateUser(ctx context.Context, req Credentials) error {
	if req.Username == "" || req.Password == "" {
		return common.NewError(common.ErrBadRequest, common.MsgAdminCredentials)
	}
	username := strings.TrimSpace(req.Username)
	if err := validate.Var(username, "min=3"); err != nil {
		return common.WrapError(common.ErrValidation, common.MsgUsernameTooShort, err)
	}

	hash, salt, err := security.HashPassword(req.Password, "")
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user := &model.User{Username: username, PasswordHash: hash, Salt: salt, Role: model.RoleUser}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return common.WrapError(common.ErrConflict, common.MsgUsernameTaken, err)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// Ban marks username as banned. Administrators and unknown usernames are
// left untouched without error.
func (s *AdminService) Ban(ctx context.Context, username string) error {
	return s.setBanned(ctx, username, true)
}

func (s *AdminService) Unban(ctx context.Context, username string) error {
	return s.setBanned(ctx, username, false)
}

func (s *AdminService) setBanned(ctx context.Context, username string, banned bool) error {
	if username == "" {
		return common.NewError(common.ErrBadRequest, common.MsgUsernameRequired)
	}
	if err := s.userRepo.SetBanned(ctx, username, banned); err != nil {
		return fmt.Errorf("set banned=%t for %q: %w", banned, username, err)
	}
	return nil
}

func (s *AdminService) SetRegistrationOpen(ctx context.Context, open bool) error {
	return s.settings.SetRegistrationOpen(ctx, open)
}
