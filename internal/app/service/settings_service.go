package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"algorithm_guessr/internal/common"
	"algorithm_guessr/internal/domain/repository"
)

type SettingsService struct {
	repo repository.SettingRepository
}

func NewSettingsService(repo repository.SettingRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// RegistrationOpen reads the flag from storage on every call. A missing
// setting is initialized to open. Any stored value other than "false" is open.
func (s *SettingsService) RegistrationOpen(ctx context.Context) (bool, error) {
	value, err := s.repo.Get(ctx, repository.SettingRegistrationOpen)
	if errors.Is(err, common.ErrNotFound) {
		if err := s.repo.SetDefault(ctx, repository.SettingRegistrationOpen, "true"); err != nil {
			return false, fmt.Errorf("initialize registration setting: %w", err)
		}
		return true, nil
	}
	if err != nil {
		return false, fmt.Errorf("read registration setting: %w", err)
	}
	return value != "false", nil
}

func (s *SettingsService) SetRegistrationOpen(ctx context.Context, open bool) error {
	if err := s.repo.Set(ctx, repository.SettingRegistrationOpen, strconv.FormatBool(open)); err != nil {
		return fmt.Errorf("update registration setting: %w", err)
	}
	return nil
}
