package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"algorithm_guessr/internal/common"
)

const SettingRegistrationOpen = "registration_open"

type SettingRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	// SetDefault stores value only when key has no row yet.
	SetDefault(ctx context.Context, key, value string) error
}

type pgSettingRepository struct {
	db *sql.DB
}

func NewPgSettingRepository(db *sql.DB) SettingRepository {
	return &pgSettingRepository{db: db}
}

func (r *pgSettingRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = $1`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", common.ErrNotFound
		}
		return "", fmt.Errorf("pgSettingRepository.Get: %w", err)
	}
	return value, nil
}

func (r *pgSettingRepository) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO settings (key, value) VALUES ($1, $2)
	          ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("pgSettingRepository.Set: %w", err)
	}
	return nil
}

func (r *pgSettingRepository) SetDefault(ctx context.Context, key, value string) error {
	query := `INSERT INTO settings (key, value) VALUES ($1, $2) ON CONFLICT (key) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("pgSettingRepository.SetDefault: %w", err)
	}
	return nil
}
