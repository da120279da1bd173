package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"algorithm_guessr/internal/domain/model"
)

type AttemptRepository interface {
	Create(ctx context.Context, tx *sql.Tx, attempt *model.Attempt) error
}

type pgAttemptRepository struct {
	db *sql.DB
}

func NewPgAttemptRepository(db *sql.DB) AttemptRepository {
	return &pgAttemptRepository{db: db}
}

func (r *pgAttemptRepository) Create(ctx context.Context, tx *sql.Tx, a *model.Attempt) error {
	selected, err := json.Marshal(a.SelectedTags)
	if err != nil {
		return fmt.Errorf("pgAttemptRepository.Create: encode selected tags: %w", err)
	}
	correct, err := json.Marshal(a.CorrectTags)
	if err != nil {
		return fmt.Errorf("pgAttemptRepository.Create: encode correct tags: %w", err)
	}

	query := `INSERT INTO problem_attempts (id, user_id, problem_id, correct, selected_tags, correct_tags)
	          VALUES ($1, $2, $3, $4, $5::text::jsonb, $6::text::jsonb)
	          RETURNING created_at`
	args := []any{a.ID, a.UserID, a.ProblemID, a.Correct, string(selected), string(correct)}

	var row *sql.Row
	if tx != nil {
		row = tx.QueryRowContext(ctx, query, args...)
	} else {
		row = r.db.QueryRowContext(ctx, query, args...)
	}
	if err := row.Scan(&a.CreatedAt); err != nil {
		return fmt.Errorf("pgAttemptRepository.Create: %w", err)
	}
	return nil
}
