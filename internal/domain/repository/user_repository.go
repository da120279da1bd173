package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"algorithm_guessr/internal/common"
	"algorithm_guessr/internal/domain/model"

	"github.com/jackc/pgx/v5/pgconn"
)

// ErrRegistrationClosed is returned by Register when accounts already exist
// and self-registration is switched off.
var ErrRegistrationClosed = errors.New("registration is closed")

type UserRepository interface {
	// Register inserts user, granting admin only when the table is empty.
	// When the table is not empty and open is false it returns
	// ErrRegistrationClosed. user.ID, user.Role and timestamps are filled from
	// the stored row.
	Register(ctx context.Context, user *model.User, open bool) error
	Create(ctx context.Context, user *model.User) error
	FindByUsername(ctx context.Context, username string) (*model.User, error)
	FindByID(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context) ([]model.User, error)
	Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error)
	SetBanned(ctx context.Context, username string, banned bool) error
	AdjustScore(ctx context.Context, tx *sql.Tx, userID int64, delta int) (int, error)
}

type pgUserRepository struct {
	db *sql.DB
}

func NewPgUserRepository(db *sql.DB) UserRepository {
	return &pgUserRepository{db: db}
}

const userColumns = `id, username, password_hash, salt, role, is_banned, score, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	user := &model.User{}
	err := row.Scan(
		&user.ID, &user.Username, &user.PasswordHash, &user.Salt, &user.Role,
		&user.IsBanned, &user.Score, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func mapInsertError(op string, err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique constraint violation
		return fmt.Errorf("user with given username already exists: %w", common.ErrConflict)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// registrationLock is the advisory lock key held while a self-registration
// decides between admin, user and closed.
const registrationLock int64 = 0x616c6731

func (r *pgUserRepository) Register(ctx context.Context, user *model.User, open bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("pgUserRepository.Register: begin: %w", err)
	}
	defer tx.Rollback()

	// Concurrent first registrations would otherwise both see an empty table.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, registrationLock); err != nil {
		return fmt.Errorf("pgUserRepository.Register: lock: %w", err)
	}

	var exists bool
	if err := tx.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users)`).Scan(&exists); err != nil {
		return fmt.Errorf("pgUserRepository.Register: %w", err)
	}
	if exists && !open {
		return ErrRegistrationClosed
	}
	role := model.RoleAdmin
	if exists {
		role = model.RoleUser
	}

	query := `INSERT INTO users (username, password_hash, salt, role)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err = tx.QueryRowContext(ctx, query, user.Username, user.PasswordHash, user.Salt, role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return mapInsertError("pgUserRepository.Register", err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("pgUserRepository.Register: commit: %w", err)
	}
	user.Role = role
	return nil
}

func (r *pgUserRepository) Create(ctx context.Context, user *model.User) error {
	query := `INSERT INTO users (username, password_hash, salt, role)
	          VALUES ($1, $2, $3, $4)
	          RETURNING id, created_at, updated_at`
	err := r.db.QueryRowContext(ctx, query, user.Username, user.PasswordHash, user.Salt, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return mapInsertError("pgUserRepository.Create", err)
	}
	return nil
}

func (r *pgUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByUsername: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) FindByID(ctx context.Context, id int64) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrNotFound
		}
		return nil, fmt.Errorf("pgUserRepository.FindByID: %w", err)
	}
	return user, nil
}

func (r *pgUserRepository) List(ctx context.Context) ([]model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at ASC, id ASC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.List: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("pgUserRepository.List scan: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.List rows: %w", err)
	}
	return users, nil
}

func (r *pgUserRepository) Leaderboard(ctx context.Context, limit int) ([]model.LeaderboardEntry, error) {
	query := `SELECT username, score
	          FROM users
	          WHERE is_banned = FALSE
	          ORDER BY score DESC, username ASC
	          LIMIT $1`
	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("pgUserRepository.Leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []model.LeaderboardEntry{}
	for rows.Next() {
		var entry model.LeaderboardEntry
		if err := rows.Scan(&entry.Username, &entry.Score); err != nil {
			return nil, fmt.Errorf("pgUserRepository.Leaderboard scan: %w", err)
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("pgUserRepository.Leaderboard rows: %w", err)
	}
	return entries, nil
}

// SetBanned never bans an admin account; unbanning applies to anyone.
func (r *pgUserRepository) SetBanned(ctx context.Context, username string, banned bool) error {
	query := `UPDATE users SET is_banned = $1, updated_at = CURRENT_TIMESTAMP WHERE username = $2`
	if banned {
		query += ` AND role <> 'admin'`
	}
	if _, err := r.db.ExecContext(ctx, query, banned, username); err != nil {
		return fmt.Errorf("pgUserRepository.SetBanned: %w", err)
	}
	return nil
}

// AdjustScore applies delta atomically in the database and returns the new score.
func (r *pgUserRepository) AdjustScore(ctx context.Context, tx *sql.Tx, userID int64, delta int) (int, error) {
	query := `UPDATE users SET score = score + $1, updated_at = CURRENT_TIMESTAMP
	          WHERE id = $2
	          RETURNING score`
	var row *sql.Row
	if tx != nil {
		row = tx.QueryRowContext(ctx, query, delta, userID)
	} else {
		row = r.db.QueryRowContext(ctx, query, delta, userID)
	}

	var score int
	if err := row.Scan(&score); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, common.ErrNotFound
		}
		return 0, fmt.Errorf("pgUserRepository.AdjustScore: %w", err)
	}
	return score, nil
}
