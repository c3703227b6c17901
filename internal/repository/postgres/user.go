package postgres

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"

	"kapitalbot/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// GetStatus returns the user's status, or found=false if no row exists
func (r *UserRepo) GetStatus(ctx context.Context, userID int64) (domain.Status, bool, error) {
	var status domain.Status
	query := `SELECT status FROM users WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&status)

	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "querying user status")
	}

	return status, true, nil
}

// Register inserts a pending user row, ignoring duplicates
func (r *UserRepo) Register(ctx context.Context, userID int64, name, phone string) error {
	query := `
		INSERT INTO users (user_id, name, phone, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, userID, name, phone, domain.StatusPending)
	return errors.Wrap(err, "registering user")
}

// SetStatus updates the user's status
func (r *UserRepo) SetStatus(ctx context.Context, userID int64, status domain.Status) error {
	query := `UPDATE users SET status = $1 WHERE user_id = $2`
	_, err := r.db.ExecContext(ctx, query, status, userID)
	return errors.Wrap(err, "updating user status")
}

// GetName returns the registered display name, empty if unknown
func (r *UserRepo) GetName(ctx context.Context, userID int64) (string, error) {
	var name string
	query := `SELECT name FROM users WHERE user_id = $1`
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&name)

	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", errors.Wrap(err, "querying user name")
	}

	return name, nil
}

// ListByStatus returns users with the given status, newest first
func (r *UserRepo) ListByStatus(ctx context.Context, status domain.Status) ([]domain.User, error) {
	query := `
		SELECT user_id, name, phone, status, registered_at
		FROM users
		WHERE status = $1
		ORDER BY registered_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, status)
	if err != nil {
		return nil, errors.Wrap(err, "querying users by status")
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var u domain.User
		if err := rows.Scan(&u.ID, &u.Name, &u.Phone, &u.Status, &u.RegisteredAt); err != nil {
			return nil, errors.Wrap(err, "scanning user row")
		}
		users = append(users, u)
	}

	return users, rows.Err()
}
