package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"songblog/internal/models"
	"songblog/internal/shared"
)

// UserRepository implements [models.Repository] for [models.User] persistence.
type UserRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.User] = (*UserRepository)(nil)

// NewUserRepository creates a new [UserRepository] with the given database connection
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user with a generated ID.
//
// Returns [shared.ErrEmailTaken] or [shared.ErrUsernameTaken] when the email or
// username is already registered.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	// Pre-check for a friendly error. The UNIQUE indexes still close the race window.
	var exists int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE email = ?`, user.Email).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check email: %w", err)
	}
	if exists > 0 {
		return shared.ErrEmailTaken
	}
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(1) FROM users WHERE username = ?`, user.Username).Scan(&exists); err != nil {
		return fmt.Errorf("failed to check username: %w", err)
	}
	if exists > 0 {
		return shared.ErrUsernameTaken
	}

	user.ID = shared.GenerateID()

	query := `
		INSERT INTO users (id, email, username, password_hash, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, user.ID, user.Email, user.Username, user.PasswordHash, user.CreatedAt, user.UpdatedAt)
	if isUniqueErr(err, "users.email") {
		return shared.ErrEmailTaken
	}
	if isUniqueErr(err, "users.username") {
		return shared.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// Get retrieves a user by ID.
func (r *UserRepository) Get(ctx context.Context, id string) (*models.User, error) {
	return r.getWhere(ctx, "id", id)
}

// GetByEmail retrieves a user by normalized email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getWhere(ctx, "email", email)
}

func (r *UserRepository) getWhere(ctx context.Context, col, val string) (*models.User, error) {
	query := fmt.Sprintf(`
		SELECT id, email, username, password_hash, created_at, updated_at
		FROM users
		WHERE %s = ?
	`, col)

	var user models.User
	err := r.db.QueryRowContext(ctx, query, val).Scan(
		&user.ID, &user.Email, &user.Username, &user.PasswordHash, &user.CreatedAt, &user.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: user", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}

	return &user, nil
}

// Update modifies a user's email and username, bumping updated_at.
//
// Returns the same conflict sentinels as Create when the new email or username
// collides with another account.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	now := time.Now().UTC()
	user.UpdatedAt = now

	query := `
		UPDATE users
		SET email = ?, username = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, user.Email, user.Username, now, user.ID)
	if isUniqueErr(err, "users.email") {
		return shared.ErrEmailTaken
	}
	if isUniqueErr(err, "users.username") {
		return shared.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: user", shared.ErrNotFound)
	}

	return nil
}

// Delete removes a user by ID.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: user", shared.ErrNotFound)
	}

	return nil
}
