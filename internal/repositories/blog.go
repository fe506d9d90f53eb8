package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"songblog/internal/models"
	"songblog/internal/shared"
)

// BlogRepository implements [models.Repository] for [models.Blog] persistence.
type BlogRepository struct {
	db *sql.DB
}

var _ models.Repository[*models.Blog] = (*BlogRepository)(nil)

// NewBlogRepository creates a new [BlogRepository] with the given database connection
func NewBlogRepository(db *sql.DB) *BlogRepository {
	return &BlogRepository{db: db}
}

const blogColumns = `
	b.id, b.title, b.text,
	b.song_name, b.song_artist, b.song_image, b.song_url,
	b.author_id, u.username, b.created_at, b.updated_at
`

// Create inserts a new blog with a generated ID.
func (r *BlogRepository) Create(ctx context.Context, blog *models.Blog) error {
	if err := blog.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	blog.ID = shared.GenerateID()

	query := `
		INSERT INTO blogs (id, title, text, song_name, song_artist, song_image, song_url, author_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		blog.ID, blog.Title, blog.Text,
		blog.Song.Name, blog.Song.Artist, blog.Song.Image, blog.Song.URL,
		blog.AuthorID, blog.CreatedAt, blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert blog: %w", err)
	}

	return nil
}

// Get retrieves a blog by ID, with the author's username joined in.
func (r *BlogRepository) Get(ctx context.Context, id string) (*models.Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.id = ?
	`

	blog, err := scanBlog(r.db.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: blog", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query blog: %w", err)
	}

	return blog, nil
}

// Update modifies a blog's title and text, bumping updated_at.
// Song metadata is immutable after creation.
func (r *BlogRepository) Update(ctx context.Context, blog *models.Blog) error {
	if err := blog.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	now := time.Now().UTC()
	blog.UpdatedAt = now

	query := `
		UPDATE blogs
		SET title = ?, text = ?, updated_at = ?
		WHERE id = ?
	`

	result, err := r.db.ExecContext(ctx, query, blog.Title, blog.Text, now, blog.ID)
	if err != nil {
		return fmt.Errorf("failed to update blog: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: blog", shared.ErrNotFound)
	}

	return nil
}

// Delete removes a blog by ID without touching its comments. Most callers want
// [BlogRepository.DeleteCascade] instead.
func (r *BlogRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: blog", shared.ErrNotFound)
	}

	return nil
}

// DeleteCascade removes a blog and all comments referencing it inside a single
// transaction, so a failure leaves both intact.
func (r *BlogRepository) DeleteCascade(ctx context.Context, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE post_id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM blogs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete blog: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("%w: blog", shared.ErrNotFound)
	}

	return tx.Commit()
}

// ListByAuthor retrieves all blogs written by the given author, newest first.
func (r *BlogRepository) ListByAuthor(ctx context.Context, authorID string) ([]*models.Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		WHERE b.author_id = ?
		ORDER BY b.created_at DESC
	`
	return r.list(ctx, query, authorID)
}

// ListAll retrieves every blog, newest first.
func (r *BlogRepository) ListAll(ctx context.Context) ([]*models.Blog, error) {
	query := `
		SELECT ` + blogColumns + `
		FROM blogs b
		JOIN users u ON u.id = b.author_id
		ORDER BY b.created_at DESC
	`
	return r.list(ctx, query)
}

func (r *BlogRepository) list(ctx context.Context, query string, args ...any) ([]*models.Blog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query blogs: %w", err)
	}
	defer rows.Close()

	blogs := []*models.Blog{}
	for rows.Next() {
		blog, err := scanBlog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan blog: %w", err)
		}
		blogs = append(blogs, blog)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return blogs, nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanBlog(s scanner) (*models.Blog, error) {
	var blog models.Blog
	err := s.Scan(
		&blog.ID, &blog.Title, &blog.Text,
		&blog.Song.Name, &blog.Song.Artist, &blog.Song.Image, &blog.Song.URL,
		&blog.AuthorID, &blog.Author, &blog.CreatedAt, &blog.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &blog, nil
}
