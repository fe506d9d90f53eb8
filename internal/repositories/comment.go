package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"songblog/internal/models"
	"songblog/internal/shared"
)

// CommentRepository persists [models.Comment] records. Comments are not
// editable once posted, so there is no Update.
type CommentRepository struct {
	db *sql.DB
}

// NewCommentRepository creates a new [CommentRepository] with the given database connection
func NewCommentRepository(db *sql.DB) *CommentRepository {
	return &CommentRepository{db: db}
}

// Create inserts a new comment with a generated ID.
func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	if err := comment.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	comment.ID = shared.GenerateID()

	query := `
		INSERT INTO comments (id, post_id, author_id, text, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query, comment.ID, comment.PostID, comment.AuthorID, comment.Text, comment.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}

	return nil
}

// Get retrieves a comment by ID.
func (r *CommentRepository) Get(ctx context.Context, id string) (*models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, u.username, c.text, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.id = ?
	`

	var comment models.Comment
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Author, &comment.Text, &comment.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: comment", shared.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query comment: %w", err)
	}

	return &comment, nil
}

// ListByPost retrieves all comments on the given post, oldest first, with the
// author's username joined in.
func (r *CommentRepository) ListByPost(ctx context.Context, postID string) ([]*models.Comment, error) {
	query := `
		SELECT c.id, c.post_id, c.author_id, u.username, c.text, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.post_id = ?
		ORDER BY c.created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	comments := []*models.Comment{}
	for rows.Next() {
		var comment models.Comment
		err := rows.Scan(&comment.ID, &comment.PostID, &comment.AuthorID, &comment.Author, &comment.Text, &comment.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, &comment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return comments, nil
}

// DeleteByPost removes every comment referencing the given post.
func (r *CommentRepository) DeleteByPost(ctx context.Context, postID string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM comments WHERE post_id = ?`, postID); err != nil {
		return fmt.Errorf("failed to delete comments: %w", err)
	}
	return nil
}
