package models

import (
	"fmt"
	"time"
)

// Comment represents a comment attached to a blog post.
// Author carries the author's username when loaded via a joined query.
type Comment struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	AuthorID  string    `json:"authorId"`
	Author    string    `json:"author,omitempty"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewComment constructs a Comment with its creation timestamp set.
func NewComment(postID, authorID, text string) *Comment {
	return &Comment{
		PostID:    postID,
		AuthorID:  authorID,
		Text:      text,
		CreatedAt: time.Now().UTC(),
	}
}

func (c *Comment) Key() string        { return c.ID }
func (c *Comment) Created() time.Time { return c.CreatedAt }

// Validate checks required fields.
func (c *Comment) Validate() error {
	if c.Text == "" {
		return fmt.Errorf("text is required")
	}
	if c.PostID == "" || c.AuthorID == "" {
		return fmt.Errorf("post and author are required")
	}
	return nil
}
