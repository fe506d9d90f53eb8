package models

import (
	"fmt"
	"time"
)

// Song is catalog metadata resolved from a track, album, or playlist link.
// It is embedded in a [Blog] at creation time and never updated afterwards.
type Song struct {
	Name   string `json:"name"`
	Artist string `json:"artist"`
	Image  string `json:"image,omitempty"`
	URL    string `json:"url"`
}

// Blog represents a post with embedded song metadata.
// Author carries the author's username when loaded via a joined query.
type Blog struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Song      Song      `json:"song"`
	AuthorID  string    `json:"authorId"`
	Author    string    `json:"author,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewBlog constructs a Blog with creation timestamps set.
func NewBlog(title, text string, song Song, authorID string) *Blog {
	now := time.Now().UTC()
	return &Blog{
		Title:     title,
		Text:      text,
		Song:      song,
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (b *Blog) Key() string        { return b.ID }
func (b *Blog) Created() time.Time { return b.CreatedAt }

// Validate checks required fields.
func (b *Blog) Validate() error {
	if b.Title == "" || b.Text == "" {
		return fmt.Errorf("title and text are required")
	}
	if b.AuthorID == "" {
		return fmt.Errorf("author is required")
	}
	if b.Song.URL == "" {
		return fmt.Errorf("song url is required")
	}
	return nil
}
