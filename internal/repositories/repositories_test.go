package repositories

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"songblog/internal/models"
	"songblog/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	// a second pool connection would see a different empty in-memory database
	db.SetMaxOpenConns(1)

	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

// seedUser inserts a user and returns it.
func seedUser(t *testing.T, db *sql.DB, email, username string) *models.User {
	t.Helper()

	repo := NewUserRepository(db)
	user := models.NewUser(email, username, "$2a$10$fakehashfakehashfakehash")
	if err := repo.Create(context.Background(), user); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	return user
}

// seedBlog inserts a blog for the given author and returns it.
func seedBlog(t *testing.T, db *sql.DB, authorID, title string, createdAt time.Time) *models.Blog {
	t.Helper()

	repo := NewBlogRepository(db)
	blog := models.NewBlog(title, "some text", models.Song{
		Name:   "Test Song",
		Artist: "Test Artist",
		URL:    "https://open.spotify.com/track/abc123",
	}, authorID)
	blog.CreatedAt = createdAt
	blog.UpdatedAt = createdAt
	if err := repo.Create(context.Background(), blog); err != nil {
		t.Fatalf("failed to seed blog: %v", err)
	}
	return blog
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create And Get", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)

		user := models.NewUser("Alice@Example.com", "alice", "hash")
		if err := repo.Create(ctx, user); err != nil {
			t.Fatalf("failed to create user: %v", err)
		}
		if user.ID == "" {
			t.Error("user ID should be set after creation")
		}

		got, err := repo.Get(ctx, user.ID)
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if got.Email != "alice@example.com" {
			t.Errorf("expected normalized email, got %s", got.Email)
		}
		if got.Username != "alice" {
			t.Errorf("expected username alice, got %s", got.Username)
		}
	})

	t.Run("GetByEmail", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		seedUser(t, db, "bob@example.com", "bob")

		got, err := repo.GetByEmail(ctx, "bob@example.com")
		if err != nil {
			t.Fatalf("failed to get user by email: %v", err)
		}
		if got.Username != "bob" {
			t.Errorf("expected bob, got %s", got.Username)
		}

		if _, err := repo.GetByEmail(ctx, "nobody@example.com"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		seedUser(t, db, "carol@example.com", "carol")

		err := repo.Create(ctx, models.NewUser("carol@example.com", "carol2", "hash"))
		if !errors.Is(err, shared.ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
	})

	t.Run("Duplicate Username", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		seedUser(t, db, "dave@example.com", "dave")

		err := repo.Create(ctx, models.NewUser("dave2@example.com", "dave", "hash"))
		if !errors.Is(err, shared.ErrUsernameTaken) {
			t.Errorf("expected ErrUsernameTaken, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		user := seedUser(t, db, "erin@example.com", "erin")

		user.Email = "erin.new@example.com"
		user.Username = "erin_new"
		if err := repo.Update(ctx, user); err != nil {
			t.Fatalf("failed to update user: %v", err)
		}

		got, err := repo.Get(ctx, user.ID)
		if err != nil {
			t.Fatalf("failed to get user: %v", err)
		}
		if got.Email != "erin.new@example.com" || got.Username != "erin_new" {
			t.Errorf("update not persisted: %+v", got)
		}
		if !got.UpdatedAt.After(got.CreatedAt) {
			t.Error("expected updated_at to be bumped")
		}
	})

	t.Run("Update Conflict", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewUserRepository(db)
		seedUser(t, db, "frank@example.com", "frank")
		user := seedUser(t, db, "grace@example.com", "grace")

		user.Email = "frank@example.com"
		if err := repo.Update(ctx, user); !errors.Is(err, shared.ErrEmailTaken) {
			t.Errorf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestBlogRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create And Get", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewBlogRepository(db)
		author := seedUser(t, db, "a@example.com", "author")
		blog := seedBlog(t, db, author.ID, "First Post", time.Now().UTC())

		got, err := repo.Get(ctx, blog.ID)
		if err != nil {
			t.Fatalf("failed to get blog: %v", err)
		}
		if got.Title != "First Post" {
			t.Errorf("expected title First Post, got %s", got.Title)
		}
		if got.Author != "author" {
			t.Errorf("expected joined author username, got %q", got.Author)
		}
		if got.Song.Name != "Test Song" || got.Song.Artist != "Test Artist" {
			t.Errorf("song metadata not persisted: %+v", got.Song)
		}
	})

	t.Run("Get Missing", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewBlogRepository(db)

		if _, err := repo.Get(ctx, "missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewBlogRepository(db)
		author := seedUser(t, db, "a@example.com", "author")
		blog := seedBlog(t, db, author.ID, "Before", time.Now().UTC())

		blog.Title = "After"
		blog.Text = "new text"
		if err := repo.Update(ctx, blog); err != nil {
			t.Fatalf("failed to update blog: %v", err)
		}

		got, err := repo.Get(ctx, blog.ID)
		if err != nil {
			t.Fatalf("failed to get blog: %v", err)
		}
		if got.Title != "After" || got.Text != "new text" {
			t.Errorf("update not persisted: %+v", got)
		}
	})

	t.Run("ListAll Newest First", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewBlogRepository(db)
		author := seedUser(t, db, "a@example.com", "author")

		t1 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		t2 := t1.Add(time.Hour)
		older := seedBlog(t, db, author.ID, "Older", t1)
		newer := seedBlog(t, db, author.ID, "Newer", t2)

		blogs, err := repo.ListAll(ctx)
		if err != nil {
			t.Fatalf("failed to list blogs: %v", err)
		}
		if len(blogs) != 2 {
			t.Fatalf("expected 2 blogs, got %d", len(blogs))
		}
		if blogs[0].ID != newer.ID || blogs[1].ID != older.ID {
			t.Errorf("expected newest-first ordering, got [%s, %s]", blogs[0].Title, blogs[1].Title)
		}
	})

	t.Run("ListByAuthor", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewBlogRepository(db)
		alice := seedUser(t, db, "alice@example.com", "alice")
		bob := seedUser(t, db, "bob@example.com", "bob")
		seedBlog(t, db, alice.ID, "Alice Post", time.Now().UTC())
		seedBlog(t, db, bob.ID, "Bob Post", time.Now().UTC())

		blogs, err := repo.ListByAuthor(ctx, alice.ID)
		if err != nil {
			t.Fatalf("failed to list blogs: %v", err)
		}
		if len(blogs) != 1 || blogs[0].Title != "Alice Post" {
			t.Errorf("expected only alice's post, got %d blogs", len(blogs))
		}
	})

	t.Run("DeleteCascade", func(t *testing.T) {
		db := setupTestDB(t)
		blogs := NewBlogRepository(db)
		comments := NewCommentRepository(db)
		author := seedUser(t, db, "a@example.com", "author")
		blog := seedBlog(t, db, author.ID, "Doomed", time.Now().UTC())
		keep := seedBlog(t, db, author.ID, "Kept", time.Now().UTC())

		for i := 0; i < 3; i++ {
			if err := comments.Create(ctx, models.NewComment(blog.ID, author.ID, "a comment")); err != nil {
				t.Fatalf("failed to create comment: %v", err)
			}
		}
		if err := comments.Create(ctx, models.NewComment(keep.ID, author.ID, "unrelated")); err != nil {
			t.Fatalf("failed to create comment: %v", err)
		}

		if err := blogs.DeleteCascade(ctx, blog.ID); err != nil {
			t.Fatalf("failed to cascade delete: %v", err)
		}

		if _, err := blogs.Get(ctx, blog.ID); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected blog to be gone, got %v", err)
		}

		orphans, err := comments.ListByPost(ctx, blog.ID)
		if err != nil {
			t.Fatalf("failed to list comments: %v", err)
		}
		if len(orphans) != 0 {
			t.Errorf("expected no comments for deleted post, got %d", len(orphans))
		}

		kept, err := comments.ListByPost(ctx, keep.ID)
		if err != nil {
			t.Fatalf("failed to list comments: %v", err)
		}
		if len(kept) != 1 {
			t.Errorf("expected unrelated comment to survive, got %d", len(kept))
		}
	})

	t.Run("DeleteCascade Missing", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewBlogRepository(db)

		if err := repo.DeleteCascade(ctx, "missing"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestCommentRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("Create And ListByPost", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCommentRepository(db)
		author := seedUser(t, db, "a@example.com", "author")
		blog := seedBlog(t, db, author.ID, "Post", time.Now().UTC())

		first := models.NewComment(blog.ID, author.ID, "first")
		first.CreatedAt = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
		second := models.NewComment(blog.ID, author.ID, "second")
		second.CreatedAt = first.CreatedAt.Add(time.Minute)

		if err := repo.Create(ctx, first); err != nil {
			t.Fatalf("failed to create comment: %v", err)
		}
		if err := repo.Create(ctx, second); err != nil {
			t.Fatalf("failed to create comment: %v", err)
		}

		comments, err := repo.ListByPost(ctx, blog.ID)
		if err != nil {
			t.Fatalf("failed to list comments: %v", err)
		}
		if len(comments) != 2 {
			t.Fatalf("expected 2 comments, got %d", len(comments))
		}
		if comments[0].Text != "first" || comments[1].Text != "second" {
			t.Errorf("expected oldest-first ordering, got [%s, %s]", comments[0].Text, comments[1].Text)
		}
		if comments[0].Author != "author" {
			t.Errorf("expected joined author username, got %q", comments[0].Author)
		}
	})

	t.Run("Foreign Key Enforced", func(t *testing.T) {
		db := setupTestDB(t)
		repo := NewCommentRepository(db)
		author := seedUser(t, db, "a@example.com", "author")

		err := repo.Create(ctx, models.NewComment("no-such-post", author.ID, "orphan"))
		if err == nil {
			t.Error("expected foreign key violation for unknown post")
		}
	})
}
