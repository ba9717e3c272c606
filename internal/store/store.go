package store

import (
	"context"
	"errors"

	"github.com/avelichko/postbook/internal/models"
)

var (
	// ErrNotFound is returned for unknown post ids, group slugs and usernames.
	ErrNotFound = errors.New("store: not found")

	// ErrDuplicate is returned when a unique constraint (username, email,
	// group slug) would be violated.
	ErrDuplicate = errors.New("store: duplicate")
)

// PostFilter narrows a post query. Nil fields mean "no filter". Results are
// always ordered newest first: created_at descending, id descending as the
// tie-break, so listings stay stable across requests.
type PostFilter struct {
	AuthorID *int64
	GroupID  *int64
}

// Store is the persistence boundary. The Postgres implementation backs the
// server; tests run against the in-memory one.
type Store interface {
	Posts(ctx context.Context, f PostFilter) ([]models.Post, error)
	PostByID(ctx context.Context, id int64) (*models.Post, error)
	CreatePost(ctx context.Context, p *models.Post) error
	UpdatePost(ctx context.Context, p *models.Post) error

	Groups(ctx context.Context) ([]models.Group, error)
	GroupBySlug(ctx context.Context, slug string) (*models.Group, error)
	GroupByID(ctx context.Context, id int64) (*models.Group, error)
	CreateGroup(ctx context.Context, g *models.Group) error

	UserByID(ctx context.Context, id int64) (*models.User, error)
	UserByUsername(ctx context.Context, username string) (*models.User, error)
	CreateUser(ctx context.Context, u *models.User) error
}
