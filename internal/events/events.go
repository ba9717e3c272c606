// Package events publishes post lifecycle events for downstream
// consumers (feeds, notifications). Publishing is best-effort: a broker
// outage never fails the originating request.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const (
	TypePostCreated = "post.created"
	TypePostUpdated = "post.updated"
)

type PostEvent struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	PostID     int64     `json:"post_id"`
	AuthorID   int64     `json:"author_id"`
	GroupID    *int64    `json:"group_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

func newEvent(typ string, postID, authorID int64, groupID *int64) PostEvent {
	return PostEvent{
		ID:         uuid.NewString(),
		Type:       typ,
		PostID:     postID,
		AuthorID:   authorID,
		GroupID:    groupID,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	PostCreated(ctx context.Context, postID, authorID int64, groupID *int64)
	PostUpdated(ctx context.Context, postID, authorID int64, groupID *int64)
	Close() error
}

// Nop is used when no broker is configured, and in tests.
type Nop struct{}

func (Nop) PostCreated(context.Context, int64, int64, *int64) {}
func (Nop) PostUpdated(context.Context, int64, int64, *int64) {}
func (Nop) Close() error                                      { return nil }
