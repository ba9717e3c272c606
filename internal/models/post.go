package models

import "time"

// Post is a single authored text entry. Author and CreatedAt are set once
// at creation and never change; Text and GroupID are the only mutable
// fields, and only through the edit workflow.
type Post struct {
	ID        int64     `db:"id" json:"id"`
	Text      string    `db:"text" json:"text"`
	AuthorID  int64     `db:"author_id" json:"author_id"`
	GroupID   *int64    `db:"group_id" json:"group_id,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`

	// Populated by the store on reads for display purposes.
	Author User   `db:"-" json:"author"`
	Group  *Group `db:"-" json:"group,omitempty"`
}
