package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested bookmark does not exist.
var ErrNotFound = errors.New("not found")

// Bookmark represents a row in the bookmarks table.
type Bookmark struct {
	ID          int64  `db:"id" json:"id"`
	Title       string `db:"title" json:"title"`
	URL         string `db:"url" json:"url"`
	Description string `db:"description" json:"description"`
	Rating      int    `db:"rating" json:"rating"`
}

// NewBookmark is a validated bookmark that has not been persisted yet.
type NewBookmark struct {
	Title       string
	URL         string
	Description string
	Rating      int
}

// BookmarkUpdate carries the fields of a partial update. Nil fields are left
// untouched.
type BookmarkUpdate struct {
	Title       *string
	URL         *string
	Description *string
	Rating      *int
}

// Fields returns how many fields the update would change.
func (u BookmarkUpdate) Fields() int {
	n := 0
	if u.Title != nil {
		n++
	}
	if u.URL != nil {
		n++
	}
	if u.Description != nil {
		n++
	}
	if u.Rating != nil {
		n++
	}
	return n
}

// Apply returns a copy of b with the update's fields replaced.
func (u BookmarkUpdate) Apply(b Bookmark) Bookmark {
	if u.Title != nil {
		b.Title = *u.Title
	}
	if u.URL != nil {
		b.URL = *u.URL
	}
	if u.Description != nil {
		b.Description = *u.Description
	}
	if u.Rating != nil {
		b.Rating = *u.Rating
	}
	return b
}

// BookmarkStoreIface exposes all bookmark data operations.
// Handlers never query the DB directly; all access goes through this interface.
type BookmarkStoreIface interface {
	// ListAll returns every bookmark in insertion (id) order.
	ListAll(ctx context.Context) ([]*Bookmark, error)
	// GetByID returns the bookmark with the given id, or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*Bookmark, error)
	// Create inserts b and returns the stored row with its assigned id.
	Create(ctx context.Context, b NewBookmark) (*Bookmark, error)
	// Delete removes the bookmark and reports how many rows were deleted.
	Delete(ctx context.Context, id int64) (int64, error)
	// Update applies a partial update and reports how many rows matched.
	Update(ctx context.Context, id int64, u BookmarkUpdate) (int64, error)
}
