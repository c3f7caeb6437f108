package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

const bookmarkColumns = `id, title, url, description, rating`

// BookmarkStore is the sqlx-backed implementation of BookmarkStoreIface.
type BookmarkStore struct {
	db *sqlx.DB
}

func NewBookmarkStore(db *sqlx.DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

// q rebinds ? placeholders to the driver's native format ($1,$2,... for PostgreSQL).
func (s *BookmarkStore) q(query string) string { return s.db.Rebind(query) }

// ListAll returns all bookmarks ordered by id.
func (s *BookmarkStore) ListAll(ctx context.Context) ([]*Bookmark, error) {
	bookmarks := []*Bookmark{}
	err := s.db.SelectContext(ctx, &bookmarks, `SELECT `+bookmarkColumns+` FROM bookmarks ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("list bookmarks: %w", err)
	}
	return bookmarks, nil
}

// GetByID returns the bookmark matching id, or ErrNotFound.
func (s *BookmarkStore) GetByID(ctx context.Context, id int64) (*Bookmark, error) {
	var b Bookmark
	err := s.db.GetContext(ctx, &b, s.q(`SELECT `+bookmarkColumns+` FROM bookmarks WHERE id = ?`), id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get bookmark %d: %w", id, err)
	}
	return &b, nil
}

// Create inserts a bookmark and returns the stored row. SQLite and PostgreSQL
// hand the row back through RETURNING; MySQL has no RETURNING, so the row is
// rebuilt from the insert id.
func (s *BookmarkStore) Create(ctx context.Context, nb NewBookmark) (*Bookmark, error) {
	const insert = `INSERT INTO bookmarks (title, url, description, rating) VALUES (?, ?, ?, ?)`

	if s.db.DriverName() == "mysql" {
		res, err := s.db.ExecContext(ctx, insert, nb.Title, nb.URL, nb.Description, nb.Rating)
		if err != nil {
			return nil, fmt.Errorf("insert bookmark: %w", err)
		}
		id, err := res.LastInsertId()
		if err != nil {
			return nil, fmt.Errorf("insert bookmark: last insert id: %w", err)
		}
		return &Bookmark{ID: id, Title: nb.Title, URL: nb.URL, Description: nb.Description, Rating: nb.Rating}, nil
	}

	var b Bookmark
	err := s.db.GetContext(ctx, &b, s.q(insert+` RETURNING `+bookmarkColumns),
		nb.Title, nb.URL, nb.Description, nb.Rating)
	if err != nil {
		return nil, fmt.Errorf("insert bookmark: %w", err)
	}
	return &b, nil
}

// Delete removes a bookmark by id.
func (s *BookmarkStore) Delete(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, s.q(`DELETE FROM bookmarks WHERE id = ?`), id)
	if err != nil {
		return 0, fmt.Errorf("delete bookmark %d: %w", id, err)
	}
	return res.RowsAffected()
}

// Update writes only the fields set on u.
func (s *BookmarkStore) Update(ctx context.Context, id int64, u BookmarkUpdate) (int64, error) {
	var (
		sets []string
		args []any
	)
	if u.Title != nil {
		sets = append(sets, "title = ?")
		args = append(args, *u.Title)
	}
	if u.URL != nil {
		sets = append(sets, "url = ?")
		args = append(args, *u.URL)
	}
	if u.Description != nil {
		sets = append(sets, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Rating != nil {
		sets = append(sets, "rating = ?")
		args = append(args, *u.Rating)
	}
	if len(sets) == 0 {
		return 0, ErrEmptyUpdate
	}
	args = append(args, id)

	res, err := s.db.ExecContext(ctx, s.q(`UPDATE bookmarks SET `+strings.Join(sets, ", ")+` WHERE id = ?`), args...)
	if err != nil {
		return 0, fmt.Errorf("update bookmark %d: %w", id, err)
	}
	return res.RowsAffected()
}
