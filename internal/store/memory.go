package store

import (
	"context"
	"sync"
)

// MemoryStore keeps bookmarks in process memory. It satisfies
// BookmarkStoreIface and is meant for tests and local experiments.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	rows   []Bookmark
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{nextID: 1}
}

func (s *MemoryStore) ListAll(ctx context.Context) ([]*Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Bookmark, 0, len(s.rows))
	for i := range s.rows {
		b := s.rows[i]
		out = append(out, &b)
	}
	return out, nil
}

func (s *MemoryStore) GetByID(ctx context.Context, id int64) (*Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	b := s.rows[i]
	return &b, nil
}

func (s *MemoryStore) Create(ctx context.Context, nb NewBookmark) (*Bookmark, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	b := Bookmark{
		ID:          s.nextID,
		Title:       nb.Title,
		URL:         nb.URL,
		Description: nb.Description,
		Rating:      nb.Rating,
	}
	s.nextID++
	s.rows = append(s.rows, b)
	return &b, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id int64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return 0, nil
	}
	s.rows = append(s.rows[:i], s.rows[i+1:]...)
	return 1, nil
}

func (s *MemoryStore) Update(ctx context.Context, id int64, u BookmarkUpdate) (int64, error) {
	if u.Fields() == 0 {
		return 0, ErrEmptyUpdate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return 0, nil
	}
	s.rows[i] = u.Apply(s.rows[i])
	return 1, nil
}

// indexOf must be called with mu held.
func (s *MemoryStore) indexOf(id int64) int {
	for i := range s.rows {
		if s.rows[i].ID == id {
			return i
		}
	}
	return -1
}
