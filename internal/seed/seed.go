// Package seed loads bookmark fixtures from YAML and inserts them through the
// store, applying the same validation as the HTTP API.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/store"
)

// File is the root of a seed file:
//
//	bookmarks:
//	  - title: Google
//	    url: https://www.google.com
//	    rating: 5
type File struct {
	Bookmarks []map[string]any `yaml:"bookmarks"`
}

// Load reads and validates a seed file. It fails on the first invalid entry.
func Load(path string) ([]store.NewBookmark, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}
	return Parse(data)
}

// Parse validates seed YAML already in memory.
func Parse(data []byte) ([]store.NewBookmark, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}

	out := make([]store.NewBookmark, 0, len(f.Bookmarks))
	for i, entry := range f.Bookmarks {
		nb, err := store.ValidateNewBookmark(entry)
		if err != nil {
			return nil, fmt.Errorf("seed entry %d: %w", i, err)
		}
		out = append(out, nb)
	}
	return out, nil
}

// Apply inserts bookmarks in order and returns how many were created.
func Apply(ctx context.Context, s store.BookmarkStoreIface, bookmarks []store.NewBookmark, log logger.Logger) (int, error) {
	for i, nb := range bookmarks {
		b, err := s.Create(ctx, nb)
		if err != nil {
			return i, fmt.Errorf("seed %q: %w", nb.Title, err)
		}
		log.Infof("Bookmark with id %d created.", b.ID)
	}
	return len(bookmarks), nil
}
