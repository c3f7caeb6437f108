package api

import (
	"github.com/microcosm-cc/bluemonday"

	"github.com/joestump/bookmarks-api/internal/store"
)

// textPolicy strips every tag and escapes the remaining text. Running its
// output through it again yields the same string.
var textPolicy = bluemonday.StrictPolicy()

// sanitizeBookmark prepares a stored bookmark for output. Stored rows may
// contain raw markup; only the response copy is cleaned.
func sanitizeBookmark(b *store.Bookmark) BookmarkResponse {
	return BookmarkResponse{
		ID:          b.ID,
		Title:       textPolicy.Sanitize(b.Title),
		URL:         b.URL,
		Description: textPolicy.Sanitize(b.Description),
		Rating:      b.Rating,
	}
}

func sanitizeBookmarks(bs []*store.Bookmark) []BookmarkResponse {
	out := make([]BookmarkResponse, 0, len(bs))
	for _, b := range bs {
		out = append(out, sanitizeBookmark(b))
	}
	return out
}
