package api

// BookmarkResponse is the JSON representation of a bookmark. Title and
// description are always sanitized before they land here.
type BookmarkResponse struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description"`
	Rating      int    `json:"rating"`
}

// CreateBookmarkRequest documents the body of POST /api/bookmarks. The handler
// decodes into a generic map so that absent and falsy values can be told apart
// from zero values.
type CreateBookmarkRequest struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
	Rating      int    `json:"rating"`
}

// UpdateBookmarkRequest documents the body of PATCH /api/bookmarks/{id}.
// Every field is optional, but at least one must be supplied.
type UpdateBookmarkRequest struct {
	Title       *string `json:"title,omitempty"`
	URL         *string `json:"url,omitempty"`
	Description *string `json:"description,omitempty"`
	Rating      *int    `json:"rating,omitempty"`
}
