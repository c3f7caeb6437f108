package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/bookmarks-api/internal/metrics"
	"github.com/joestump/bookmarks-api/internal/store"
)

type contextKey string

const bookmarkContextKey contextKey = "bookmark"

// bookmarkFromContext returns the bookmark loaded by resolveBookmark, or nil.
func bookmarkFromContext(ctx context.Context) *store.Bookmark {
	b, _ := ctx.Value(bookmarkContextKey).(*store.Bookmark)
	return b
}

// resolveBookmark loads the bookmark named by the {id} URL parameter and puts
// it on the request context. Every identifier-scoped route sits behind it, so
// a missing bookmark is answered with 404 before any of them run. Ids that
// are not positive integers cannot exist and get the same 404.
func (h *bookmarksAPIHandler) resolveBookmark(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rawID := chi.URLParam(r, "id")

		id, err := strconv.ParseInt(rawID, 10, 64)
		if err != nil || id < 1 {
			h.notFound(w, rawID)
			return
		}

		b, err := h.bookmarks.GetByID(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			h.notFound(w, rawID)
			return
		}
		if err != nil {
			h.fail(w, r, "resolve", err)
			return
		}

		ctx := context.WithValue(r.Context(), bookmarkContextKey, b)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *bookmarksAPIHandler) notFound(w http.ResponseWriter, rawID string) {
	h.log.Errorf("Bookmark with id %s not found.", rawID)
	metrics.OperationsTotal.WithLabelValues("resolve", "not_found").Inc()
	writeError(w, http.StatusNotFound, msgNotFound)
}
