package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/store"
)

// Deps holds all dependencies required to build the API router.
type Deps struct {
	Bookmarks store.BookmarkStoreIface
	Logger    logger.Logger
	// APIToken is the shared bearer token. Empty disables the check.
	APIToken string
	// Production hides error detail in 500 responses.
	Production bool
}

// NewAPIRouter creates the chi sub-router mounted at /api/bookmarks.
// All routes return application/json and sit behind the bearer token check.
func NewAPIRouter(deps Deps) chi.Router {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()
	r.Use(jsonContentType)
	r.Use(requireToken(deps.APIToken))

	registerBookmarkRoutes(r, &bookmarksAPIHandler{
		bookmarks:  deps.Bookmarks,
		log:        log,
		production: deps.Production,
	})

	return r
}

// jsonContentType is a middleware that sets Content-Type: application/json on all responses.
func jsonContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}
