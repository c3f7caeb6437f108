package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/joestump/bookmarks-api/internal/api"
	"github.com/joestump/bookmarks-api/internal/store"
	"github.com/joestump/bookmarks-api/internal/testutil"
)

const apiRoot = "/api/bookmarks"

// testEnv holds the router under test and the store behind it.
type testEnv struct {
	Router http.Handler
	Store  store.BookmarkStoreIface
}

// newTestEnv creates an in-memory SQLite test database, runs migrations,
// and mounts the API router at /api/bookmarks.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	return newTestEnvWith(t, api.Deps{Bookmarks: store.NewBookmarkStore(testutil.NewTestDB(t))})
}

// newTestEnvWith mounts the API router built from deps.
func newTestEnvWith(t *testing.T, deps api.Deps) *testEnv {
	t.Helper()
	r := chi.NewRouter()
	r.Mount(apiRoot, api.NewAPIRouter(deps))
	return &testEnv{Router: r, Store: deps.Bookmarks}
}

// do sends a request through the router and returns the recorder.
func (env *testEnv) do(method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	env.Router.ServeHTTP(rec, req)
	return rec
}

func makeBookmarks() []store.NewBookmark {
	return []store.NewBookmark{
		{Title: "Google", URL: "https://www.google.com", Description: "Lorem ipsum dolor sit amet, consectetur adipisicing elit.", Rating: 5},
		{Title: "Weather", URL: "https://www.weather.com", Description: "Lorem ipsum dolor sit amet, consectetur adipisicing elit.", Rating: 3},
		{Title: "Wikipedia", URL: "https://www.wikipedia.com", Description: "Lorem ipsum dolor sit amet, consectetur adipisicing elit.", Rating: 4},
	}
}

func makeMaliciousBookmark() store.NewBookmark {
	return store.NewBookmark{
		Title:       `Naughty naughty very naughty <script>alert("xss");</script>`,
		URL:         "https://www.hackers.com",
		Description: `Bad image <img src="https://url.to.file.which/does-not.exist" onerror="alert(document.cookie);">. But not <strong>all</strong> bad.`,
		Rating:      1,
	}
}

// seedBookmarks inserts the fixtures and returns the stored rows.
func seedBookmarks(t *testing.T, env *testEnv, fixtures ...store.NewBookmark) []*store.Bookmark {
	t.Helper()
	if len(fixtures) == 0 {
		fixtures = makeBookmarks()
	}
	var out []*store.Bookmark
	for _, nb := range fixtures {
		b, err := env.Store.Create(context.Background(), nb)
		if err != nil {
			t.Fatalf("seed bookmark: %v", err)
		}
		out = append(out, b)
	}
	return out
}

// spyStore wraps a store and counts write calls, optionally failing them all.
type spyStore struct {
	store.BookmarkStoreIface
	err     error
	updates int
	deletes int
}

func (s *spyStore) ListAll(ctx context.Context) ([]*store.Bookmark, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.BookmarkStoreIface.ListAll(ctx)
}

func (s *spyStore) GetByID(ctx context.Context, id int64) (*store.Bookmark, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.BookmarkStoreIface.GetByID(ctx, id)
}

func (s *spyStore) Create(ctx context.Context, nb store.NewBookmark) (*store.Bookmark, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.BookmarkStoreIface.Create(ctx, nb)
}

func (s *spyStore) Update(ctx context.Context, id int64, u store.BookmarkUpdate) (int64, error) {
	s.updates++
	return s.BookmarkStoreIface.Update(ctx, id, u)
}

func (s *spyStore) Delete(ctx context.Context, id int64) (int64, error) {
	s.deletes++
	return s.BookmarkStoreIface.Delete(ctx, id)
}
