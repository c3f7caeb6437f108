package handler_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/joestump/bookmarks-api/internal/handler"
	"github.com/joestump/bookmarks-api/internal/store"
	"github.com/joestump/bookmarks-api/internal/testutil"
)

type failingPinger struct{}

func (failingPinger) PingContext(context.Context) error { return errors.New("database is locked") }

type panickingStore struct {
	store.BookmarkStoreIface
}

func (panickingStore) ListAll(context.Context) ([]*store.Bookmark, error) {
	panic("boom")
}

func newRouter(t *testing.T, deps handler.Deps) http.Handler {
	t.Helper()
	if deps.Bookmarks == nil {
		db := testutil.NewTestDB(t)
		deps.Bookmarks = store.NewBookmarkStore(db)
		if deps.DB == nil {
			deps.DB = db
		}
	}
	return handler.NewRouter(deps)
}

func serve(h http.Handler, method, target, body string, headers ...string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestRouter_Hello(t *testing.T) {
	r := newRouter(t, handler.Deps{})

	rec := serve(r, "GET", "/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec.Body.String() != "Hello, world!" {
		t.Errorf("body = %q, want %q", rec.Body.String(), "Hello, world!")
	}
}

func TestRouter_SecurityHeaders(t *testing.T) {
	r := newRouter(t, handler.Deps{})

	for _, target := range []string{"/", "/api/bookmarks", "/api/bookmarks/99"} {
		rec := serve(r, "GET", target, "")
		if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
			t.Errorf("%s: X-Content-Type-Options = %q, want nosniff", target, got)
		}
		if got := rec.Header().Get("X-Frame-Options"); got != "SAMEORIGIN" {
			t.Errorf("%s: X-Frame-Options = %q, want SAMEORIGIN", target, got)
		}
		if got := rec.Header().Get("Referrer-Policy"); got != "no-referrer" {
			t.Errorf("%s: Referrer-Policy = %q, want no-referrer", target, got)
		}
		if got := rec.Header().Get("Strict-Transport-Security"); got != "max-age=15552000; includeSubDomains" {
			t.Errorf("%s: Strict-Transport-Security = %q", target, got)
		}
		if got := rec.Header().Get("Cross-Origin-Opener-Policy"); got != "same-origin" {
			t.Errorf("%s: Cross-Origin-Opener-Policy = %q, want same-origin", target, got)
		}
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	r := newRouter(t, handler.Deps{APIToken: "s3cret"})

	rec := serve(r, "OPTIONS", "/api/bookmarks", "",
		"Origin", "https://app.example.com",
		"Access-Control-Request-Method", "PATCH",
		"Access-Control-Request-Headers", "Authorization")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Access-Control-Allow-Origin = %q, want *", got)
	}
}

func TestRouter_Healthz(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		r := newRouter(t, handler.Deps{})
		rec := serve(r, "GET", "/healthz", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusOK, rec.Body.String())
		}
		if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
			t.Errorf("body = %s, want status ok", rec.Body.String())
		}
	})

	t.Run("database down", func(t *testing.T) {
		r := newRouter(t, handler.Deps{Bookmarks: store.NewMemoryStore(), DB: failingPinger{}})
		rec := serve(r, "GET", "/healthz", "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Fatalf("status = %d, want %d", rec.Code, http.StatusServiceUnavailable)
		}
		if !strings.Contains(rec.Body.String(), "database is locked") {
			t.Errorf("body = %s, want ping error", rec.Body.String())
		}
	})
}

func TestRouter_Metrics(t *testing.T) {
	r := newRouter(t, handler.Deps{})
	serve(r, "GET", "/api/bookmarks", "")

	rec := serve(r, "GET", "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "bookmarks_http_requests_total") {
		t.Errorf("metrics output missing request counter")
	}
	if !strings.Contains(body, `route="/api/bookmarks`) {
		t.Errorf("metrics output missing api route label")
	}
}

func TestRouter_Docs(t *testing.T) {
	r := newRouter(t, handler.Deps{APIToken: "s3cret"})

	rec := serve(r, "GET", "/docs/doc.json", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusOK)
	}
	if !strings.Contains(rec.Body.String(), "/{id}") {
		t.Errorf("doc.json does not describe the bookmark routes: %s", rec.Body.String())
	}
}

func TestRouter_BearerGateScopedToAPI(t *testing.T) {
	r := newRouter(t, handler.Deps{APIToken: "s3cret"})

	if rec := serve(r, "GET", "/", ""); rec.Code != http.StatusOK {
		t.Errorf("GET / status = %d, want %d", rec.Code, http.StatusOK)
	}
	if rec := serve(r, "GET", "/api/bookmarks", ""); rec.Code != http.StatusUnauthorized {
		t.Errorf("GET /api/bookmarks status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if rec := serve(r, "GET", "/api/bookmarks", "", "Authorization", "Bearer s3cret"); rec.Code != http.StatusOK {
		t.Errorf("GET /api/bookmarks with token status = %d, want %d", rec.Code, http.StatusOK)
	}
}

func TestRouter_CreateLocationIsAbsolutePath(t *testing.T) {
	r := newRouter(t, handler.Deps{})

	rec := serve(r, "POST", "/api/bookmarks", `{"title":"Go","url":"https://go.dev","rating":5}`,
		"Content-Type", "application/json")
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d; body: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != "/api/bookmarks/1" {
		t.Errorf("Location = %q, want /api/bookmarks/1", got)
	}
}

func TestRouter_RecoversPanic(t *testing.T) {
	tests := []struct {
		name       string
		production bool
		want       string
	}{
		{name: "production", production: true, want: `{"error":{"message":"server error"}}`},
		{name: "development", production: false, want: `"message":"panic: boom"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(t, handler.Deps{
				Bookmarks:  panickingStore{BookmarkStoreIface: store.NewMemoryStore()},
				Production: tt.production,
			})
			rec := serve(r, "GET", "/api/bookmarks", "")
			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
			}
			if !strings.Contains(rec.Body.String(), tt.want) {
				t.Errorf("body = %s, want it to contain %s", rec.Body.String(), tt.want)
			}
		})
	}
}
