package seed

import (
	"context"
	"errors"
	"testing"

	"github.com/joestump/bookmarks-api/internal/logger"
	"github.com/joestump/bookmarks-api/internal/store"
	"github.com/joestump/bookmarks-api/internal/testutil"
)

func TestLoad_Fixtures(t *testing.T) {
	got, err := Load("testdata/bookmarks.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := []struct {
		title  string
		rating int
	}{{"Google", 5}, {"Weather", 3}, {"Wikipedia", 4}}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i, w := range want {
		if got[i].Title != w.title || got[i].Rating != w.rating {
			t.Errorf("entry %d = %+v, want %s/%d", i, got[i], w.title, w.rating)
		}
		if got[i].Description == "" {
			t.Errorf("entry %d lost its description", i)
		}
	}
}

func TestLoad_MissingFile(t *testing.T) {
	if _, err := Load("testdata/nope.yaml"); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{name: "missing url", yaml: "bookmarks:\n  - title: a\n    rating: 3\n", wantErr: store.ErrMissingField},
		{name: "rating out of range", yaml: "bookmarks:\n  - title: a\n    url: https://a.com\n    rating: 9\n", wantErr: store.ErrInvalidRating},
		{name: "fractional rating", yaml: "bookmarks:\n  - title: a\n    url: https://a.com\n    rating: 2.5\n", wantErr: store.ErrInvalidRating},
		{name: "bad url", yaml: "bookmarks:\n  - title: a\n    url: not-a-url\n    rating: 3\n", wantErr: store.ErrInvalidURL},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.yaml))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Parse = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if _, err := Parse([]byte("bookmarks: [")); err == nil {
		t.Error("expected error for malformed yaml")
	}
}

func TestApply(t *testing.T) {
	s := store.NewBookmarkStore(testutil.NewTestDB(t))
	bookmarks, err := Load("testdata/bookmarks.yaml")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	n, err := Apply(context.Background(), s, bookmarks, logger.Nop())
	if err != nil {
		t.Fatalf("Apply: %v", err)
	}
	if n != 3 {
		t.Errorf("created = %d, want 3", n)
	}

	all, err := s.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if len(all) != 3 || all[0].ID != 1 || all[2].Title != "Wikipedia" {
		t.Errorf("stored rows = %+v", all)
	}
}
