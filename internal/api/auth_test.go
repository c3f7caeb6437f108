package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequireToken(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{name: "disabled without token", token: "", header: "", want: http.StatusOK},
		{name: "disabled ignores header", token: "", header: "Bearer anything", want: http.StatusOK},
		{name: "missing header", token: "abc", header: "", want: http.StatusUnauthorized},
		{name: "bare token", token: "abc", header: "abc", want: http.StatusUnauthorized},
		{name: "wrong token", token: "abc", header: "Bearer abd", want: http.StatusUnauthorized},
		{name: "prefix of token", token: "abc", header: "Bearer ab", want: http.StatusUnauthorized},
		{name: "valid", token: "abc", header: "Bearer abc", want: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			requireToken(tt.token)(ok).ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d", rec.Code, tt.want)
			}
		})
	}
}
