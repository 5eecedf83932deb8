package updater

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestCompareVersions(t *testing.T) {
	tests := []struct {
		v1, v2 string
		want   int
	}{
		{"v0.1.0", "0.1.0", 0},
		{"0.10.0", "0.2.0", 1},
		{"v1.0", "1.0.1", -1},
		{"1.2.3-rc1", "1.2.3", 0},
		{"v2", "v1.9.9", 1},
	}
	for _, tt := range tests {
		t.Run(tt.v1+"_"+tt.v2, func(t *testing.T) {
			if got := CompareVersions(tt.v1, tt.v2); got != tt.want {
				t.Errorf("CompareVersions(%q, %q) = %d, want %d", tt.v1, tt.v2, got, tt.want)
			}
		})
	}
}

func serve(t *testing.T, status int, body string) *Checker {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return &Checker{URL: srv.URL, Client: srv.Client()}
}

func TestCheckForUpdates(t *testing.T) {
	c := serve(t, http.StatusOK, `{"tag_name":"v0.2.0","html_url":"https://example.com/r"}`)

	rel, err := c.CheckForUpdates(context.Background(), "0.1.0")
	if err != nil {
		t.Fatal(err)
	}
	if rel == nil || rel.TagName != "v0.2.0" || rel.HTMLURL != "https://example.com/r" {
		t.Fatalf("unexpected release %+v", rel)
	}

	rel, err = c.CheckForUpdates(context.Background(), "0.2.0")
	if err != nil || rel != nil {
		t.Errorf("up to date should return nil, got %+v, %v", rel, err)
	}
}

func TestCheckForUpdates_Errors(t *testing.T) {
	if _, err := serve(t, http.StatusForbidden, "").CheckForUpdates(context.Background(), "0.1.0"); err == nil {
		t.Error("expected error for non-200 status")
	}
	if _, err := serve(t, http.StatusOK, "{").CheckForUpdates(context.Background(), "0.1.0"); err == nil {
		t.Error("expected error for bad json")
	}
}
