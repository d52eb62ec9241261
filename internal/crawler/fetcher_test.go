package crawler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestFetcherFetch tests page fetching.
func TestFetcherFetch(t *testing.T) {
	t.Parallel()

	t.Run("returns page with body and hash", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte("<html><body>ok</body></html>"))
		}))
		defer srv.Close()

		page, err := NewFetcher(WithHTTPClient(srv.Client())).Fetch(context.Background(), srv.URL+"/wiki/Test", srv.URL+"/wiki/Quelle")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if page.URL != srv.URL+"/wiki/Test" {
			t.Errorf("unexpected url: %s", page.URL)
		}
		if page.Source != srv.URL+"/wiki/Quelle" {
			t.Errorf("unexpected source: %s", page.Source)
		}
		if page.StatusCode != http.StatusOK {
			t.Errorf("unexpected status: %d", page.StatusCode)
		}
		if !strings.Contains(string(page.Raw), "ok") {
			t.Error("expected body content")
		}
		if page.Hash == "" {
			t.Error("expected computed hash")
		}
		if page.FetchedAt.IsZero() {
			t.Error("expected fetch timestamp")
		}
	})

	t.Run("sends user agent", func(t *testing.T) {
		t.Parallel()

		var gotUA string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotUA = r.Header.Get("User-Agent")
		}))
		defer srv.Close()

		f := NewFetcher(WithHTTPClient(srv.Client()), WithUserAgent("test-agent/1.0"))
		if _, err := f.Fetch(context.Background(), srv.URL, ""); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if gotUA != "test-agent/1.0" {
			t.Errorf("expected custom user agent, got %q", gotUA)
		}
	})

	t.Run("non-2xx yields FetchError with status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.NotFound(w, r)
		}))
		defer srv.Close()

		_, err := NewFetcher(WithHTTPClient(srv.Client())).Fetch(context.Background(), srv.URL+"/wiki/Fehlt", "")
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected FetchError, got %v", err)
		}
		if fe.StatusCode != http.StatusNotFound {
			t.Errorf("expected status 404, got %d", fe.StatusCode)
		}
	})

	t.Run("transport failure yields FetchError with cause", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		srv.Close() // connection refused from here on

		_, err := NewFetcher().Fetch(context.Background(), srv.URL, "")
		var fe *FetchError
		if !errors.As(err, &fe) {
			t.Fatalf("expected FetchError, got %v", err)
		}
		if fe.Err == nil {
			t.Error("expected underlying transport error")
		}
	})

	t.Run("caps body at max size", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write(make([]byte, 4096))
		}))
		defer srv.Close()

		f := NewFetcher(WithHTTPClient(srv.Client()), WithMaxBodySize(1024))
		page, err := f.Fetch(context.Background(), srv.URL, "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Raw) != 1024 {
			t.Errorf("expected 1024 bytes, got %d", len(page.Raw))
		}
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-r.Context().Done()
		}))
		defer srv.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		if _, err := NewFetcher(WithHTTPClient(srv.Client())).Fetch(ctx, srv.URL, ""); err == nil {
			t.Error("expected error from cancelled context")
		}
	})
}
