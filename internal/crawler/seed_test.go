package crawler

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// TestSeedSourceRandomArticleURL tests resolving the random-article
// redirect into a canonical article URL.
func TestSeedSourceRandomArticleURL(t *testing.T) {
	t.Parallel()

	t.Run("rebuilds the URL from the landing title", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == "/wiki/Spezial:Zufällige_Seite" {
				http.Redirect(w, r, "/wiki/K%C3%B6lner_Dom", http.StatusFound)
				return
			}
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><head><title>Kölner Dom – Wikipedia</title></head><body></body></html>`))
		}))
		t.Cleanup(srv.Close)

		src := NewSeedSource(
			NewFetcher(WithHTTPClient(srv.Client())),
			NewParser("Wikipedia"),
			srv.URL,
			"Spezial:Zuf%C3%A4llige_Seite",
		)

		got, err := src.RandomArticleURL(context.Background())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := srv.URL + "/wiki/K%C3%B6lner%20Dom"
		if got != want {
			t.Errorf("expected %q, got %q", want, got)
		}
	})

	t.Run("fails when the landing page has no title", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<html><body>kein Titel</body></html>`))
		}))
		t.Cleanup(srv.Close)

		src := NewSeedSource(
			NewFetcher(WithHTTPClient(srv.Client())),
			NewParser("Wikipedia"),
			srv.URL,
			"Spezial:Zuf%C3%A4llige_Seite",
		)

		if _, err := src.RandomArticleURL(context.Background()); !errors.Is(err, ErrSeedResolution) {
			t.Errorf("expected ErrSeedResolution, got %v", err)
		}
	})

	t.Run("propagates fetch failures", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		t.Cleanup(srv.Close)

		src := NewSeedSource(
			NewFetcher(WithHTTPClient(srv.Client())),
			NewParser("Wikipedia"),
			srv.URL,
			"Spezial:Zuf%C3%A4llige_Seite",
		)

		var fe *FetchError
		if _, err := src.RandomArticleURL(context.Background()); !errors.As(err, &fe) {
			t.Errorf("expected FetchError, got %v", err)
		}
	})
}
