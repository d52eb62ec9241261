package crawler

import (
	"reflect"
	"testing"
)

const testOrigin = "https://de.wikipedia.org"

func testFilter() *LinkFilter {
	return NewLinkFilter(testOrigin, []string{
		"Wikipedia", "Portal", "Spezial", "Kategorie", "Datei", "Hilfe", "Diskussion",
	})
}

// TestLinkFilter tests the link exclusion rules.
func TestLinkFilter(t *testing.T) {
	t.Parallel()

	t.Run("drops absolute and fragment links", func(t *testing.T) {
		t.Parallel()

		hrefs := []string{
			"https://example.com/page",
			"http://example.com/page",
			"#cite_note-1",
			"/wiki/Graphentheorie",
		}
		got := testFilter().Filter(testOrigin+"/wiki/Start", hrefs)

		want := []string{testOrigin + "/wiki/Graphentheorie"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("drops non-article paths", func(t *testing.T) {
		t.Parallel()

		hrefs := []string{
			"/w/index.php?title=Foo",
			"/static/images/logo.png",
			"/wiki/Knoten_(Graphentheorie)",
		}
		got := testFilter().Filter(testOrigin+"/wiki/Start", hrefs)

		if len(got) != 1 || got[0] != testOrigin+"/wiki/Knoten_(Graphentheorie)" {
			t.Errorf("unexpected result: %v", got)
		}
	})

	t.Run("drops excluded namespaces", func(t *testing.T) {
		t.Parallel()

		hrefs := []string{
			"/wiki/Diskussion:Graphentheorie",
			"/wiki/Spezial:Zuf%C3%A4llige_Seite",
			"/wiki/Kategorie:Mathematik",
			"/wiki/Datei:Graph.svg",
			"/wiki/Hilfe:Suche",
			"/wiki/Portal:Mathematik",
			"/wiki/Wikipedia:Impressum",
		}
		got := testFilter().Filter(testOrigin+"/wiki/Start", hrefs)

		if len(got) != 0 {
			t.Errorf("expected all namespace links dropped, got %v", got)
		}
	})

	t.Run("keeps article titles containing a colon beyond the namespace", func(t *testing.T) {
		t.Parallel()

		// "Utopia:" is not an excluded namespace, so the link survives.
		hrefs := []string{"/wiki/Utopia:_Staat"}
		got := testFilter().Filter(testOrigin+"/wiki/Start", hrefs)

		if len(got) != 1 {
			t.Errorf("expected 1 link, got %v", got)
		}
	})

	t.Run("deduplicates preserving first-seen order", func(t *testing.T) {
		t.Parallel()

		hrefs := []string{
			"/wiki/Bbb",
			"/wiki/Aaa",
			"/wiki/Bbb",
			"/wiki/Ccc",
			"/wiki/Aaa",
		}
		got := testFilter().Filter(testOrigin+"/wiki/Start", hrefs)

		want := []string{
			testOrigin + "/wiki/Bbb",
			testOrigin + "/wiki/Aaa",
			testOrigin + "/wiki/Ccc",
		}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("removes self-links by URL comparison", func(t *testing.T) {
		t.Parallel()

		hrefs := []string{
			"/wiki/Start",
			"/wiki/Andere",
			"/wiki/Start",
		}
		got := testFilter().Filter(testOrigin+"/wiki/Start", hrefs)

		want := []string{testOrigin + "/wiki/Andere"}
		if !reflect.DeepEqual(got, want) {
			t.Errorf("expected %v, got %v", want, got)
		}
	})

	t.Run("keeps the last link when it is not a self-link", func(t *testing.T) {
		t.Parallel()

		// The reference dropped the final entry positionally; the
		// explicit same-URL filter must not.
		hrefs := []string{"/wiki/Erste", "/wiki/Letzte"}
		got := testFilter().Filter(testOrigin+"/wiki/Start", hrefs)

		if len(got) != 2 {
			t.Errorf("expected both links kept, got %v", got)
		}
	})

	t.Run("empty and malformed input yields empty list", func(t *testing.T) {
		t.Parallel()

		for _, hrefs := range [][]string{
			nil,
			{},
			{"", "/", "//", "/wiki", "wiki"},
		} {
			if got := testFilter().Filter(testOrigin+"/wiki/Start", hrefs); len(got) != 0 {
				t.Errorf("expected empty result for %v, got %v", hrefs, got)
			}
		}
	})
}
