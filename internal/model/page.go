package model

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// MaxPageSize is the maximum raw body size kept on a Page.
// Bodies beyond this are truncated; the hash is computed first so
// truncation never changes it.
const MaxPageSize = 5 * 1024 * 1024

// Page represents a fetched article page.
// Title and Raw are transient crawl-time data used to drive child
// discovery and the page archive; graph persistence is structural and
// never stores them.
type Page struct {
	// URL is the canonical article URL, the page's unique identity.
	URL string `json:"url"`

	// Source is the URL of the article whose anchor led here.
	// Empty for crawl seeds.
	Source string `json:"source,omitempty"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// ContentType is the MIME type of the response.
	ContentType string `json:"content_type"`

	// Title is the article title with the site suffix stripped.
	Title string `json:"title,omitempty"`

	// Raw contains the raw response body bytes, capped at MaxPageSize.
	Raw []byte `json:"-"`

	// Hash is the SHA-256 hash of the raw content before truncation.
	// Used by the page archive for change detection.
	Hash string `json:"hash"`

	// FetchedAt records when the page was fetched.
	FetchedAt time.Time `json:"fetched_at"`
}

// ComputeHash calculates and stores the SHA-256 hash of the raw content.
func (p *Page) ComputeHash() {
	sum := sha256.Sum256(p.Raw)
	p.Hash = hex.EncodeToString(sum[:])
}

// TruncateRaw caps the raw body at MaxPageSize bytes.
func (p *Page) TruncateRaw() {
	if len(p.Raw) > MaxPageSize {
		p.Raw = p.Raw[:MaxPageSize]
	}
}
