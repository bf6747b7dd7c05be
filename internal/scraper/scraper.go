// package scraper extracts metadata and transcripts from video watch pages.
//
// The markup it reads is not a stable format, so extraction is best effort
// text pattern matching with fallback patterns rather than a full HTML
// parser. Failures abort immediately with a distinct error per mode; there
// are no retries and no partial output.
package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/desertthunder/taskboard/internal/shared"
)

const defaultUserAgent = "Mozilla/5.0"

// Scraper fetches watch pages and caption documents.
type Scraper struct {
	userAgent  string
	httpClient *http.Client
}

// New creates a scraper. An empty userAgent falls back to a generic
// browser string; some pages serve different markup to unknown agents.
func New(userAgent string) *Scraper {
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Scraper{
		userAgent:  userAgent,
		httpClient: http.DefaultClient,
	}
}

// fetch retrieves a URL following redirects and returns the raw body.
func (s *Scraper) fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: HTTP %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read body: %w", err)
	}

	return string(body), nil
}
