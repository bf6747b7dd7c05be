package scraper

import (
	"context"
	"regexp"
)

// Meta is the extracted page metadata. Title and Channel are nil when the
// corresponding patterns found nothing; the URL is always echoed back.
type Meta struct {
	URL     string  `json:"url"`
	Title   *string `json:"title"`
	Channel *string `json:"channel"`
}

var (
	titleMetaPattern   = regexp.MustCompile(`(?is)<meta\s+name="title"\s+content="(.*?)"\s*>`)
	titleOGPattern     = regexp.MustCompile(`(?is)<meta\s+property="og:title"\s+content="(.*?)"\s*>`)
	channelNamePattern = regexp.MustCompile(`(?s)"ownerChannelName"\s*:\s*"(.*?)"`)
	channelLinkPattern = regexp.MustCompile(`(?is)<link\s+itemprop="name"\s+content="(.*?)"\s*>`)
)

// pick returns the first capture of the first pattern that matches.
func pick(html string, patterns ...*regexp.Regexp) *string {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(html); m != nil {
			return &m[1]
		}
	}
	return nil
}

// FetchMeta downloads a watch page and extracts its title and channel name.
func (s *Scraper) FetchMeta(ctx context.Context, url string) (*Meta, error) {
	html, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	return &Meta{
		URL:     url,
		Title:   pick(html, titleMetaPattern, titleOGPattern),
		Channel: pick(html, channelNamePattern, channelLinkPattern),
	}, nil
}
