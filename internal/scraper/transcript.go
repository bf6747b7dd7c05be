package scraper

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/desertthunder/taskboard/internal/shared"
)

var (
	// The player data appears either as a script assignment or inlined in a
	// larger JSON document. Both spellings are checked in order.
	playerAssignPattern = regexp.MustCompile(`(?is)ytInitialPlayerResponse\s*=\s*(\{.*?\})\s*;\s*var\s+meta`)
	playerInlinePattern = regexp.MustCompile(`(?s)"ytInitialPlayerResponse"\s*:\s*(\{.*?\})\s*,\s*"ytInitialData"`)

	textSegmentPattern = regexp.MustCompile(`(?s)<text[^>]*>(.*?)</text>`)
	leftoverTagPattern = regexp.MustCompile(`<[^>]+>`)

	entityReplacer = strings.NewReplacer(
		"&#39;", "'",
		"&quot;", `"`,
		"&amp;", "&",
		"&lt;", "<",
		"&gt;", ">",
	)
)

// CaptionTrack is one entry of the embedded caption track list.
type CaptionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	VssID        string `json:"vssId"`
}

type playerResponse struct {
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []CaptionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

// extractPlayerData pulls the embedded player JSON out of the page markup.
func extractPlayerData(html string) (string, error) {
	if m := playerAssignPattern.FindStringSubmatch(html); m != nil {
		return m[1], nil
	}
	if m := playerInlinePattern.FindStringSubmatch(html); m != nil {
		return m[1], nil
	}
	return "", shared.ErrNoPlayerData
}

// selectTrack picks the caption track to fetch.
//
// Preference order: exact language code match, vssId containing ".code",
// vssId containing the code anywhere, any en-prefixed track, first track.
func selectTrack(tracks []CaptionTrack, lang string) CaptionTrack {
	if want := strings.ToLower(lang); want != "" {
		for _, track := range tracks {
			if strings.ToLower(track.LanguageCode) == want {
				return track
			}
		}
		for _, track := range tracks {
			if strings.Contains(strings.ToLower(track.VssID), "."+want) {
				return track
			}
		}
		for _, track := range tracks {
			if strings.Contains(strings.ToLower(track.VssID), want) {
				return track
			}
		}
	}

	for _, track := range tracks {
		if strings.HasPrefix(strings.ToLower(track.LanguageCode), "en") {
			return track
		}
	}
	return tracks[0]
}

// parseCaptionXML extracts the plain text segments of a caption document.
func parseCaptionXML(xml string) []string {
	var lines []string
	for _, m := range textSegmentPattern.FindAllStringSubmatch(xml, -1) {
		raw := entityReplacer.Replace(m[1])
		raw = strings.ReplaceAll(raw, "\n", " ")
		cleaned := strings.TrimSpace(leftoverTagPattern.ReplaceAllString(raw, ""))
		if cleaned != "" {
			lines = append(lines, cleaned)
		}
	}
	return lines
}

// FetchTranscript downloads a watch page, picks a caption track and returns
// the cleaned transcript text, one segment per line.
func (s *Scraper) FetchTranscript(ctx context.Context, url, lang string) (string, error) {
	html, err := s.fetch(ctx, url)
	if err != nil {
		return "", err
	}

	jsonText, err := extractPlayerData(html)
	if err != nil {
		return "", err
	}

	var player playerResponse
	if err := json.Unmarshal([]byte(jsonText), &player); err != nil {
		return "", fmt.Errorf("%w: invalid player data", shared.ErrNoPlayerData)
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return "", shared.ErrNoCaptions
	}

	track := selectTrack(tracks, lang)
	if track.BaseURL == "" {
		return "", fmt.Errorf("%w: chosen track has no source URL", shared.ErrNoCaptions)
	}

	xml, err := s.fetch(ctx, track.BaseURL)
	if err != nil {
		return "", fmt.Errorf("caption fetch: %w", err)
	}

	lines := parseCaptionXML(xml)
	if len(lines) == 0 {
		return "", shared.ErrEmptyCaptions
	}

	return strings.Join(lines, "\n"), nil
}
