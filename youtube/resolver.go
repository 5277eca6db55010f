package youtube

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/nijaru/yt-forever/errors"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,20}$`)

// ExtractVideoID resolves the canonical video ID from the URL shapes YouTube
// serves: watch?v=, youtu.be/, /embed/, /v/, /shorts/, or a bare ID.
func ExtractVideoID(raw string) (string, error) {
	const op = "youtube.ExtractVideoID"

	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", errors.InvalidInput(op, nil, "URL is required")
	}

	// Bare video ID
	if videoIDPattern.MatchString(raw) {
		return raw, nil
	}

	parsedURL, err := url.Parse(raw)
	if err != nil {
		return "", errors.InvalidInput(op, err, "Invalid URL format")
	}

	var id string
	host := strings.ToLower(parsedURL.Hostname())

	switch {
	case host == "youtu.be":
		id = firstPathSegment(parsedURL.Path)

	case isYouTubeDomain(host) && parsedURL.Path == "/watch":
		id = parsedURL.Query().Get("v")

	case isYouTubeDomain(host):
		for _, prefix := range []string{"/embed/", "/v/", "/shorts/", "/live/"} {
			if strings.HasPrefix(parsedURL.Path, prefix) {
				id = firstPathSegment(strings.TrimPrefix(parsedURL.Path, prefix))
				break
			}
		}
	}

	if !videoIDPattern.MatchString(id) {
		return "", errors.InvalidInput(op, nil, "Could not extract video ID from URL")
	}

	return id, nil
}

func isYouTubeDomain(host string) bool {
	switch host {
	case "youtube.com", "www.youtube.com", "m.youtube.com", "www.youtube-nocookie.com":
		return true
	}
	return false
}

func firstPathSegment(path string) string {
	path = strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(path, '/'); i >= 0 {
		return path[:i]
	}
	return path
}
