package youtube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"github.com/nijaru/yt-forever/errors"
	"github.com/nijaru/yt-forever/models"
)

const defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/118.0.0.0 Safari/537.36"

var playerResponsePattern = regexp.MustCompile(`ytInitialPlayerResponse\s*=\s*(\{.+?\});`)

type Config struct {
	// BaseURL is the YouTube origin; overridable for tests.
	BaseURL           string
	HTTPTimeout       time.Duration
	ProxyURL          string
	PreferredLanguage string
	RequestsPerSecond float64
	RequestBurst      int
}

// Client fetches caption transcripts straight from YouTube's player data.
type Client struct {
	http    *http.Client
	limiter *rate.Limiter
	config  Config
	logger  *logrus.Logger
}

func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://www.youtube.com"
	}
	if cfg.HTTPTimeout <= 0 {
		cfg.HTTPTimeout = 15 * time.Second
	}
	if cfg.PreferredLanguage == "" {
		cfg.PreferredLanguage = "en"
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = 5
	}
	if cfg.RequestBurst <= 0 {
		cfg.RequestBurst = 5
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if cfg.ProxyURL != "" {
		proxyURL, err := url.Parse(cfg.ProxyURL)
		if err != nil {
			return nil, pkgerrors.Wrap(err, "invalid proxy URL")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &Client{
		http: &http.Client{
			Timeout:   cfg.HTTPTimeout,
			Transport: transport,
		},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.RequestBurst),
		config:  cfg,
		logger:  logrus.StandardLogger(),
	}, nil
}

// playerResponse is the slice of ytInitialPlayerResponse we care about.
type playerResponse struct {
	Captions struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
}

// timedText is the json3 caption payload.
type timedText struct {
	Events []struct {
		TStartMs    int64 `json:"tStartMs"`
		DDurationMs int64 `json:"dDurationMs"`
		Segs        []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

// Fetch returns the ordered caption segments for a video, a NotAvailable
// error when the video has no captions, or an Upstream error on any
// network or parse failure. One attempt per call, no retries.
func (c *Client) Fetch(ctx context.Context, videoID string) ([]models.TranscriptSegment, error) {
	const op = "youtube.Client.Fetch"
	logger := c.logger.WithContext(ctx).WithField("video_id", videoID)

	track, err := c.findCaptionTrack(ctx, videoID)
	if err != nil {
		return nil, err
	}

	segments, err := c.downloadTrack(ctx, track)
	if err != nil {
		return nil, err
	}

	if len(segments) == 0 {
		return nil, errors.Upstream(op, nil, "Failed to parse the transcript data")
	}

	logger.WithField("segments", len(segments)).Debug("Fetched transcript")
	return segments, nil
}

func (c *Client) findCaptionTrack(ctx context.Context, videoID string) (*captionTrack, error) {
	const op = "youtube.Client.findCaptionTrack"

	body, err := c.get(ctx, c.config.BaseURL+"/watch?v="+url.QueryEscape(videoID))
	if err != nil {
		return nil, errors.Upstream(op, err, "Failed to fetch video page")
	}

	match := playerResponsePattern.FindSubmatch(body)
	if match == nil {
		return nil, errors.Upstream(op, nil, "Could not extract player data from YouTube")
	}

	var pr playerResponse
	if err := json.Unmarshal(match[1], &pr); err != nil {
		return nil, errors.Upstream(op, pkgerrors.Wrap(err, "parsing player response"), "Failed to parse YouTube response")
	}

	tracks := pr.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.NotAvailable(op, nil, "This video does not have captions available")
	}

	// Prefer the configured language, otherwise take the first track.
	track := tracks[0]
	for _, t := range tracks {
		if t.LanguageCode == c.config.PreferredLanguage {
			track = t
			break
		}
	}

	return &track, nil
}

func (c *Client) downloadTrack(ctx context.Context, track *captionTrack) ([]models.TranscriptSegment, error) {
	const op = "youtube.Client.downloadTrack"

	captionURL := track.BaseURL
	if strings.HasPrefix(captionURL, "/") {
		captionURL = c.config.BaseURL + captionURL
	}
	if strings.Contains(captionURL, "?") {
		captionURL += "&fmt=json3"
	} else {
		captionURL += "?fmt=json3"
	}

	body, err := c.get(ctx, captionURL)
	if err != nil {
		return nil, errors.Upstream(op, err, "Failed to fetch transcript data")
	}

	var tt timedText
	if err := json.Unmarshal(body, &tt); err != nil {
		return nil, errors.Upstream(op, pkgerrors.Wrap(err, "parsing timedtext"), "Failed to parse the transcript data")
	}

	segments := make([]models.TranscriptSegment, 0, len(tt.Events))
	for _, event := range tt.Events {
		var sb strings.Builder
		for _, seg := range event.Segs {
			sb.WriteString(seg.UTF8)
		}

		text := strings.TrimSpace(strings.ReplaceAll(sb.String(), "\n", " "))
		if text == "" {
			continue
		}

		segments = append(segments, models.TranscriptSegment{
			Start:    float64(event.TStartMs) / 1000.0,
			Duration: float64(event.DDurationMs) / 1000.0,
			Text:     text,
		})
	}

	return segments, nil
}

func (c *Client) get(ctx context.Context, rawURL string) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, pkgerrors.Wrap(err, "waiting for rate limiter")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "building request")
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "performing request")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, pkgerrors.Errorf("unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "reading response body")
	}

	return body, nil
}
