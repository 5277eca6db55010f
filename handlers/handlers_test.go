package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/nijaru/yt-forever/config"
	apperrors "github.com/nijaru/yt-forever/errors"
	"github.com/nijaru/yt-forever/llm"
	"github.com/nijaru/yt-forever/models"
	"github.com/nijaru/yt-forever/services/analysis"
	"github.com/nijaru/yt-forever/services/transcript"
	"github.com/nijaru/yt-forever/validation"
)

type fakeSource struct {
	segments []models.TranscriptSegment
	err      error
	calls    int
}

func (f *fakeSource) Fetch(ctx context.Context, videoID string) ([]models.TranscriptSegment, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.segments, nil
}

type fakeProvider struct {
	response string
	requests []llm.CompletionRequest
}

func (f *fakeProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	f.requests = append(f.requests, req)
	return f.response, nil
}

func newTestApp(source transcript.Source, provider llm.Provider) *fiber.App {
	cfg := &config.Config{
		Version: "test",
		Analysis: config.AnalysisConfig{
			DefaultMaxWords: 100,
			MaxWordsLimit:   500,
			DefaultMaxTags:  10,
			MaxTagsLimit:    50,
		},
	}

	validator := validation.NewValidator(cfg)
	transcriptService := transcript.NewService(source, validator)
	analysisService := analysis.NewService(transcriptService, provider, analysis.Config{
		DefaultMaxWords: cfg.Analysis.DefaultMaxWords,
		DefaultMaxTags:  cfg.Analysis.DefaultMaxTags,
	})

	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
		StrictRouting:         true,
		CaseSensitive:         true,
	})

	transcriptHandler := NewTranscriptHandler(transcriptService)
	analysisHandler := NewAnalysisHandler(analysisService, validator, cfg.Analysis)

	app.Get("/", Status(cfg.Version))
	app.Get("/transcript", transcriptHandler.Transcript)
	app.Get("/text", transcriptHandler.Text)
	app.Get("/summary", analysisHandler.Summary)
	app.Get("/tags", analysisHandler.Tags)
	app.Get("/topics", analysisHandler.Topics)

	return app
}

func helloWorldSource() *fakeSource {
	return &fakeSource{
		segments: []models.TranscriptSegment{
			{Start: 0.0, Text: "hello"},
			{Start: 2.5, Text: "world"},
		},
	}
}

func doRequest(t *testing.T, app *fiber.App, path string) (*http.Response, []byte) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}

	return resp, body
}

func TestStatusEndpoint(t *testing.T) {
	app := newTestApp(helloWorldSource(), &fakeProvider{})

	resp, body := doRequest(t, app, "/")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var payload map[string]string
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if payload["status"] == "" {
		t.Error("expected a status message")
	}
}

// End-to-end: /transcript returns the segments verbatim and /text returns
// their space-joined concatenation.
func TestTranscriptAndTextEndpoints(t *testing.T) {
	app := newTestApp(helloWorldSource(), &fakeProvider{})

	resp, body := doRequest(t, app, "/transcript?url=https://www.youtube.com/watch?v=abc123")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var tr models.TranscriptResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if tr.VideoID != "abc123" {
		t.Errorf("expected video_id abc123, got %q", tr.VideoID)
	}
	if len(tr.Transcript) != 2 {
		t.Fatalf("expected 2 segments, got %d", len(tr.Transcript))
	}
	if tr.Transcript[0].Start != 0.0 || tr.Transcript[0].Text != "hello" {
		t.Errorf("unexpected first segment: %+v", tr.Transcript[0])
	}
	if tr.Transcript[1].Start != 2.5 || tr.Transcript[1].Text != "world" {
		t.Errorf("unexpected second segment: %+v", tr.Transcript[1])
	}

	resp, body = doRequest(t, app, "/text?url=https://www.youtube.com/watch?v=abc123")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var tx models.TextResponse
	if err := json.Unmarshal(body, &tx); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if tx.Text != "hello world" {
		t.Errorf("expected 'hello world', got %q", tx.Text)
	}
}

func TestMissingURLParameter(t *testing.T) {
	source := helloWorldSource()
	app := newTestApp(source, &fakeProvider{})

	for _, path := range []string{"/transcript", "/text", "/summary", "/tags", "/topics"} {
		resp, _ := doRequest(t, app, path)
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", path, resp.StatusCode)
		}
	}

	if source.calls != 0 {
		t.Errorf("expected no fetch calls, got %d", source.calls)
	}
}

func TestNonYouTubeURLRejectedBeforeFetch(t *testing.T) {
	source := helloWorldSource()
	app := newTestApp(source, &fakeProvider{})

	resp, _ := doRequest(t, app, "/transcript?url=https://vimeo.com/123456")
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
	if source.calls != 0 {
		t.Errorf("expected no fetch calls, got %d", source.calls)
	}
}

// A video without captions returns a non-success status and never reaches
// the completion provider.
func TestNoCaptionsSkipsCompletion(t *testing.T) {
	source := &fakeSource{err: apperrors.NotAvailable("test", nil, "no captions")}
	provider := &fakeProvider{response: "should not be used"}
	app := newTestApp(source, provider)

	resp, body := doRequest(t, app, "/summary?url=https://youtu.be/abc123")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d: %s", resp.StatusCode, body)
	}
	if len(provider.requests) != 0 {
		t.Errorf("expected no completion requests, got %d", len(provider.requests))
	}

	var payload struct {
		Success bool   `json:"success"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if payload.Success {
		t.Error("expected success=false")
	}
	if payload.Error == "" {
		t.Error("expected an error message")
	}
}

func TestSummaryEndpoint(t *testing.T) {
	provider := &fakeProvider{response: "a short summary"}
	app := newTestApp(helloWorldSource(), provider)

	resp, body := doRequest(t, app, "/summary?url=https://youtu.be/abc123&max_words=50")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var sr models.SummaryResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if sr.Summary != "a short summary" {
		t.Errorf("unexpected summary: %q", sr.Summary)
	}

	if len(provider.requests) != 1 {
		t.Fatalf("expected 1 completion request, got %d", len(provider.requests))
	}
	if !strings.Contains(provider.requests[0].System, "maximum 50 words") {
		t.Errorf("expected word limit instruction, got %q", provider.requests[0].System)
	}
}

func TestSummaryParamValidation(t *testing.T) {
	app := newTestApp(helloWorldSource(), &fakeProvider{response: "summary"})

	tests := []struct {
		name string
		path string
	}{
		{name: "negative max_words", path: "/summary?url=https://youtu.be/abc123&max_words=-5"},
		{name: "max_words over limit", path: "/summary?url=https://youtu.be/abc123&max_words=10000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, _ := doRequest(t, app, tt.path)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("expected 400, got %d", resp.StatusCode)
			}
		})
	}
}

func TestTagsEndpoint(t *testing.T) {
	provider := &fakeProvider{response: "golang, testing, web"}
	app := newTestApp(helloWorldSource(), provider)

	resp, body := doRequest(t, app, "/tags?url=https://youtu.be/abc123&max_tags=2")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var tr models.TagsResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(tr.Tags) != 2 {
		t.Fatalf("expected tags capped at 2, got %v", tr.Tags)
	}
	if tr.Tags[0] != "golang" || tr.Tags[1] != "testing" {
		t.Errorf("unexpected tags: %v", tr.Tags)
	}
}

func TestTopicsEndpoint(t *testing.T) {
	provider := &fakeProvider{
		response: `[{"topic": "Greeting", "start_seconds": 0, "start_time": "00:00"}]`,
	}
	app := newTestApp(helloWorldSource(), provider)

	resp, body := doRequest(t, app, "/topics?url=https://youtu.be/abc123")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.StatusCode, body)
	}

	var tr models.TopicsResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(tr.Topics) != 1 {
		t.Fatalf("expected 1 topic, got %d", len(tr.Topics))
	}
	if tr.Topics[0].Title != "Greeting" || tr.Topics[0].StartTimestamp != "00:00" {
		t.Errorf("unexpected topic: %+v", tr.Topics[0])
	}
}
