package transcript

import (
	"context"

	"github.com/nijaru/yt-forever/models"
)

// Source retrieves the ordered caption segments for a video ID. It is the
// narrow seam over the transcript collaborator so alternate sources can be
// substituted without touching the handlers.
type Source interface {
	Fetch(ctx context.Context, videoID string) ([]models.TranscriptSegment, error)
}

type Service interface {
	// Get resolves the URL and fetches the ordered transcript segments.
	Get(ctx context.Context, rawURL string) (string, []models.TranscriptSegment, error)

	// GetText resolves the URL and returns the transcript as one
	// space-joined string.
	GetText(ctx context.Context, rawURL string) (string, string, error)
}
