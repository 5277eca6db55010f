package analysis

import (
	"context"

	"github.com/nijaru/yt-forever/models"
)

type Service interface {
	// Summarize produces a summary of at most maxWords words.
	Summarize(ctx context.Context, rawURL string, maxWords int) (*models.SummaryResponse, error)

	// Tags produces up to maxTags content tags.
	Tags(ctx context.Context, rawURL string, maxTags int) (*models.TagsResponse, error)

	// Topics produces a topic/timestamp breakdown.
	Topics(ctx context.Context, rawURL string) (*models.TopicsResponse, error)
}

type Config struct {
	DefaultMaxWords int
	DefaultMaxTags  int
}
