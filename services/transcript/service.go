package transcript

import (
	"context"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-forever/models"
	"github.com/nijaru/yt-forever/validation"
	"github.com/nijaru/yt-forever/youtube"
)

type service struct {
	source    Source
	validator *validation.Validator
	logger    *logrus.Logger
}

func NewService(source Source, validator *validation.Validator) Service {
	return &service{
		source:    source,
		validator: validator,
		logger:    logrus.StandardLogger(),
	}
}

func (s *service) Get(ctx context.Context, rawURL string) (string, []models.TranscriptSegment, error) {
	const op = "TranscriptService.Get"
	logger := s.logger.WithContext(ctx).WithField("url", rawURL)

	videoID, err := s.resolve(rawURL)
	if err != nil {
		logger.WithError(err).Warn("URL resolution failed")
		return "", nil, err
	}

	segments, err := s.source.Fetch(ctx, videoID)
	if err != nil {
		logger.WithError(err).WithField("video_id", videoID).Warn("Transcript fetch failed")
		return "", nil, err
	}

	return videoID, segments, nil
}

func (s *service) GetText(ctx context.Context, rawURL string) (string, string, error) {
	videoID, segments, err := s.Get(ctx, rawURL)
	if err != nil {
		return "", "", err
	}

	return videoID, JoinSegments(segments), nil
}

// resolve validates the URL and extracts the video ID. No network access.
func (s *service) resolve(rawURL string) (string, error) {
	if err := s.validator.ValidateURL(rawURL); err != nil {
		return "", err
	}
	return youtube.ExtractVideoID(rawURL)
}

// JoinSegments concatenates segment texts in order, space-separated.
func JoinSegments(segments []models.TranscriptSegment) string {
	texts := make([]string, 0, len(segments))
	for _, seg := range segments {
		texts = append(texts, seg.Text)
	}
	return strings.Join(texts, " ")
}
