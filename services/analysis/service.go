package analysis

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-forever/errors"
	"github.com/nijaru/yt-forever/llm"
	"github.com/nijaru/yt-forever/models"
	"github.com/nijaru/yt-forever/services/transcript"
)

type service struct {
	transcripts transcript.Service
	provider    llm.Provider
	config      Config
	logger      *logrus.Logger
}

func NewService(transcripts transcript.Service, provider llm.Provider, config Config) Service {
	if config.DefaultMaxWords <= 0 {
		config.DefaultMaxWords = 100
	}
	if config.DefaultMaxTags <= 0 {
		config.DefaultMaxTags = 10
	}

	return &service{
		transcripts: transcripts,
		provider:    provider,
		config:      config,
		logger:      logrus.StandardLogger(),
	}
}

func (s *service) Summarize(ctx context.Context, rawURL string, maxWords int) (*models.SummaryResponse, error) {
	logger := s.logger.WithContext(ctx).WithField("url", rawURL)

	if maxWords <= 0 {
		maxWords = s.config.DefaultMaxWords
	}

	videoID, text, err := s.transcripts.GetText(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	summary, err := s.provider.Complete(ctx, llm.CompletionRequest{
		System: summaryPrompt(maxWords),
		User:   text,
	})
	if err != nil {
		logger.WithError(err).Error("Summary completion failed")
		return nil, err
	}

	return &models.SummaryResponse{VideoID: videoID, Summary: summary}, nil
}

func (s *service) Tags(ctx context.Context, rawURL string, maxTags int) (*models.TagsResponse, error) {
	logger := s.logger.WithContext(ctx).WithField("url", rawURL)

	if maxTags <= 0 {
		maxTags = s.config.DefaultMaxTags
	}

	videoID, text, err := s.transcripts.GetText(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	out, err := s.provider.Complete(ctx, llm.CompletionRequest{
		System: tagsPrompt(maxTags),
		User:   text,
	})
	if err != nil {
		logger.WithError(err).Error("Tags completion failed")
		return nil, err
	}

	return &models.TagsResponse{VideoID: videoID, Tags: parseTags(out, maxTags)}, nil
}

func (s *service) Topics(ctx context.Context, rawURL string) (*models.TopicsResponse, error) {
	const op = "AnalysisService.Topics"
	logger := s.logger.WithContext(ctx).WithField("url", rawURL)

	videoID, segments, err := s.transcripts.Get(ctx, rawURL)
	if err != nil {
		return nil, err
	}

	formatted := formatTimedTranscript(segments)

	out, err := s.provider.Complete(ctx, llm.CompletionRequest{
		System: topicsPrompt(),
		User:   formatted,
	})
	if err != nil {
		logger.WithError(err).Error("Topics completion failed")
		return nil, err
	}

	topics, parseErr := parseTopics(out)
	if parseErr != nil {
		// One reissue with a stricter JSON-only instruction before giving up.
		logger.WithError(parseErr).Warn("Topics output did not parse, retrying with strict prompt")

		out, err = s.provider.Complete(ctx, llm.CompletionRequest{
			System: topicsStrictPrompt(),
			User:   topicsStrictUserPrefix() + formatted,
		})
		if err != nil {
			return nil, err
		}

		topics, parseErr = parseTopics(out)
		if parseErr != nil {
			return nil, errors.Upstream(op, parseErr, "Could not parse topics from model output")
		}
	}

	return &models.TopicsResponse{VideoID: videoID, Topics: topics}, nil
}
