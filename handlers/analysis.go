package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nijaru/yt-forever/config"
	"github.com/nijaru/yt-forever/errors"
	"github.com/nijaru/yt-forever/services/analysis"
	"github.com/nijaru/yt-forever/validation"
)

type AnalysisHandler struct {
	service   analysis.Service
	validator *validation.Validator
	config    config.AnalysisConfig
}

type summaryParams struct {
	URL      string `validate:"required"`
	MaxWords int    `validate:"gte=0"`
}

type tagsParams struct {
	URL     string `validate:"required"`
	MaxTags int    `validate:"gte=0"`
}

func NewAnalysisHandler(service analysis.Service, validator *validation.Validator, cfg config.AnalysisConfig) *AnalysisHandler {
	return &AnalysisHandler{
		service:   service,
		validator: validator,
		config:    cfg,
	}
}

// Summary handles GET /summary
func (h *AnalysisHandler) Summary(c *fiber.Ctx) error {
	const op = "AnalysisHandler.Summary"

	params := summaryParams{
		URL:      c.Query("url"),
		MaxWords: c.QueryInt("max_words", 0),
	}
	if err := h.validator.ValidateParams(params); err != nil {
		return err
	}
	if h.config.MaxWordsLimit > 0 && params.MaxWords > h.config.MaxWordsLimit {
		return errors.InvalidInput(op, nil, "max_words exceeds the allowed limit")
	}

	result, err := h.service.Summarize(c.Context(), params.URL, params.MaxWords)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// Tags handles GET /tags
func (h *AnalysisHandler) Tags(c *fiber.Ctx) error {
	const op = "AnalysisHandler.Tags"

	params := tagsParams{
		URL:     c.Query("url"),
		MaxTags: c.QueryInt("max_tags", 0),
	}
	if err := h.validator.ValidateParams(params); err != nil {
		return err
	}
	if h.config.MaxTagsLimit > 0 && params.MaxTags > h.config.MaxTagsLimit {
		return errors.InvalidInput(op, nil, "max_tags exceeds the allowed limit")
	}

	result, err := h.service.Tags(c.Context(), params.URL, params.MaxTags)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// Topics handles GET /topics
func (h *AnalysisHandler) Topics(c *fiber.Ctx) error {
	const op = "AnalysisHandler.Topics"

	url := c.Query("url")
	if url == "" {
		return errors.InvalidInput(op, nil, "url parameter is required")
	}

	result, err := h.service.Topics(c.Context(), url)
	if err != nil {
		return err
	}

	return c.JSON(result)
}
