package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/nijaru/yt-forever/errors"
	"github.com/nijaru/yt-forever/models"
	"github.com/nijaru/yt-forever/services/transcript"
)

type TranscriptHandler struct {
	service transcript.Service
}

func NewTranscriptHandler(service transcript.Service) *TranscriptHandler {
	return &TranscriptHandler{service: service}
}

// Transcript handles GET /transcript
func (h *TranscriptHandler) Transcript(c *fiber.Ctx) error {
	const op = "TranscriptHandler.Transcript"

	url := c.Query("url")
	if url == "" {
		return errors.InvalidInput(op, nil, "url parameter is required")
	}

	videoID, segments, err := h.service.Get(c.Context(), url)
	if err != nil {
		return err
	}

	return c.JSON(models.TranscriptResponse{VideoID: videoID, Transcript: segments})
}

// Text handles GET /text
func (h *TranscriptHandler) Text(c *fiber.Ctx) error {
	const op = "TranscriptHandler.Text"

	url := c.Query("url")
	if url == "" {
		return errors.InvalidInput(op, nil, "url parameter is required")
	}

	videoID, text, err := h.service.GetText(c.Context(), url)
	if err != nil {
		return err
	}

	return c.JSON(models.TextResponse{VideoID: videoID, Text: text})
}
