package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-forever/errors"
)

// ErrorHandler maps service errors onto HTTP responses. AppError carries its
// own status code; anything else is an internal error.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	switch e := err.(type) {
	case *errors.AppError:
		code = e.Code
		message = e.Message
	case *fiber.Error:
		code = e.Code
		message = e.Message
	}

	logrus.WithFields(logrus.Fields{
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
		"path":       c.Path(),
		"method":     c.Method(),
		"status":     code,
		"error":      err,
	}).Error("Request error")

	return c.Status(code).JSON(fiber.Map{
		"success":    false,
		"error":      message,
		"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
	})
}
