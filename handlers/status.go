package handlers

import (
	"runtime"
	"time"

	"github.com/gofiber/fiber/v2"
)

// Status handles GET /
func Status(version string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "yt-forever API is running",
			"version": version,
		})
	}
}

// HealthCheck handles GET /health
func HealthCheck(startTime time.Time, version string, debug bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		status := fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"version":   version,
			"uptime":    time.Since(startTime).String(),
		}

		if debug {
			status["goroutines"] = runtime.NumGoroutine()
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			status["memory"] = fiber.Map{
				"allocated": m.Alloc,
				"total":     m.TotalAlloc,
				"system":    m.Sys,
				"gc_cycles": m.NumGC,
			}
		}

		return c.JSON(status)
	}
}
