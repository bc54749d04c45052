package middleware

import (
	"time"

	"sgp/pkg/logutils"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

// RequestLogger writes one structured log line per request.
func RequestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		entry := logutils.Log.WithFields(logutils.Fields{
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.IP(),
			"request_id": c.GetRespHeader(fiber.HeaderXRequestID),
		})

		level := logrus.InfoLevel
		switch {
		case status >= fiber.StatusInternalServerError:
			level = logrus.ErrorLevel
		case status >= fiber.StatusBadRequest:
			level = logrus.WarnLevel
		}
		entry.Log(level, "request handled")

		return err
	}
}
