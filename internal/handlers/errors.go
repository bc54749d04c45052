package handlers

import (
	"errors"

	"sgp/internal/repositories"
	"sgp/internal/services"
	"sgp/pkg/logutils"

	"github.com/gofiber/fiber/v2"
)

// statusFor maps service errors onto HTTP statuses.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrNotFound), errors.Is(err, repositories.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrInUse):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrReferenceNotFound):
		return fiber.StatusUnprocessableEntity
	default:
		return fiber.StatusInternalServerError
	}
}

// respondError writes the JSON error response for err. Internal errors are
// logged and their details withheld.
func respondError(c *fiber.Ctx, message string, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		logutils.Log.WithError(err).WithFields(logutils.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error(message)
		return c.Status(status).JSON(fiber.Map{"message": message})
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"error":   err.Error(),
	})
}
