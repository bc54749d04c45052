package handlers

import (
	"fmt"

	"sgp/internal/models"
	"sgp/internal/repositories"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// idParam reads a positive numeric path parameter.
func idParam(c *fiber.Ctx, name string) (uint, error) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer", name)
	}
	return uint(id), nil
}

// uintQuery reads an optional positive numeric query parameter; absent
// parameters yield zero.
func uintQuery(c *fiber.Ctx, name string) (uint, error) {
	if c.Query(name) == "" {
		return 0, nil
	}
	v := c.QueryInt(name, -1)
	if v <= 0 {
		return 0, fmt.Errorf("query parameter %s must be a positive integer", name)
	}
	return uint(v), nil
}

func listOptions(c *fiber.Ctx) repositories.ListOptions {
	return repositories.ListOptions{
		Page:     c.QueryInt("page", 1),
		PageSize: c.QueryInt("pageSize", repositories.DefaultPageSize),
		SortBy:   c.Query("sortBy"),
		Order:    c.Query("order"),
	}
}

func badRequest(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid request",
		"error":   err.Error(),
	})
}

// parseDates parses a required and an optional YYYY-MM-DD value.
func parseDates(required, optional string) (datatypes.Date, *datatypes.Date, error) {
	first, err := models.ParseDate(required)
	if err != nil {
		return datatypes.Date{}, nil, err
	}
	second, err := models.ParseOptionalDate(optional)
	if err != nil {
		return datatypes.Date{}, nil, err
	}
	return first, second, nil
}
