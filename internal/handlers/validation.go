package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"sgp/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// newValidator returns a validator that reports JSON field names and knows
// the "enum" tag for status fields.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})
	if err := v.RegisterValidation("enum", func(fl validator.FieldLevel) bool {
		enum, ok := fl.Field().Interface().(models.Enum)
		return ok && enum.IsValid()
	}); err != nil {
		panic(err)
	}
	return v
}

// validationMessage renders one failed rule for API clients.
func validationMessage(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return "is required"
	case "max":
		return fmt.Sprintf("must have at most %s characters", e.Param())
	case "len":
		return fmt.Sprintf("must have exactly %s characters", e.Param())
	case "number":
		return "must contain only digits"
	case "email":
		return "must be a valid e-mail address"
	case "datetime":
		return "must be a date in the format YYYY-MM-DD"
	case "enum":
		if enum, ok := e.Value().(interface{ Values() []string }); ok {
			return fmt.Sprintf("must be one of %s", strings.Join(enum.Values(), ", "))
		}
		return "is not an accepted value"
	default:
		return fmt.Sprintf("failed on the '%s' tag", e.Tag())
	}
}

// bind parses the JSON body into req and validates it, writing the 400
// response itself when either step fails. ok is false when a response was
// written.
func bind(c *fiber.Ctx, validate *validator.Validate, req interface{}) (ok bool, err error) {
	if err := c.BodyParser(req); err != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := validate.Struct(req); err != nil {
		var validationErrors validator.ValidationErrors
		if !errors.As(err, &validationErrors) {
			return false, err
		}
		errorMessages := make(map[string]string, len(validationErrors))
		for _, e := range validationErrors {
			errorMessages[e.Field()] = validationMessage(e)
		}
		return false, c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"errors":  errorMessages,
		})
	}
	return true, nil
}
