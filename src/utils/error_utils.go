// error_utils.go
package utils

import (
	"fmt"

	"Backend-Retreat-Survey/src/models"

	"github.com/gofiber/fiber/v2"
)

func HandleError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(models.ErrorResponse{
		Status:  status,
		Message: message,
	})
}

// HandleValidationError answers 422 with the per-field messages.
func HandleValidationError(c *fiber.Ctx, message string, errs models.ValidationErrors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(models.ErrorResponse{
		Status:  fiber.StatusUnprocessableEntity,
		Message: message,
		Errors:  errs,
	})
}

// ParseBody decodes the request body into dst and checks its validate tags.
func ParseBody(c *fiber.Ctx, dst any) error {
	if err := c.BodyParser(dst); err != nil {
		return fmt.Errorf("Invalid input: %w", err)
	}
	if err := Validate.Struct(dst); err != nil {
		return fmt.Errorf("Invalid input: %w", err)
	}
	return nil
}
