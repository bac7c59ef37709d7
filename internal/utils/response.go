package utils

import "github.com/gofiber/fiber/v3"

// ErrorResponse sends a bare {"error": message} body, the shape the dashboard client reads
func ErrorResponse(c fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"error": message,
	})
}
