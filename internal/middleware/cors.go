package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

// CORS returns a configured CORS middleware for the dashboard origins
func CORS(allowOrigins []string) fiber.Handler {
	return cors.New(cors.Config{
		AllowOrigins: allowOrigins,
		AllowHeaders: []string{
			"Origin",
			"Content-Type",
			"Accept",
			"X-Request-ID",
		},
		AllowMethods: []string{
			"GET",
			"POST",
			"OPTIONS",
		},
		ExposeHeaders: []string{
			"X-Request-ID",
			"Content-Disposition",
		},
	})
}
