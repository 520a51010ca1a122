package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
)

// HeaderToken is the shared-secret header the wearable device sends with
// every webhook call.
const HeaderToken = "X-OMI-Token"

// TokenAuth validates the device's shared secret. An empty configured token
// disables auth (local development).
func TokenAuth(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if token == "" {
			return c.Next()
		}

		supplied := c.Get(HeaderToken)
		if subtle.ConstantTimeCompare([]byte(supplied), []byte(token)) != 1 {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid or missing device token"})
		}
		return c.Next()
	}
}
