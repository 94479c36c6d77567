package auth

import "github.com/gofiber/fiber/v2"

// Config holds the API key guard settings.
type Config struct {
	// ApiKey is the expected key. Empty disables the guard (local development).
	ApiKey string
}

// Header is the request header carrying the API key.
const Header = "X-Api-Key"

// New returns a middleware rejecting requests without the configured key.
func New(cfg Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if cfg.ApiKey == "" {
			return c.Next()
		}
		if c.Get(Header) != cfg.ApiKey {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "invalid or missing api key",
			})
		}
		return c.Next()
	}
}
