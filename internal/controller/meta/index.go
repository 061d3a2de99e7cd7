package meta

import "github.com/gofiber/fiber/v2"

func RegisterIndex(app *fiber.App) {
	banner := func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"@link":   "https://github.com/midgard-statistics/backend",
			"message": "Welcome to Midgard Statistics API v1",
		})
	}
	app.Get("/", banner)
	app.Get("/api", banner)
}
