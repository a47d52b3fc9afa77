package routes

import (
	"Backend-Retreat-Survey/src/controllers"

	"github.com/gofiber/fiber/v2"
)

func InitRoutes(app *fiber.App, survey *controllers.SurveyController) {
	SurveyRoutes(app, survey)

	app.Get("/healthz", controllers.Healthz)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString("API is running...")
	})
}
