package routes

import (
	"Backend-Retreat-Survey/src/controllers"
	"Backend-Retreat-Survey/src/middleware"

	"github.com/gofiber/fiber/v2"
)

// SurveyRoutes registers the respondent-facing survey API.
func SurveyRoutes(app *fiber.App, sc *controllers.SurveyController) {
	surveyRoutes := app.Group("/api/survey")
	surveyRoutes.Get("/definition", sc.GetDefinition)
	surveyRoutes.Post("/sessions", sc.CreateSession)

	sessions := surveyRoutes.Group("/sessions/:id", middleware.RequireSessionID)
	sessions.Get("/", sc.GetSession)
	sessions.Put("/answers/:questionId", sc.SetAnswer)
	sessions.Post("/answers/:questionId/options/:optionId", sc.SetOption)
	sessions.Put("/answers/:questionId/options/:optionId/specify", sc.SetSpecify)
	sessions.Post("/next", sc.Next)
	sessions.Post("/previous", sc.Previous)
	sessions.Post("/reset", sc.Reset)
	sessions.Post("/submit", sc.Submit)
}
