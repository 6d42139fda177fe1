package agencyRoutes

import (
	agencyControllers "tms/controllers/agency"
	"tms/middleware"
	"tms/models"

	"github.com/gofiber/fiber/v2"
)

func SetupAgencyRoutes(app *fiber.App) {
	agencyGroup := app.Group("/agency", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAgency))

	agencyGroup.Get("/trainees", agencyControllers.TraineeProgress)
}
