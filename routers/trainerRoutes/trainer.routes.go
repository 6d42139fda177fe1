package trainerRoutes

import (
	trainerControllers "tms/controllers/trainer"
	"tms/middleware"
	"tms/models"

	"github.com/gofiber/fiber/v2"
)

func SetupTrainerRoutes(app *fiber.App) {
	trainerGroup := app.Group("/trainer", middleware.JWTMiddleware, middleware.RequireRole(models.RoleTrainer))

	trainerGroup.Get("/overview", trainerControllers.CourseOverview)
	trainerGroup.Get("/trainees", trainerControllers.TraineeList)
}
