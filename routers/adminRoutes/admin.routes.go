package adminRoutes

import (
	adminControllers "tms/controllers/admin"
	"tms/middleware"
	"tms/models"
	adminValidators "tms/validators/admin"
	courseValidators "tms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupAdminRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAdmin))

	adminGroup.Get("/dashboard", adminControllers.DashboardStats)

	adminGroup.Get("/courses", adminControllers.ListCourses)
	adminGroup.Post("/courses", adminValidators.CourseBody(), adminControllers.CreateCourse)
	adminGroup.Put("/courses/:code", courseValidators.CourseCode(), adminValidators.CourseBody(), adminControllers.UpdateCourse)
	adminGroup.Delete("/courses/:code", courseValidators.CourseCode(), adminControllers.DeleteCourse)

	adminGroup.Get("/courses/:code/modules", courseValidators.CourseCode(), adminControllers.ListModules)
	adminGroup.Post("/courses/:code/modules", courseValidators.CourseCode(), adminValidators.ModuleBody(), adminControllers.CreateModule)
	adminGroup.Put("/modules/:moduleId", courseValidators.ModuleID(), adminValidators.ModuleBody(), adminControllers.UpdateModule)
	adminGroup.Delete("/modules/:moduleId", courseValidators.ModuleID(), adminControllers.DeleteModule)
	adminGroup.Put("/modules/:moduleId/quiz", courseValidators.ModuleID(), adminControllers.SaveQuiz)

	adminGroup.Get("/certificates/pending", adminControllers.PendingCertificates)
	adminGroup.Get("/certificates/issued", adminControllers.IssuedCertificates)
	adminGroup.Post("/certificates/recalculate-ratings", adminControllers.RecalculateRatings)

	adminGroup.Get("/trainers", adminControllers.ListTrainers)
	adminGroup.Post("/trainers", adminValidators.TrainerBody(), adminControllers.CreateTrainer)

	adminGroup.Get("/agencies", adminControllers.ListAgencies)
	adminGroup.Post("/agencies", adminValidators.AgencyBody(), adminControllers.CreateAgency)
	adminGroup.Put("/agencies/:agencyId", adminValidators.AgencyID(), adminValidators.AgencyBody(), adminControllers.UpdateAgency)
	adminGroup.Post("/agencies/:agencyId/account", adminValidators.AgencyID(), adminValidators.AgencyAccountBody(), adminControllers.CreateAgencyAccount)
}
