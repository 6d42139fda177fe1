package courseRoutes

import (
	courseControllers "tms/controllers/course"
	"tms/middleware"
	"tms/models"
	courseValidators "tms/validators/course"

	"github.com/gofiber/fiber/v2"
)

func SetupCourseRoutes(app *fiber.App) {
	courseGroup := app.Group("/courses", middleware.JWTMiddleware, middleware.RequireRole(models.RoleUser))

	courseGroup.Get("/", courseControllers.GetAllCourses)
	courseGroup.Get("/:code", courseValidators.CourseCode(), courseControllers.GetCourseModules)
	courseGroup.Post("/:code/complete", courseValidators.CourseCode(), courseControllers.CompleteCourse)
	courseGroup.Post("/:code/reattempt", courseValidators.CourseCode(), courseControllers.ReattemptCourse)

	moduleGroup := app.Group("/modules", middleware.JWTMiddleware, middleware.RequireRole(models.RoleUser))

	moduleGroup.Get("/:moduleId", courseValidators.ModuleID(), courseControllers.GetModuleContent)
	moduleGroup.Get("/:moduleId/quiz", courseValidators.ModuleID(), courseControllers.LoadQuiz)
	moduleGroup.Get("/:moduleId/answers", courseValidators.ModuleID(), courseControllers.GetSavedAnswers)
	moduleGroup.Post("/:moduleId/answers", courseValidators.ModuleID(), courseControllers.SaveAnswers)
	moduleGroup.Post("/:moduleId/quiz/submit", courseValidators.ModuleID(), courseControllers.SubmitQuiz)

	app.Get("/my/certificates", middleware.JWTMiddleware, courseControllers.MyCertificates)
	app.Get("/certificates/:slug", courseControllers.VerifyCertificate)
}
