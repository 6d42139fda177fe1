package authorityRoutes

import (
	authorityControllers "tms/controllers/authority"
	"tms/middleware"
	"tms/models"
	authorityValidators "tms/validators/authority"

	"github.com/gofiber/fiber/v2"
)

func SetupAuthorityRoutes(app *fiber.App) {
	authorityGroup := app.Group("/authority", middleware.JWTMiddleware, middleware.RequireRole(models.RoleAuthority, models.RoleAdmin))

	authorityGroup.Get("/certificates", authorityControllers.ListCertificates)
	authorityGroup.Post("/certificates/approve", authorityValidators.BulkApprove(), authorityControllers.BulkApprove)
}
