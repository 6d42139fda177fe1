package middleware

import (
	"tms/database"
	"tms/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// roleHomes maps each role to its landing destination after login.
// Unknown roles fall back to the trainee dashboard.
var roleHomes = map[string]string{
	models.RoleUser:      "/dashboard",
	models.RoleTrainer:   "/trainer/dashboard",
	models.RoleAdmin:     "/admin/dashboard",
	models.RoleAuthority: "/authority/certificates",
	models.RoleAgency:    "/agency/dashboard",
}

// RoleHome returns the post-login destination for a role.
func RoleHome(role string) string {
	if home, ok := roleHomes[role]; ok {
		return home
	}
	return roleHomes[models.RoleUser]
}

// RequireRole returns a middleware that loads the authenticated user
// and rejects anyone whose role is not in the allowed set. The role is
// checked against the database, not the token, so a demoted account
// loses access as soon as its row changes.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("userId").(uint)
		if !ok {
			return JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized: User ID not found", nil)
		}

		var user models.User
		err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
			}
			return JsonResponse(c, fiber.StatusInternalServerError, false, "Server error while checking role!", nil)
		}

		if _, ok := allowed[user.Role]; !ok {
			return JsonResponse(c, fiber.StatusForbidden, false, "You do not have permission to access this resource!", nil)
		}

		c.Locals("user", &user)
		return c.Next()
	}
}

// CurrentUser fetches the user loaded by RequireRole, falling back to
// a database load when only JWTMiddleware ran.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	if u, ok := c.Locals("user").(*models.User); ok {
		return u, nil
	}
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	var user models.User
	err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}
