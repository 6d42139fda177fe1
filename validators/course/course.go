package courseValidator

import (
	"strconv"
	"strings"

	"tms/middleware"

	"github.com/gofiber/fiber/v2"
)

// ModuleID validates the :moduleId route param and stores it as uint.
func ModuleID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("moduleId")
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid module id!", nil)
		}
		c.Locals("moduleID", uint(id))
		return c.Next()
	}
}

// CourseCode validates the :code route param.
func CourseCode() fiber.Handler {
	return func(c *fiber.Ctx) error {
		code := strings.TrimSpace(c.Params("code"))
		if code == "" || len(code) > 50 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid course code!", nil)
		}
		return c.Next()
	}
}
