package authorityValidator

import (
	authorityController "tms/controllers/authority"
	"tms/middleware"
	"tms/models/course"

	"github.com/gofiber/fiber/v2"
)

// BulkApprove validates the approval payload shape: exactly one scope
// must be selected, and explicit batches have a hard cap.
func BulkApprove() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(authorityController.BulkApproveRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		scopes := 0
		if len(reqData.CertificateIDs) > 0 {
			scopes++
		}
		if reqData.UserID != 0 {
			scopes++
		}
		if reqData.AllPending {
			scopes++
		}
		if scopes == 0 {
			errors["scope"] = "Select certificate ids, a user, or all pending!"
		}
		if scopes > 1 {
			errors["scope"] = "Select only one approval scope!"
		}
		if len(reqData.CertificateIDs) > course.BulkApproveLimit {
			errors["certificate_ids"] = "Too many certificate ids in one batch!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedBulkApprove", reqData)
		return c.Next()
	}
}
