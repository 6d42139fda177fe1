package adminValidator

import (
	"strconv"
	"strings"

	adminController "tms/controllers/admin"
	"tms/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

func fieldErrors(err error) map[string]string {
	errors := make(map[string]string)
	if verrs, ok := err.(validator.ValidationErrors); ok {
		for _, fe := range verrs {
			field := strings.ToLower(fe.Field())
			switch fe.Tag() {
			case "required":
				errors[field] = "This field is required!"
			case "email":
				errors[field] = "Invalid email!"
			case "min", "max":
				errors[field] = "Value length is out of range!"
			case "url":
				errors[field] = "Invalid URL!"
			case "oneof":
				errors[field] = "Value is not one of the allowed options!"
			default:
				errors[field] = "Invalid value!"
			}
		}
	}
	return errors
}

// CourseBody validates the course create/update payload.
func CourseBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(adminController.CourseRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

// ModuleBody validates the module create/update payload.
func ModuleBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(adminController.ModuleRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedModule", reqData)
		return c.Next()
	}
}

// TrainerBody validates the create-trainer payload.
func TrainerBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(adminController.TrainerRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedTrainer", reqData)
		return c.Next()
	}
}

// AgencyBody validates the agency create/update payload.
func AgencyBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(adminController.AgencyRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedAgency", reqData)
		return c.Next()
	}
}

// AgencyAccountBody validates the agency login account payload.
func AgencyAccountBody() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(adminController.AgencyAccountRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if err := validate.Struct(reqData); err != nil {
			return middleware.ValidationErrorResponse(c, fieldErrors(err))
		}
		c.Locals("validatedAgencyAccount", reqData)
		return c.Next()
	}
}

// AgencyID validates the :agencyId route param and stores it as uint.
func AgencyID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := c.Params("agencyId")
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil || id == 0 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid agency id!", nil)
		}
		c.Locals("agencyID", uint(id))
		return c.Next()
	}
}
