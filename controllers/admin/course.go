package adminController

import (
	"strings"

	"tms/database"
	"tms/middleware"
	"tms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CourseRequest is the admin course create/update payload.
type CourseRequest struct {
	Name            string `json:"name" validate:"required,min=3"`
	Code            string `json:"code" validate:"required,min=2,max=50"`
	Description     string `json:"description"`
	AllowedCategory string `json:"allowed_category" validate:"omitempty,oneof=citizen foreigner both"`
}

// ListCourses returns every course including category gating, for the
// admin panel.
func ListCourses(c *fiber.Ctx) error {
	var courses []course.Course
	if err := database.Database.Db.Where("is_deleted = ?", false).Order("code").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", courses)
}

func CreateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	newCourse := course.Course{
		Name:            strings.TrimSpace(reqData.Name),
		Code:            strings.ToUpper(strings.TrimSpace(reqData.Code)),
		Description:     reqData.Description,
		AllowedCategory: reqData.AllowedCategory,
	}
	if newCourse.AllowedCategory == "" {
		newCourse.AllowedCategory = course.AllowedBoth
	}

	if err := database.Database.Db.Create(&newCourse).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course code already exists!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Course created successfully.", newCourse)
}

func UpdateCourse(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedCourse").(*CourseRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db
	existing, err := course.FindCourseByCode(db, c.Params("code"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	existing.Name = strings.TrimSpace(reqData.Name)
	existing.Description = reqData.Description
	if reqData.AllowedCategory != "" {
		existing.AllowedCategory = reqData.AllowedCategory
	}

	if err := db.Save(existing).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course updated successfully.", existing)
}

// DeleteCourse soft-deletes a course. Modules and issued certificates
// stay untouched.
func DeleteCourse(c *fiber.Ctx) error {
	db := database.Database.Db
	existing, err := course.FindCourseByCode(db, c.Params("code"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	existing.IsDeleted = true
	if err := db.Save(existing).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course deleted successfully.", nil)
}
