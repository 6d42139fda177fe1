package agencyController

import (
	"tms/database"
	"tms/middleware"
	"tms/models"
	"tms/models/course"

	"github.com/gofiber/fiber/v2"
)

// TraineeProgress lists the agency's trainees with their course
// progress and certificate state.
func TraineeProgress(c *fiber.Ctx) error {
	account, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if account.AgencyID == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No agency linked to this account!", nil)
	}

	db := database.Database.Db
	var trainees []models.User
	if err := db.Where("agency_id = ? AND role = ? AND is_deleted = ?",
		*account.AgencyID, models.RoleUser, false).
		Order("full_name").
		Find(&trainees).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trainees!", nil)
	}

	items := make([]fiber.Map, 0, len(trainees))
	for i := range trainees {
		var progresses []course.UserCourseProgress
		if err := db.Where("user_id = ?", trainees[i].ID).Find(&progresses).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
		var certs []course.Certificate
		if err := db.Where("user_id = ?", trainees[i].ID).Find(&certs).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
		}

		courses := make([]fiber.Map, 0, len(progresses))
		for _, p := range progresses {
			courses = append(courses, fiber.Map{
				"course_code": p.CourseCode,
				"completed":   p.Completed,
				"grade":       p.GradeLetter(),
			})
		}
		certItems := make([]fiber.Map, 0, len(certs))
		for _, cert := range certs {
			certItems = append(certItems, fiber.Map{
				"course_code": cert.ModuleType,
				"status":      cert.Status,
				"star_rating": cert.StarRating,
			})
		}

		items = append(items, fiber.Map{
			"full_name":    trainees[i].FullName,
			"displayed_id": trainees[i].DisplayedID(),
			"category":     trainees[i].UserCategory,
			"courses":      courses,
			"certificates": certItems,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trainee progress fetched successfully.", items)
}
