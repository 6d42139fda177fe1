package trainerController

import (
	"tms/database"
	"tms/middleware"
	"tms/models"
	"tms/models/course"

	"github.com/gofiber/fiber/v2"
)

// CourseOverview shows a trainer the aggregate state of their assigned
// course: per-module completion counts across all trainees.
func CourseOverview(c *fiber.Ctx) error {
	trainer, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if trainer.CourseCode == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No course assigned to this trainer!", nil)
	}

	db := database.Database.Db
	mods, err := course.CourseModules(db, trainer.CourseCode)
	if err == course.ErrCourseNotFound {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Assigned course not found!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}

	items := make([]fiber.Map, 0, len(mods))
	for _, m := range mods {
		var completions int64
		if err := db.Model(&course.UserModule{}).
			Where("module_id = ? AND is_completed = ?", m.ID, true).
			Count(&completions).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
		var scored int64
		if err := db.Model(&course.UserModule{}).
			Where("module_id = ? AND score IS NOT NULL", m.ID).
			Count(&scored).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
		}
		item := fiber.Map{
			"module":      m,
			"completions": completions,
		}
		if scored > 0 {
			var avg float64
			if err := db.Model(&course.UserModule{}).
				Where("module_id = ? AND score IS NOT NULL", m.ID).
				Select("AVG(score)").Scan(&avg).Error; err != nil {
				return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
			}
			item["average_score"] = avg
		}
		items = append(items, item)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course overview fetched successfully.", fiber.Map{
		"course_code": trainer.CourseCode,
		"modules":     items,
	})
}

// TraineeList shows a trainer their course's trainees with completion
// state.
func TraineeList(c *fiber.Ctx) error {
	trainer, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	if trainer.CourseCode == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "No course assigned to this trainer!", nil)
	}

	db := database.Database.Db
	var progresses []course.UserCourseProgress
	if err := db.Where("course_code = ?", trainer.CourseCode).Find(&progresses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trainees!", nil)
	}

	userIDs := make([]uint, 0, len(progresses))
	for _, p := range progresses {
		userIDs = append(userIDs, p.UserID)
	}
	users := make(map[uint]models.User, len(userIDs))
	if len(userIDs) > 0 {
		var rows []models.User
		if err := db.Where("id IN ? AND is_deleted = ?", userIDs, false).Find(&rows).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trainees!", nil)
		}
		for _, u := range rows {
			users[u.ID] = u
		}
	}

	items := make([]fiber.Map, 0, len(progresses))
	for _, p := range progresses {
		u, ok := users[p.UserID]
		if !ok {
			continue
		}
		items = append(items, fiber.Map{
			"full_name":       u.FullName,
			"displayed_id":    u.DisplayedID(),
			"completed":       p.Completed,
			"completion_date": p.CompletionDate,
			"grade":           p.GradeLetter(),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trainees fetched successfully.", items)
}
