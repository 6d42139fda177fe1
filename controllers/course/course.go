package controllers

import (
	"tms/database"
	"tms/middleware"
	"tms/models/course"
	"tms/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetAllCourses lists the courses visible to the current user's
// category, with the user's completion state per course.
func GetAllCourses(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	category := utils.NormalizedUserCategory(user)

	db := database.Database.Db
	var courses []course.Course
	if err := db.Where("is_deleted = ?", false).Order("code").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	visible := make([]fiber.Map, 0, len(courses))
	for i := range courses {
		if !courses[i].VisibleTo(category) {
			continue
		}
		item := fiber.Map{
			"course":    courses[i],
			"completed": false,
		}
		var progress course.UserCourseProgress
		err := db.Where("user_id = ? AND course_code = ?", user.ID, courses[i].Code).First(&progress).Error
		if err == nil {
			item["completed"] = progress.Completed
			item["grade"] = progress.GradeLetter()
		} else if err != gorm.ErrRecordNotFound {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
		}
		visible = append(visible, item)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully.", visible)
}

// GetCourseModules returns the module list for one course in series
// order, with per-module state and the unlock chain: a module opens
// only when every earlier one is completed.
func GetCourseModules(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	courseCode := c.Params("code")

	db := database.Database.Db
	courseRec, err := course.FindCourseByCode(db, courseCode)
	if err == course.ErrCourseNotFound {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course!", nil)
	}
	if !courseRec.VisibleTo(utils.NormalizedUserCategory(user)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "This course is not available to you!", nil)
	}

	mods, err := course.CourseModules(db, courseRec.Code)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	ids := make([]uint, 0, len(mods))
	for _, m := range mods {
		ids = append(ids, m.ID)
	}
	states, err := course.ModuleStates(db, user.ID, ids)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	completedCount := 0
	unlocked := true
	items := make([]fiber.Map, 0, len(mods))
	for _, m := range mods {
		state, attempted := states[m.ID]
		completed := attempted && state.IsCompleted
		item := fiber.Map{
			"module":       m,
			"is_completed": completed,
			"is_unlocked":  unlocked,
			"has_quiz":     len(m.QuizJSON) > 0,
		}
		if attempted && state.Score != nil {
			item["score"] = *state.Score
			item["score_color"] = utils.ScoreColor(*state.Score)
			item["grade"] = state.GradeLetter()
		}
		if completed {
			completedCount++
		} else {
			// Everything after the first incomplete module stays locked.
			unlocked = false
		}
		items = append(items, item)
	}

	percent := 0.0
	if len(mods) > 0 {
		percent = float64(completedCount) / float64(len(mods)) * 100
	}

	eligibility, err := course.CheckEligibility(db, user.ID, courseRec.Code)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully.", fiber.Map{
		"course":           courseRec,
		"modules":          items,
		"completed":        completedCount,
		"total":            len(mods),
		"progress_percent": percent,
		"eligible":         eligibility.Eligible,
		"average_score":    eligibility.AverageScore,
	})
}

// GetModuleContent returns one module's learning content, with the
// YouTube ID extracted for the embedded player.
func GetModuleContent(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	moduleID := c.Locals("moduleID").(uint)

	db := database.Database.Db
	var mod course.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&mod).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	states, err := course.ModuleStates(db, user.ID, []uint{mod.ID})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	data := fiber.Map{
		"module":     mod,
		"youtube_id": utils.ExtractYouTubeID(mod.YoutubeURL),
		"has_quiz":   len(mod.QuizJSON) > 0,
	}
	if state, ok := states[mod.ID]; ok {
		data["is_completed"] = state.IsCompleted
		if state.Score != nil {
			data["score"] = *state.Score
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module fetched successfully.", data)
}
