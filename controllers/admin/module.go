package adminController

import (
	"encoding/json"
	"strings"

	"tms/database"
	"tms/middleware"
	"tms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// ModuleRequest is the admin module create/update payload.
type ModuleRequest struct {
	ModuleName   string `json:"module_name" validate:"required,min=3"`
	SeriesNumber string `json:"series_number"`
	Content      string `json:"content"`
	YoutubeURL   string `json:"youtube_url" validate:"omitempty,url"`
	SlideURL     string `json:"slide_url" validate:"omitempty,url"`
}

// ListModules returns a course's modules in series order with each
// module's quiz state.
func ListModules(c *fiber.Ctx) error {
	mods, err := course.CourseModules(database.Database.Db, c.Params("code"))
	if err == course.ErrCourseNotFound {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch modules!", nil)
	}

	items := make([]fiber.Map, 0, len(mods))
	for i := range mods {
		questions, format := course.NormalizeQuiz(mods[i].QuizJSON)
		items = append(items, fiber.Map{
			"module":      mods[i],
			"quiz_count":  len(questions),
			"quiz_format": format.String(),
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Modules fetched successfully.", items)
}

func CreateModule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedModule").(*ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db
	courseRec, err := course.FindCourseByCode(db, c.Params("code"))
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	mod := course.Module{
		ModuleName:   strings.TrimSpace(reqData.ModuleName),
		ModuleType:   courseRec.Code,
		SeriesNumber: strings.TrimSpace(reqData.SeriesNumber),
		Content:      reqData.Content,
		YoutubeURL:   reqData.YoutubeURL,
		SlideURL:     reqData.SlideURL,
		CourseID:     &courseRec.ID,
	}

	if err := db.Create(&mod).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Module created successfully.", mod)
}

func UpdateModule(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedModule").(*ModuleRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	moduleID := c.Locals("moduleID").(uint)

	db := database.Database.Db
	var mod course.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&mod).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	mod.ModuleName = strings.TrimSpace(reqData.ModuleName)
	mod.SeriesNumber = strings.TrimSpace(reqData.SeriesNumber)
	mod.Content = reqData.Content
	mod.YoutubeURL = reqData.YoutubeURL
	mod.SlideURL = reqData.SlideURL

	if err := db.Save(&mod).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module updated successfully.", mod)
}

func DeleteModule(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	db := database.Database.Db
	var mod course.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&mod).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	mod.IsDeleted = true
	if err := db.Save(&mod).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete module!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Module deleted successfully.", nil)
}

// SaveQuiz stores an authored quiz. Input in any accepted shape is
// normalized to the canonical form; a question with no marked answer
// gets its first answer marked, so every authored question is
// scoreable.
func SaveQuiz(c *fiber.Ctx) error {
	moduleID := c.Locals("moduleID").(uint)

	db := database.Database.Db
	var mod course.Module
	if err := db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&mod).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	body := c.Body()
	questions, format := course.NormalizeQuiz(body)
	if format == course.QuizInvalid || len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Quiz payload has no usable questions!", nil)
	}
	course.EnsureCorrectMarked(questions)

	canonical, err := json.Marshal(questions)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz!", nil)
	}

	mod.QuizJSON = datatypes.JSON(canonical)
	if err := db.Save(&mod).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz saved successfully.", fiber.Map{
		"questions":       len(questions),
		"accepted_format": format.String(),
	})
}
