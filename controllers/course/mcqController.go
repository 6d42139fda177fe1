package controllers

import (
	"encoding/json"

	"tms/database"
	"tms/middleware"
	"tms/models/course"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

func loadModuleQuiz(c *fiber.Ctx) (*course.Module, []course.QuizQuestion, error) {
	moduleID := c.Locals("moduleID").(uint)

	var mod course.Module
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", moduleID, false).First(&mod).Error; err != nil {
		return nil, nil, middleware.JsonResponse(c, fiber.StatusNotFound, false, "Module not found!", nil)
	}

	questions, _ := course.NormalizeQuiz(mod.QuizJSON)
	return &mod, questions, nil
}

// LoadQuiz returns the module's quiz with the answer key stripped.
func LoadQuiz(c *fiber.Ctx) error {
	mod, questions, err := loadModuleQuiz(c)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This module has no quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz fetched successfully.", fiber.Map{
		"module_id": mod.ID,
		"questions": course.PublicQuiz(questions),
		"total":     len(questions),
	})
}

// GetSavedAnswers returns the user's stored answer snapshot for a
// module, tolerant of legacy snapshot encodings.
func GetSavedAnswers(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	moduleID := c.Locals("moduleID").(uint)

	states, err := course.ModuleStates(database.Database.Db, userID, []uint{moduleID})
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch answers!", nil)
	}

	state, ok := states[moduleID]
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "No saved answers.", fiber.Map{
			"answers": []interface{}{},
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Saved answers fetched successfully.", fiber.Map{
		"answers":      course.ParseStoredAnswers(state.QuizAnswers),
		"is_completed": state.IsCompleted,
	})
}

// SaveAnswers stores a partial answer snapshot so the trainee can
// resume later. Does not score and does not complete the module.
func SaveAnswers(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}
	moduleID := c.Locals("moduleID").(uint)

	reqData := new(struct {
		Answers []interface{} `json:"answers"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	snapshot, err := json.Marshal(reqData.Answers)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid answers payload!", nil)
	}

	if _, err := course.SaveDraftAnswers(database.Database.Db, userID, moduleID, datatypes.JSON(snapshot)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save answers!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answers saved successfully.", fiber.Map{
		"saved": len(reqData.Answers),
	})
}

// SubmitQuiz scores a full submission and records the attempt. The
// stored score never goes down; a repeat of a completed module flagged
// as a reattempt moves the module's grade letter.
func SubmitQuiz(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	mod, questions, err := loadModuleQuiz(c)
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This module has no quiz to submit!", nil)
	}

	reqData := new(struct {
		Answers     []interface{} `json:"answers"`
		IsReattempt bool          `json:"is_reattempt"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	indices := course.AnswerIndices(reqData.Answers)
	score, correct, correctIndices := course.ScoreSubmission(questions, indices)

	snapshot, err := json.Marshal(reqData.Answers)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid answers payload!", nil)
	}

	result, err := course.UpsertAttempt(database.Database.Db, userID, mod.ID, score, datatypes.JSON(snapshot), reqData.IsReattempt)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record attempt!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted successfully.", fiber.Map{
		"score":           score,
		"score_kept":      result.ScoreKept,
		"score_lowered":   result.ScoreLowered,
		"correct":         correct,
		"total":           len(questions),
		"correct_indices": correctIndices,
		"grade":           result.Record.GradeLetter(),
		"reattempt":       result.Reattempt,
	})
}
