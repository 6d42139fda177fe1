package controllers

import (
	"log"

	"tms/database"
	"tms/middleware"
	"tms/models/course"
	"tms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// CompleteCourse re-verifies eligibility server-side and files a
// pending certificate. Submitting again while one is pending or
// approved is a harmless no-op.
func CompleteCourse(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	courseCode := c.Params("code")

	db := database.Database.Db
	result, err := course.SubmitCompletion(db, user.ID, courseCode)
	if err == course.ErrCourseNotFound {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		log.Printf("Error submitting completion for user %d course %s: %v", user.ID, courseCode, err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to submit completion!", nil)
	}

	switch result.Outcome {
	case course.OutcomeNotEligible:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Course is not complete or the average score is below the pass mark!", fiber.Map{
			"outcome":       result.Outcome,
			"completed":     result.Eligibility.Completed,
			"total":         result.Eligibility.ModuleCount,
			"average_score": result.Eligibility.AverageScore,
		})
	case course.OutcomeAlreadyPending, course.OutcomeAlreadyApproved:
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Completion already submitted.", fiber.Map{
			"outcome":     result.Outcome,
			"certificate": result.Certificate,
		})
	}

	courseRec, ferr := course.FindCourseByCode(db, courseCode)
	courseName := courseCode
	if ferr == nil {
		courseName = courseRec.Name
	}
	utils.SendCertificateSubmittedEmail(user.Email, user.FullName, courseName)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Completion submitted for approval.", fiber.Map{
		"outcome":       result.Outcome,
		"certificate":   result.Certificate,
		"grade":         result.Grade,
		"average_score": result.Eligibility.AverageScore,
	})
}

// ReattemptCourse resets module completion for a full course retake.
// Scores and answers survive; the course grade letter moves down.
func ReattemptCourse(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	courseCode := c.Params("code")

	progress, err := course.ReattemptCourse(database.Database.Db, user.ID, courseCode)
	if err == course.ErrCourseNotFound {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reset course!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course reset for reattempt.", fiber.Map{
		"reattempt_count": progress.ReattemptCount,
		"grade":           progress.GradeLetter(),
	})
}

// MyCertificates lists the current user's certificates.
func MyCertificates(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var certs []course.Certificate
	if err := database.Database.Db.
		Where("user_id = ?", userID).
		Order("issue_date DESC").
		Find(&certs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully.", certs)
}

// VerifyCertificate resolves a public certificate slug. No auth: the
// link printed on the certificate must work for anyone.
func VerifyCertificate(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if _, err := uuid.Parse(slug); err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	var cert course.Certificate
	err := database.Database.Db.
		Where("certificate_url LIKE ? AND status = ?", "%"+slug+"%", course.CertStatusApproved).
		First(&cert).Error
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Certificate not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificate verified.", fiber.Map{
		"course":      cert.ModuleType,
		"score":       cert.Score,
		"star_rating": cert.StarRating,
		"issue_date":  cert.IssueDate,
		"approved_at": cert.ApprovedAt,
	})
}
