package authorityController

import (
	"log"
	"strings"

	"tms/database"
	"tms/middleware"
	"tms/models"
	"tms/models/course"
	"tms/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// listLimit caps one certificate listing page.
const listLimit = 500

// ListCertificates is the authority review queue: certificates
// filtered by status with an optional name or ID search.
func ListCertificates(c *fiber.Ctx) error {
	db := database.Database.Db

	status := strings.ToLower(strings.TrimSpace(c.Query("status", course.CertStatusPending)))
	if status != course.CertStatusPending && status != course.CertStatusApproved && status != "all" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown status filter!", nil)
	}

	query := db.Model(&course.Certificate{})
	if status != "all" {
		query = query.Where("status = ?", status)
	}

	if search := strings.TrimSpace(c.Query("search")); search != "" {
		var userIDs []uint
		pattern := "%" + strings.ToLower(search) + "%"
		if err := db.Model(&models.User{}).
			Where("LOWER(full_name) LIKE ? OR LOWER(number_series) LIKE ?", pattern, pattern).
			Pluck("id", &userIDs).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to search!", nil)
		}
		if len(userIDs) == 0 {
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully.", []fiber.Map{})
		}
		query = query.Where("user_id IN ?", userIDs)
	}

	var certs []course.Certificate
	if err := query.Order("issue_date").Limit(listLimit).Find(&certs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	userIDs := make([]uint, 0, len(certs))
	for _, cert := range certs {
		userIDs = append(userIDs, cert.UserID)
	}
	users := make(map[uint]models.User, len(userIDs))
	if len(userIDs) > 0 {
		var rows []models.User
		if err := db.Where("id IN ?", userIDs).Find(&rows).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
		}
		for _, u := range rows {
			users[u.ID] = u
		}
	}

	items := make([]fiber.Map, 0, len(certs))
	for _, cert := range certs {
		u := users[cert.UserID]
		items = append(items, fiber.Map{
			"certificate":  cert,
			"full_name":    u.FullName,
			"displayed_id": u.DisplayedID(),
			"course_code":  cert.ModuleType,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates fetched successfully.", items)
}

// BulkApproveRequest selects the certificates to approve.
type BulkApproveRequest struct {
	CertificateIDs []uint `json:"certificate_ids"`
	UserID         uint   `json:"user_id"`
	AllPending     bool   `json:"all_pending"`
}

// BulkApprove approves a batch of pending certificates in one
// operation, then renders and emails each approved certificate in the
// background.
func BulkApprove(c *fiber.Ctx) error {
	approver, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, ok := c.Locals("validatedBulkApprove").(*BulkApproveRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	scope := course.ApprovalScope{
		IDs:        reqData.CertificateIDs,
		UserID:     reqData.UserID,
		AllPending: reqData.AllPending,
	}

	result, err := course.BulkApprove(database.Database.Db, approver.ID, scope)
	if err == course.ErrBatchTooLarge {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Batch exceeds the approval limit!", fiber.Map{
			"limit": course.BulkApproveLimit,
		})
	}
	if err == course.ErrEmptyScope {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Nothing selected for approval!", nil)
	}
	if err != nil {
		log.Printf("Bulk approval failed: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to approve certificates!", nil)
	}

	go finalizeApproved(result.ApprovedIDs)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Certificates approved successfully.", result)
}

// finalizeApproved renders each newly approved certificate and emails
// its owner. Runs detached; failures only log.
func finalizeApproved(certIDs []uint) {
	db := database.Database.Db
	for _, id := range certIDs {
		var cert course.Certificate
		if err := db.First(&cert, id).Error; err != nil {
			log.Printf("Approved certificate %d vanished: %v", id, err)
			continue
		}
		var user models.User
		if err := db.First(&user, cert.UserID).Error; err != nil {
			log.Printf("Owner of certificate %d vanished: %v", id, err)
			continue
		}
		courseName := cert.ModuleType
		if rec, err := course.FindCourseByCode(db, cert.ModuleType); err == nil {
			courseName = rec.Name
		}

		var grade string
		if progress, err := course.CourseProgressFor(db, cert.UserID, cert.ModuleType); err == nil {
			grade = progress.GradeLetter()
		}

		url := utils.RenderCertificate(utils.RenderRequest{
			Slug:       uuid.NewString(),
			UserName:   user.FullName,
			UserNumber: user.DisplayedID(),
			CourseName: courseName,
			Score:      cert.Score,
			Grade:      grade,
			Stars:      cert.StarRating,
			IssueDate:  cert.IssueDate.Format("2006-01-02"),
		})

		if err := db.Model(&cert).Update("certificate_url", url).Error; err != nil {
			log.Printf("Failed to store certificate URL for %d: %v", id, err)
			continue
		}
		if err := db.Model(&course.UserCourseProgress{}).
			Where("user_id = ? AND course_code = ?", cert.UserID, cert.ModuleType).
			Update("certificate_url", url).Error; err != nil {
			log.Printf("Failed to store progress URL for %d: %v", id, err)
		}

		utils.SendCertificateApprovedEmail(user.Email, user.FullName, courseName, url)
	}
}
