package adminController

import (
	"tms/database"
	"tms/middleware"
	"tms/models"
	"tms/models/course"

	"github.com/gofiber/fiber/v2"
)

// certificateRow joins a certificate with its owner for list views.
type certificateRow struct {
	Certificate course.Certificate `json:"certificate"`
	User        fiber.Map          `json:"user"`
}

func certificateRows(certs []course.Certificate) ([]certificateRow, error) {
	db := database.Database.Db
	ids := make([]uint, 0, len(certs))
	for _, cert := range certs {
		ids = append(ids, cert.UserID)
	}

	users := make(map[uint]models.User, len(ids))
	if len(ids) > 0 {
		var rows []models.User
		if err := db.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return nil, err
		}
		for _, u := range rows {
			users[u.ID] = u
		}
	}

	out := make([]certificateRow, 0, len(certs))
	for _, cert := range certs {
		u := users[cert.UserID]
		out = append(out, certificateRow{
			Certificate: cert,
			User: fiber.Map{
				"id":            u.ID,
				"full_name":     u.FullName,
				"displayed_id":  u.DisplayedID(),
				"email":         u.Email,
				"user_category": u.UserCategory,
			},
		})
	}
	return out, nil
}

// PendingCertificates lists certificates awaiting authority approval.
func PendingCertificates(c *fiber.Ctx) error {
	var certs []course.Certificate
	if err := database.Database.Db.
		Where("status = ?", course.CertStatusPending).
		Order("issue_date").
		Find(&certs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	rows, err := certificateRows(certs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Pending certificates fetched successfully.", rows)
}

// IssuedCertificates lists approved certificates.
func IssuedCertificates(c *fiber.Ctx) error {
	var certs []course.Certificate
	if err := database.Database.Db.
		Where("status = ?", course.CertStatusApproved).
		Order("approved_at DESC").
		Find(&certs).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}

	rows, err := certificateRows(certs)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch certificates!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Issued certificates fetched successfully.", rows)
}

// RecalculateRatings rewrites every certificate's star rating from its
// stored score. Used after the banding changes.
func RecalculateRatings(c *fiber.Ctx) error {
	updated, err := course.RecalculateStarRatings(database.Database.Db)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to recalculate ratings!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Star ratings recalculated successfully.", fiber.Map{
		"updated": updated,
	})
}
