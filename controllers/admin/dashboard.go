package adminController

import (
	"time"

	"tms/database"
	"tms/middleware"
	"tms/models"
	"tms/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/jinzhu/now"
)

// DashboardStats returns the admin landing numbers: population totals
// plus this month's signups, completions and approvals.
func DashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	monthStart := now.BeginningOfMonth()
	monthEnd := now.EndOfMonth()

	stats := fiber.Map{}

	counts := []struct {
		key   string
		query func() (int64, error)
	}{
		{"total_trainees", func() (int64, error) {
			var n int64
			err := db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleUser, false).Count(&n).Error
			return n, err
		}},
		{"total_trainers", func() (int64, error) {
			var n int64
			err := db.Model(&models.User{}).Where("role = ? AND is_deleted = ?", models.RoleTrainer, false).Count(&n).Error
			return n, err
		}},
		{"total_agencies", func() (int64, error) {
			var n int64
			err := db.Model(&models.Agency{}).Where("is_deleted = ?", false).Count(&n).Error
			return n, err
		}},
		{"total_courses", func() (int64, error) {
			var n int64
			err := db.Model(&course.Course{}).Where("is_deleted = ?", false).Count(&n).Error
			return n, err
		}},
		{"pending_certificates", func() (int64, error) {
			var n int64
			err := db.Model(&course.Certificate{}).Where("status = ?", course.CertStatusPending).Count(&n).Error
			return n, err
		}},
		{"approved_certificates", func() (int64, error) {
			var n int64
			err := db.Model(&course.Certificate{}).Where("status = ?", course.CertStatusApproved).Count(&n).Error
			return n, err
		}},
		{"signups_this_month", func() (int64, error) {
			var n int64
			err := db.Model(&models.User{}).
				Where("role = ? AND created_at BETWEEN ? AND ?", models.RoleUser, monthStart, monthEnd).
				Count(&n).Error
			return n, err
		}},
		{"completions_this_month", func() (int64, error) {
			var n int64
			err := db.Model(&course.UserCourseProgress{}).
				Where("completed = ? AND completion_date BETWEEN ? AND ?", true, monthStart, monthEnd).
				Count(&n).Error
			return n, err
		}},
		{"approvals_this_month", func() (int64, error) {
			var n int64
			err := db.Model(&course.Certificate{}).
				Where("status = ? AND approved_at BETWEEN ? AND ?", course.CertStatusApproved, monthStart, monthEnd).
				Count(&n).Error
			return n, err
		}},
	}

	for _, item := range counts {
		n, err := item.query()
		if err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch dashboard stats!", nil)
		}
		stats[item.key] = n
	}

	stats["month"] = monthStart.Format("2006-01")
	stats["generated_at"] = time.Now()

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully.", stats)
}
