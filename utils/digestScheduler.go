package utils

import (
	"log"

	"tms/config"
	"tms/database"
	"tms/models"
	"tms/models/course"

	"github.com/robfig/cron/v3"
)

// StartPendingDigestScheduler sets up the daily pending-approval
// digest for authority users.
func StartPendingDigestScheduler() *cron.Cron {
	log.Println("[DIGEST-SCHEDULER] Initializing pending approval digest...")

	c := cron.New()

	_, err := c.AddFunc(config.AppConfig.DigestCronSpec, func() {
		log.Println("[DIGEST-SCHEDULER] Running daily pending digest...")
		SendPendingDigest()
	})
	if err != nil {
		log.Printf("[DIGEST-SCHEDULER] Invalid cron spec %q: %v", config.AppConfig.DigestCronSpec, err)
		return c
	}

	c.Start()
	log.Printf("[DIGEST-SCHEDULER] Digest scheduler started with spec %q", config.AppConfig.DigestCronSpec)
	return c
}

// SendPendingDigest counts pending certificates and emails every
// active authority account.
func SendPendingDigest() {
	db := database.Database.Db

	var pending int64
	if err := db.Model(&course.Certificate{}).
		Where("status = ?", course.CertStatusPending).
		Count(&pending).Error; err != nil {
		log.Printf("[DIGEST-SCHEDULER] Error counting pending certificates: %v", err)
		return
	}
	if pending == 0 {
		log.Println("[DIGEST-SCHEDULER] Nothing pending, skipping digest.")
		return
	}

	var authorities []models.User
	if err := db.Where("role = ? AND is_deleted = ?", models.RoleAuthority, false).
		Find(&authorities).Error; err != nil {
		log.Printf("[DIGEST-SCHEDULER] Error fetching authority users: %v", err)
		return
	}

	emails := make([]string, 0, len(authorities))
	for _, u := range authorities {
		if u.Email != "" {
			emails = append(emails, u.Email)
		}
	}

	log.Printf("[DIGEST-SCHEDULER] %d pending certificates, notifying %d authority users", pending, len(emails))
	SendPendingDigestEmail(emails, int(pending))
}
