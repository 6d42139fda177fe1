package database

import (
	"log"
	"time"

	"tms/config"
	"tms/models"
	"tms/models/course"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// bootstrapLockKey is the advisory lock key all instances contend on.
// Fixed forever; changing it would let two versions bootstrap at once.
const bootstrapLockKey int64 = 874230117

// BootstrapRecord marks a finished schema bootstrap. Its presence is
// the explicit signal followers wait on.
type BootstrapRecord struct {
	gorm.Model
	CompletedAt time.Time `json:"completed_at"`
}

// BootstrapResult reports how this instance got a ready schema.
type BootstrapResult struct {
	Leader    bool // this instance ran the migrations
	Completed bool // a finished bootstrap was observed
}

// BootstrapSchema makes the schema ready exactly once across
// concurrently starting instances. On PostgreSQL one instance wins the
// advisory lock and migrates while the rest wait for the completion
// record; a waiter that times out logs a warning and proceeds, since
// the migrations themselves are idempotent. Other dialects (tests) run
// the initializer directly.
func BootstrapSchema(db *gorm.DB) (*BootstrapResult, error) {
	if db.Dialector.Name() != "postgres" {
		if err := initializeSchema(db); err != nil {
			return nil, err
		}
		return &BootstrapResult{Leader: true, Completed: true}, nil
	}

	var locked bool
	if err := db.Raw("SELECT pg_try_advisory_lock(?)", bootstrapLockKey).Scan(&locked).Error; err != nil {
		return nil, err
	}
	if locked {
		defer func() {
			if err := db.Exec("SELECT pg_advisory_unlock(?)", bootstrapLockKey).Error; err != nil {
				log.Printf("Failed to release bootstrap lock: %v", err)
			}
		}()
		if err := initializeSchema(db); err != nil {
			return nil, err
		}
		return &BootstrapResult{Leader: true, Completed: true}, nil
	}

	timeout := time.Duration(config.AppConfig.BootstrapTimeoutSec) * time.Second
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		done, err := bootstrapCompleted(db)
		if err == nil && done {
			return &BootstrapResult{Completed: true}, nil
		}
		time.Sleep(500 * time.Millisecond)
	}

	log.Printf("Warning: bootstrap not observed within %s, proceeding anyway.", timeout)
	if err := initializeSchema(db); err != nil {
		return nil, err
	}
	return &BootstrapResult{Leader: true}, nil
}

func bootstrapCompleted(db *gorm.DB) (bool, error) {
	if !db.Migrator().HasTable(&BootstrapRecord{}) {
		return false, nil
	}
	var n int64
	if err := db.Model(&BootstrapRecord{}).Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}

// initializeSchema runs migrations, seeds defaults and writes the
// completion record. Every step is safe to repeat.
func initializeSchema(db *gorm.DB) error {
	if err := runMigrations(db); err != nil {
		return err
	}
	if err := seedDefaults(db); err != nil {
		return err
	}
	done, err := bootstrapCompleted(db)
	if err != nil {
		return err
	}
	if !done {
		if err := db.Create(&BootstrapRecord{CompletedAt: time.Now()}).Error; err != nil {
			return err
		}
	}
	return nil
}

// runMigrations performs database migrations
func runMigrations(db *gorm.DB) error {
	log.Println("Running Migrations...")

	err := db.AutoMigrate(
		&models.User{},
		&models.Agency{},
		&course.Course{},
		&course.Module{},
		&course.UserModule{},
		&course.UserCourseProgress{},
		&course.Certificate{},
		&course.ApprovalAudit{},
		&SeriesCounter{},
		&BootstrapRecord{},
	)
	if err != nil {
		return err
	}

	log.Println("Migrations completed successfully.")
	return nil
}

// seedDefaults creates the stock courses and the initial admin account
// when they are missing.
func seedDefaults(db *gorm.DB) error {
	defaults := []course.Course{
		{Name: "Citizen Safety Training", Code: "CSG", AllowedCategory: course.AllowedCitizen},
		{Name: "Foreign Worker Training", Code: "TNG", AllowedCategory: course.AllowedForeigner},
	}
	for _, c := range defaults {
		var n int64
		if err := db.Model(&course.Course{}).Where("code = ?", c.Code).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			if err := db.Create(&c).Error; err != nil {
				return err
			}
		}
	}

	if config.AppConfig != nil && config.AppConfig.AdminPassword != "" {
		var n int64
		if err := db.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&n).Error; err != nil {
			return err
		}
		if n == 0 {
			hashed, err := bcrypt.GenerateFromPassword([]byte(config.AppConfig.AdminPassword), config.AppConfig.SaltRound)
			if err != nil {
				return err
			}
			admin := models.User{
				FullName: "Administrator",
				Email:    config.AppConfig.AdminEmail,
				Password: string(hashed),
				Role:     models.RoleAdmin,
			}
			if err := db.Create(&admin).Error; err != nil {
				return err
			}
			log.Printf("Seeded admin account %s", admin.Email)
		}
	}
	return nil
}
