package adminController

import (
	"log"
	"strings"

	"tms/config"
	"tms/database"
	"tms/middleware"
	"tms/models"
	"tms/utils"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TrainerRequest is the admin create-trainer payload.
type TrainerRequest struct {
	FullName      string `json:"full_name" validate:"required,min=3"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=8"`
	CourseCode    string `json:"course_code" validate:"required"`
	ContactNumber string `json:"contact_number"`
}

// CreateTrainer registers a trainer account with a TR number series.
func CreateTrainer(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedTrainer").(*TrainerRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	if err := db.Where("LOWER(email) = LOWER(?)", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	series, err := database.AllocateNumberSeries(db, database.SeriesPrefixTrainer)
	if err != nil {
		log.Printf("Error allocating trainer number series: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create trainer!", nil)
	}

	trainer := models.User{
		NumberSeries:  series,
		FullName:      strings.TrimSpace(reqData.FullName),
		Email:         strings.ToLower(strings.TrimSpace(reqData.Email)),
		Password:      string(hashedPassword),
		Role:          models.RoleTrainer,
		CourseCode:    strings.ToUpper(strings.TrimSpace(reqData.CourseCode)),
		ContactNumber: reqData.ContactNumber,
	}

	if err := db.Create(&trainer).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}
		log.Printf("Error saving trainer to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create trainer!", nil)
	}

	utils.SendWelcomeEmail(trainer.Email, trainer.FullName, trainer.NumberSeries)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Trainer created successfully.", trainer)
}

// ListTrainers returns all trainer accounts.
func ListTrainers(c *fiber.Ctx) error {
	var trainers []models.User
	if err := database.Database.Db.
		Where("role = ? AND is_deleted = ?", models.RoleTrainer, false).
		Order("full_name").
		Find(&trainers).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch trainers!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Trainers fetched successfully.", trainers)
}
