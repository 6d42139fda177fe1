package authController

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

// SignupRequest is the validated signup payload.
type SignupRequest struct {
	FullName       string `json:"full_name" validate:"required,min=3"`
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,min=8"`
	UserCategory   string `json:"user_category" validate:"omitempty,oneof=citizen foreigner"`
	ICNumber       string `json:"ic_number"`
	PassportNumber string `json:"passport_number"`
	VisaNumber     string `json:"visa_number"`
	ContactNumber  string `json:"contact_number"`
	Workplace      string `json:"current_workplace"`
	AgencyID       *uint  `json:"agency_id"`
}

func Signup(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedSignup").(*SignupRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	db := database.Database.Db

	// Check if email already exists
	if err := db.Where("LOWER(email) = LOWER(?)", reqData.Email).First(&models.User{}).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
	}

	// Hash Password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	newUser := models.User{
		FullName:         strings.TrimSpace(reqData.FullName),
		Email:            strings.ToLower(strings.TrimSpace(reqData.Email)),
		Password:         string(hashedPassword),
		Role:             models.RoleUser,
		UserCategory:     reqData.UserCategory,
		ICNumber:         reqData.ICNumber,
		PassportNumber:   reqData.PassportNumber,
		VisaNumber:       reqData.VisaNumber,
		ContactNumber:    reqData.ContactNumber,
		CurrentWorkplace: reqData.Workplace,
		AgencyID:         reqData.AgencyID,
	}
	newUser.UserCategory = utils.NormalizedUserCategory(&newUser)

	series, err := database.AllocateNumberSeries(db, database.SeriesPrefixUser)
	if err != nil {
		log.Printf("Error allocating number series: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}
	newUser.NumberSeries = series

	if err := db.Create(&newUser).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}
		log.Printf("Error saving user to database: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to Signup user!", nil)
	}

	utils.SendWelcomeEmail(newUser.Email, newUser.FullName, newUser.NumberSeries)

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "User registered successfully.", newUser)
}

func Login(c *fiber.Ctx) error {
	reqData := new(struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	})

	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Failed to parse request body!", nil)
	}

	var user models.User
	result := database.Database.Db.
		Where("LOWER(email) = LOWER(?) AND is_deleted = ?", reqData.Email, false).
		First(&user)
	if result.Error != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Validate password
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid credentials!", nil)
	}

	// Generate JWT token
	token, err := middleware.GenerateJWT(user.ID, user.FullName, user.Role, user.Email)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to generate token", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Login successful.", fiber.Map{
		"user":  user,
		"token": token,
		"home":  middleware.RoleHome(user.Role),
	})
}

// Profile returns the authenticated user's own record.
func Profile(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Profile fetched successfully.", fiber.Map{
		"user":         user,
		"displayed_id": user.DisplayedID(),
		"category":     utils.NormalizedUserCategory(user),
	})
}
