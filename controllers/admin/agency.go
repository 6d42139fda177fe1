package adminController

import (
	"log"
	"strings"

	"tms/config"
	"tms/database"
	"tms/middleware"
	"tms/models"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AgencyRequest is the admin agency create/update payload.
type AgencyRequest struct {
	AgencyName    string `json:"agency_name" validate:"required,min=3"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	RegOfCompany  string `json:"reg_of_company"`
	PIC           string `json:"pic"`
	Email         string `json:"email" validate:"omitempty,email"`
}

func ListAgencies(c *fiber.Ctx) error {
	var agencies []models.Agency
	if err := database.Database.Db.
		Where("is_deleted = ?", false).
		Order("agency_name").
		Find(&agencies).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch agencies!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Agencies fetched successfully.", agencies)
}

func CreateAgency(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAgency").(*AgencyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	agency := models.Agency{
		AgencyName:    strings.TrimSpace(reqData.AgencyName),
		ContactNumber: reqData.ContactNumber,
		Address:       reqData.Address,
		RegOfCompany:  reqData.RegOfCompany,
		PIC:           reqData.PIC,
		Email:         strings.ToLower(strings.TrimSpace(reqData.Email)),
	}

	if err := database.Database.Db.Create(&agency).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create agency!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Agency created successfully.", agency)
}

func UpdateAgency(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAgency").(*AgencyRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	agencyID := c.Locals("agencyID").(uint)

	db := database.Database.Db
	var agency models.Agency
	if err := db.Where("id = ? AND is_deleted = ?", agencyID, false).First(&agency).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Agency not found!", nil)
	}

	agency.AgencyName = strings.TrimSpace(reqData.AgencyName)
	agency.ContactNumber = reqData.ContactNumber
	agency.Address = reqData.Address
	agency.RegOfCompany = reqData.RegOfCompany
	agency.PIC = reqData.PIC
	agency.Email = strings.ToLower(strings.TrimSpace(reqData.Email))

	if err := db.Save(&agency).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update agency!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Agency updated successfully.", agency)
}

// AgencyAccountRequest creates the login account an agency uses to
// monitor its trainees.
type AgencyAccountRequest struct {
	FullName string `json:"full_name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

func CreateAgencyAccount(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedAgencyAccount").(*AgencyAccountRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}
	agencyID := c.Locals("agencyID").(uint)

	db := database.Database.Db
	var agency models.Agency
	if err := db.Where("id = ? AND is_deleted = ?", agencyID, false).First(&agency).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Agency not found!", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(reqData.Password), config.AppConfig.SaltRound)
	if err != nil {
		log.Printf("Error hashing password: %v", err)
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to process your request!", nil)
	}

	account := models.User{
		FullName: strings.TrimSpace(reqData.FullName),
		Email:    strings.ToLower(strings.TrimSpace(reqData.Email)),
		Password: string(hashedPassword),
		Role:     models.RoleAgency,
		AgencyID: &agency.ID,
	}

	if err := db.Create(&account).Error; err != nil {
		if err == gorm.ErrDuplicatedKey {
			return middleware.JsonResponse(c, fiber.StatusConflict, false, "Email is already registered!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create agency account!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Agency account created successfully.", account)
}
