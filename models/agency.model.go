package models

import "gorm.io/gorm"

// Agency enrolls trainees and monitors their progress through an
// agency account (a User with RoleAgency).
type Agency struct {
	gorm.Model
	AgencyName    string `json:"agency_name" gorm:"not null"`
	ContactNumber string `json:"contact_number"`
	Address       string `json:"address"`
	RegOfCompany  string `json:"reg_of_company"`
	PIC           string `json:"pic"` // person in charge
	Email         string `json:"email"`
	IsDeleted     bool   `gorm:"default:false"`
}
