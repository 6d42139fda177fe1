package models

import (
	"strconv"
	"time"

	"gorm.io/gorm"
)

// Account roles. Every principal (trainee, trainer, authority, agency
// account, admin) is a User row carrying one of these tags.
const (
	RoleUser      = "USER"
	RoleTrainer   = "TRAINER"
	RoleAdmin     = "ADMIN"
	RoleAuthority = "AUTHORITY"
	RoleAgency    = "AGENCY"
)

const (
	CategoryCitizen   = "citizen"
	CategoryForeigner = "foreigner"
)

type User struct {
	gorm.Model
	ProfileImage string `json:"profile_image" gorm:"default:''"`
	// NumberSeries is the human-readable ID: SGYYYYNNNN for trainees,
	// TRYYYYNNNN for trainers. Assigned once at registration.
	NumberSeries          string     `json:"number_series" gorm:"size:12;uniqueIndex"`
	FullName              string     `json:"full_name" gorm:"not null"`
	Email                 string     `json:"email" gorm:"unique;not null"`
	Password              string     `json:"-" gorm:"not null"`
	Role                  string     `json:"role" gorm:"default:'USER'"`
	UserCategory          string     `json:"user_category" gorm:"default:'citizen'"` // citizen / foreigner
	ICNumber              string     `json:"ic_number"`                              // citizens
	PassportNumber        string     `json:"passport_number"`                        // foreigners
	VisaNumber            string     `json:"visa_number"`
	VisaExpiryDate        *time.Time `json:"visa_expiry_date"`
	ContactNumber         string     `json:"contact_number"`
	EmergencyContact      string     `json:"emergency_contact"`
	EmergencyRelationship string     `json:"emergency_relationship"`
	WorkingExperience     string     `json:"working_experience"`
	RecruitmentDate       *time.Time `json:"recruitment_date"`
	CurrentWorkplace      string     `json:"current_workplace"`
	Address               string     `json:"address"`
	State                 string     `json:"state"`
	Postcode              string     `json:"postcode"`
	Remarks               string     `json:"remarks"`
	RatingStar            int        `json:"rating_star" gorm:"default:0"`
	RatingLabel           string     `json:"rating_label" gorm:"default:''"`
	AgencyID              *uint      `json:"agency_id" gorm:"index"`
	// CourseCode is the course a trainer is assigned to; unused for other roles.
	CourseCode string `json:"course_code"`
	IsDeleted  bool   `gorm:"default:false"`
}

// DisplayedID returns the series number when assigned, falling back to
// the numeric primary key.
func (u *User) DisplayedID() string {
	if u.NumberSeries != "" {
		return u.NumberSeries
	}
	return strconv.FormatUint(uint64(u.ID), 10)
}
