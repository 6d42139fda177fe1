package course

import "gorm.io/gorm"

// Course visibility categories.
const (
	AllowedCitizen   = "citizen"
	AllowedForeigner = "foreigner"
	AllowedBoth      = "both"
)

// Course is a named collection of modules gated by trainee category.
type Course struct {
	gorm.Model
	Name            string `json:"name" gorm:"not null"`
	Code            string `json:"code" gorm:"size:50;unique;not null"` // e.g. TNG, CSG
	Description     string `json:"description"`
	AllowedCategory string `json:"allowed_category" gorm:"size:20;default:'both'"`
	IsDeleted       bool   `gorm:"default:false"`
}

// VisibleTo reports whether trainees of the given category may see the
// course.
func (c *Course) VisibleTo(category string) bool {
	return c.AllowedCategory == AllowedBoth || c.AllowedCategory == category
}
