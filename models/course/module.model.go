package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Module is a single training unit: video/slide content plus an
// optional quiz stored as JSON. CourseID is an optional link; orphaned
// modules are legal but only counted into a course through ModuleType.
type Module struct {
	gorm.Model
	ModuleName   string         `json:"module_name" gorm:"not null"`
	ModuleType   string         `json:"module_type" gorm:"size:100;not null;index"` // course code tag
	SeriesNumber string         `json:"series_number" gorm:"size:50"`               // e.g. CSG003
	ScoringFloat float64        `json:"scoring_float" gorm:"default:0"`
	StarRating   int            `json:"star_rating" gorm:"default:0"`
	Content      string         `json:"content"`
	YoutubeURL   string         `json:"youtube_url"`
	SlideURL     string         `json:"slide_url"`
	QuizJSON     datatypes.JSON `json:"quiz_json"`
	CourseID     *uint          `json:"course_id" gorm:"index"`
	IsDeleted    bool           `gorm:"default:false"`
}
