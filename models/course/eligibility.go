package course

import (
	"errors"

	"gorm.io/gorm"
)

// PassMark is the minimum average quiz score for a certificate.
const PassMark = 50.0

var ErrCourseNotFound = errors.New("course not found")

// FindCourseByCode resolves a course code case-insensitively.
func FindCourseByCode(db *gorm.DB, code string) (*Course, error) {
	var c Course
	err := db.Where("LOWER(code) = LOWER(?) AND is_deleted = ?", code, false).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrCourseNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// CourseModules returns the modules of a course in natural series
// order. Modules link by CourseID; legacy rows that only carry the
// course code in ModuleType are picked up when no linked module
// exists.
func CourseModules(db *gorm.DB, courseCode string) ([]Module, error) {
	c, err := FindCourseByCode(db, courseCode)
	if err != nil {
		return nil, err
	}
	var mods []Module
	if err := db.Where("course_id = ? AND is_deleted = ?", c.ID, false).Find(&mods).Error; err != nil {
		return nil, err
	}
	if len(mods) == 0 {
		if err := db.Where("LOWER(module_type) = LOWER(?) AND is_deleted = ?", c.Code, false).Find(&mods).Error; err != nil {
			return nil, err
		}
	}
	SortModulesBySeries(mods)
	return mods, nil
}

// Eligibility is the certificate gate decision for one user+course.
type Eligibility struct {
	Eligible     bool
	AverageScore float64
	ModuleCount  int
	Completed    int
	Scored       int
}

// CheckEligibility decides whether a user has earned a certificate:
// every module of the course completed and the average of the recorded
// scores at or above the pass mark. A course with no modules, or a
// user with no recorded scores, is never eligible. Unscored completed
// modules do not drag the average down; they are simply excluded.
func CheckEligibility(db *gorm.DB, userID uint, courseCode string) (*Eligibility, error) {
	mods, err := CourseModules(db, courseCode)
	if err != nil {
		return nil, err
	}
	el := &Eligibility{ModuleCount: len(mods)}
	if len(mods) == 0 {
		return el, nil
	}

	ids := make([]uint, 0, len(mods))
	for _, m := range mods {
		ids = append(ids, m.ID)
	}
	states, err := ModuleStates(db, userID, ids)
	if err != nil {
		return nil, err
	}

	var sum float64
	for _, id := range ids {
		um, ok := states[id]
		if !ok || !um.IsCompleted {
			continue
		}
		el.Completed++
		if um.Score != nil {
			el.Scored++
			sum += *um.Score
		}
	}
	if el.Completed < el.ModuleCount || el.Scored == 0 {
		return el, nil
	}
	el.AverageScore = sum / float64(el.Scored)
	el.Eligible = el.AverageScore >= PassMark
	return el, nil
}

// RepresentativeModule picks the module that anchors a course
// certificate: the first one in natural series order.
func RepresentativeModule(mods []Module) (*Module, bool) {
	if len(mods) == 0 {
		return nil, false
	}
	return &mods[0], true
}
