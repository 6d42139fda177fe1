package course

import (
	"errors"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UserModule tracks one trainee's state on one module. One row per
// user+module pair; repeat attempts update the row in place.
type UserModule struct {
	gorm.Model
	UserID         uint           `json:"user_id" gorm:"not null;uniqueIndex:idx_user_module"`
	ModuleID       uint           `json:"module_id" gorm:"not null;uniqueIndex:idx_user_module"`
	IsCompleted    bool           `json:"is_completed" gorm:"default:false"`
	Score          *float64       `json:"score"`
	CompletionDate *time.Time     `json:"completion_date"`
	QuizAnswers    datatypes.JSON `json:"quiz_answers"`
	ReattemptCount int            `json:"reattempt_count" gorm:"default:0"`
}

// UserCourseProgress tracks completion of a whole course and carries
// the course-level reattempt counter used for certificate grading.
type UserCourseProgress struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course"`
	CourseCode     string     `json:"course_code" gorm:"size:50;not null;uniqueIndex:idx_user_course"`
	Completed      bool       `json:"completed" gorm:"default:false"`
	CompletionDate *time.Time `json:"completion_date"`
	CertificateURL string     `json:"certificate_url"`
	ReattemptCount int        `json:"reattempt_count" gorm:"default:0"`
}

// gradeLetter maps a reattempt count to a letter grade: 0 attempts is
// an A, each retry moves one letter down, anything past Y collapses to
// "Z+".
func gradeLetter(reattempts int) string {
	if reattempts < 0 {
		reattempts = 0
	}
	if reattempts >= 26 {
		return "Z+"
	}
	return string(rune('A' + reattempts))
}

func (um *UserModule) GradeLetter() string {
	return gradeLetter(um.ReattemptCount)
}

func (p *UserCourseProgress) GradeLetter() string {
	return gradeLetter(p.ReattemptCount)
}

// AttemptResult reports what UpsertAttempt did with a submission.
type AttemptResult struct {
	Record       *UserModule
	ScoreKept    float64
	ScoreLowered bool // submitted score was below the stored one
	Reattempt    bool // counted as a reattempt
}

// UpsertAttempt records a quiz attempt. The stored score only moves
// up: a lower resubmission keeps the old score but still refreshes the
// answer snapshot and completion date. The reattempt counter bumps
// only when the caller flags a reattempt and the module was already
// completed, so a first pass through a course never inflates grades.
func UpsertAttempt(db *gorm.DB, userID, moduleID uint, score float64, answers datatypes.JSON, isReattempt bool) (*AttemptResult, error) {
	res, err := upsertAttemptOnce(db, userID, moduleID, score, answers, isReattempt)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		// Concurrent first attempts race on the unique index; the
		// loser retries as an update.
		res, err = upsertAttemptOnce(db, userID, moduleID, score, answers, isReattempt)
	}
	return res, err
}

func upsertAttemptOnce(db *gorm.DB, userID, moduleID uint, score float64, answers datatypes.JSON, isReattempt bool) (*AttemptResult, error) {
	now := time.Now()
	var um UserModule
	err := db.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&um).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		um = UserModule{
			UserID:         userID,
			ModuleID:       moduleID,
			IsCompleted:    true,
			Score:          &score,
			CompletionDate: &now,
			QuizAnswers:    answers,
		}
		if err := db.Create(&um).Error; err != nil {
			return nil, err
		}
		return &AttemptResult{Record: &um, ScoreKept: score}, nil
	}
	if err != nil {
		return nil, err
	}

	result := &AttemptResult{Record: &um}
	if isReattempt && um.IsCompleted {
		um.ReattemptCount++
		result.Reattempt = true
	}
	if um.Score == nil || score > *um.Score {
		um.Score = &score
	} else if score < *um.Score {
		result.ScoreLowered = true
	}
	um.IsCompleted = true
	um.CompletionDate = &now
	um.QuizAnswers = answers
	if err := db.Save(&um).Error; err != nil {
		return nil, err
	}
	result.ScoreKept = *um.Score
	return result, nil
}

// SaveDraftAnswers stores a partial answer snapshot without touching
// the score or completion state.
func SaveDraftAnswers(db *gorm.DB, userID, moduleID uint, answers datatypes.JSON) (*UserModule, error) {
	var um UserModule
	err := db.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&um).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		um = UserModule{UserID: userID, ModuleID: moduleID, QuizAnswers: answers}
		if err := db.Create(&um).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return SaveDraftAnswers(db, userID, moduleID, answers)
			}
			return nil, err
		}
		return &um, nil
	}
	if err != nil {
		return nil, err
	}
	um.QuizAnswers = answers
	if err := db.Save(&um).Error; err != nil {
		return nil, err
	}
	return &um, nil
}

// CourseProgressFor loads or creates the per-course progress row.
func CourseProgressFor(db *gorm.DB, userID uint, courseCode string) (*UserCourseProgress, error) {
	var p UserCourseProgress
	err := db.Where("user_id = ? AND course_code = ?", userID, courseCode).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		p = UserCourseProgress{UserID: userID, CourseCode: courseCode}
		if err := db.Create(&p).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return CourseProgressFor(db, userID, courseCode)
			}
			return nil, err
		}
		return &p, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// ReattemptCourse resets module completion for every module of the
// course and bumps the course reattempt counter. Scores and answer
// snapshots survive the reset; only completion flags clear, so a
// retake can improve but never erase history.
func ReattemptCourse(db *gorm.DB, userID uint, courseCode string) (*UserCourseProgress, error) {
	mods, err := CourseModules(db, courseCode)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(mods))
	for _, m := range mods {
		ids = append(ids, m.ID)
	}

	progress, err := CourseProgressFor(db, userID, courseCode)
	if err != nil {
		return nil, err
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if len(ids) > 0 {
			if err := tx.Model(&UserModule{}).
				Where("user_id = ? AND module_id IN ?", userID, ids).
				Update("is_completed", false).Error; err != nil {
				return err
			}
		}
		progress.Completed = false
		progress.CompletionDate = nil
		progress.ReattemptCount++
		return tx.Save(progress).Error
	})
	if err != nil {
		return nil, err
	}
	return progress, nil
}

// ModuleStates returns the user's rows for the given modules keyed by
// module ID.
func ModuleStates(db *gorm.DB, userID uint, moduleIDs []uint) (map[uint]UserModule, error) {
	states := make(map[uint]UserModule, len(moduleIDs))
	if len(moduleIDs) == 0 {
		return states, nil
	}
	var rows []UserModule
	if err := db.Where("user_id = ? AND module_id IN ?", userID, moduleIDs).Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		states[r.ModuleID] = r
	}
	return states, nil
}
