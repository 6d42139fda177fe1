package course

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Certificate lifecycle statuses.
const (
	CertStatusPending  = "pending"
	CertStatusApproved = "approved"
)

// Certificate is a course-completion record awaiting or holding
// authority approval. ModuleType carries the course code; ModuleID
// anchors the certificate to the first module of the course.
type Certificate struct {
	gorm.Model
	UserID         uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course_cert"`
	ModuleType     string     `json:"module_type" gorm:"size:100;not null;uniqueIndex:idx_user_course_cert"`
	ModuleID       uint       `json:"module_id"`
	IssueDate      time.Time  `json:"issue_date"`
	StarRating     int        `json:"star_rating" gorm:"default:0"`
	Score          float64    `json:"score" gorm:"default:0"`
	Status         string     `json:"status" gorm:"size:20;default:'pending';index"`
	ApprovedByID   *uint      `json:"approved_by_id"`
	ApprovedAt     *time.Time `json:"approved_at"`
	CertificateURL string     `json:"certificate_url"`
}

// ApprovalAudit records one approval action on one certificate.
type ApprovalAudit struct {
	gorm.Model
	CertificateID uint   `json:"certificate_id" gorm:"not null;index"`
	ApproverID    uint   `json:"approver_id" gorm:"not null"`
	StatusBefore  string `json:"status_before" gorm:"size:20"`
	StatusAfter   string `json:"status_after" gorm:"size:20"`
	Note          string `json:"note"`
}

// Outcomes of a completion submission.
const (
	OutcomeCreated         = "created"
	OutcomeAlreadyPending  = "already_submitted"
	OutcomeAlreadyApproved = "already_approved"
	OutcomeNotEligible     = "not_eligible"
)

// CompletionResult reports what SubmitCompletion decided.
type CompletionResult struct {
	Outcome     string
	Certificate *Certificate
	Eligibility *Eligibility
	Grade       string
}

// SubmitCompletion verifies eligibility server-side and files a
// pending certificate. Resubmitting while a pending or approved
// certificate exists is a no-op reporting the existing record, so a
// double-click never files twice.
func SubmitCompletion(db *gorm.DB, userID uint, courseCode string) (*CompletionResult, error) {
	el, err := CheckEligibility(db, userID, courseCode)
	if err != nil {
		return nil, err
	}
	if !el.Eligible {
		return &CompletionResult{Outcome: OutcomeNotEligible, Eligibility: el}, nil
	}

	c, err := FindCourseByCode(db, courseCode)
	if err != nil {
		return nil, err
	}

	if existing, err := findActiveCertificate(db, userID, c.Code); err != nil {
		return nil, err
	} else if existing != nil {
		return existingCompletionResult(existing, el), nil
	}

	mods, err := CourseModules(db, courseCode)
	if err != nil {
		return nil, err
	}
	rep, ok := RepresentativeModule(mods)
	if !ok {
		return &CompletionResult{Outcome: OutcomeNotEligible, Eligibility: el}, nil
	}

	progress, err := CourseProgressFor(db, userID, c.Code)
	if err != nil {
		return nil, err
	}

	cert := &Certificate{
		UserID:     userID,
		ModuleType: c.Code,
		ModuleID:   rep.ID,
		IssueDate:  time.Now(),
		Score:      el.AverageScore,
		StarRating: ScoreToStars(el.AverageScore),
		Status:     CertStatusPending,
	}
	if err := db.Create(cert).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost a race with a concurrent submission; report the
			// winner's record.
			existing, ferr := findActiveCertificate(db, userID, c.Code)
			if ferr != nil {
				return nil, ferr
			}
			if existing != nil {
				return existingCompletionResult(existing, el), nil
			}
		}
		return nil, err
	}

	now := time.Now()
	progress.Completed = true
	progress.CompletionDate = &now
	if err := db.Save(progress).Error; err != nil {
		return nil, err
	}

	return &CompletionResult{
		Outcome:     OutcomeCreated,
		Certificate: cert,
		Eligibility: el,
		Grade:       progress.GradeLetter(),
	}, nil
}

func findActiveCertificate(db *gorm.DB, userID uint, courseCode string) (*Certificate, error) {
	var cert Certificate
	err := db.Where("user_id = ? AND module_type = ? AND status IN ?",
		userID, courseCode, []string{CertStatusPending, CertStatusApproved}).
		First(&cert).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cert, nil
}

func existingCompletionResult(cert *Certificate, el *Eligibility) *CompletionResult {
	outcome := OutcomeAlreadyPending
	if cert.Status == CertStatusApproved {
		outcome = OutcomeAlreadyApproved
	}
	return &CompletionResult{Outcome: outcome, Certificate: cert, Eligibility: el}
}

// BulkApproveLimit caps one explicit-ID approval batch.
const BulkApproveLimit = 100

var (
	ErrBatchTooLarge = errors.New("too many certificate ids in one batch")
	ErrEmptyScope    = errors.New("empty approval scope")
)

// ApprovalScope selects which pending certificates to approve: an
// explicit ID list, everything pending for one user, or everything
// pending.
type ApprovalScope struct {
	IDs        []uint
	UserID     uint
	AllPending bool
}

// BulkApproveResult reports batch arithmetic: skipped counts the
// requested certificates that were not pending anymore (or never
// existed).
type BulkApproveResult struct {
	Requested   int    `json:"requested"`
	Approved    int    `json:"approved"`
	Skipped     int    `json:"skipped"`
	ApprovedIDs []uint `json:"-"`
}

// BulkApprove flips pending certificates to approved in one set-based
// update and writes an audit row per approved certificate. An
// explicit batch over the limit is rejected wholesale; duplicate IDs
// collapse before counting. Only rows still pending flip, so rerunning
// the same batch approves nothing twice.
func BulkApprove(db *gorm.DB, approverID uint, scope ApprovalScope) (*BulkApproveResult, error) {
	ids := dedupeIDs(scope.IDs)
	if len(ids) == 0 && scope.UserID == 0 && !scope.AllPending {
		return nil, ErrEmptyScope
	}
	if len(ids) > BulkApproveLimit {
		return nil, ErrBatchTooLarge
	}

	result := &BulkApproveResult{Requested: len(ids)}
	err := db.Transaction(func(tx *gorm.DB) error {
		q := "UPDATE certificates SET status = ?, approved_by_id = ?, approved_at = ? WHERE status = ? AND deleted_at IS NULL"
		args := []interface{}{CertStatusApproved, approverID, time.Now(), CertStatusPending}
		switch {
		case len(ids) > 0:
			q += " AND id IN ?"
			args = append(args, ids)
		case scope.UserID != 0:
			q += " AND user_id = ?"
			args = append(args, scope.UserID)
			var n int64
			if err := tx.Model(&Certificate{}).
				Where("status = ? AND user_id = ?", CertStatusPending, scope.UserID).
				Count(&n).Error; err != nil {
				return err
			}
			result.Requested = int(n)
		default:
			var n int64
			if err := tx.Model(&Certificate{}).
				Where("status = ?", CertStatusPending).
				Count(&n).Error; err != nil {
				return err
			}
			result.Requested = int(n)
		}
		q += " RETURNING id"

		var approved []uint
		if err := tx.Raw(q, args...).Scan(&approved).Error; err != nil {
			return err
		}

		audits := make([]ApprovalAudit, 0, len(approved))
		for _, id := range approved {
			audits = append(audits, ApprovalAudit{
				CertificateID: id,
				ApproverID:    approverID,
				StatusBefore:  CertStatusPending,
				StatusAfter:   CertStatusApproved,
			})
		}
		if len(audits) > 0 {
			if err := tx.Create(&audits).Error; err != nil {
				return err
			}
		}

		result.Approved = len(approved)
		result.ApprovedIDs = approved
		return nil
	})
	if err != nil {
		return nil, err
	}
	result.Skipped = result.Requested - result.Approved
	return result, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// ScoreToStars maps a percentage score onto a 1..5 star rating.
func ScoreToStars(score float64) int {
	switch {
	case score >= 80:
		return 5
	case score >= 60:
		return 4
	case score >= 40:
		return 3
	case score >= 20:
		return 2
	default:
		return 1
	}
}

// RecalculateStarRatings rewrites the star rating of every certificate
// from its stored score. Used after the star banding changes.
func RecalculateStarRatings(db *gorm.DB) (int, error) {
	var certs []Certificate
	if err := db.Find(&certs).Error; err != nil {
		return 0, err
	}
	updated := 0
	for i := range certs {
		want := ScoreToStars(certs[i].Score)
		if certs[i].StarRating == want {
			continue
		}
		if err := db.Model(&certs[i]).Update("star_rating", want).Error; err != nil {
			return updated, err
		}
		updated++
	}
	return updated, nil
}
