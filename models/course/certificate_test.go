package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubmitCompletionCreatesPending(t *testing.T) {
	db := newTestDB(t)
	_, mods := seedCourse(t, db, "CSG", 2)
	completeModules(t, db, 1, mods, []*float64{f(70), f(80)})

	result, err := SubmitCompletion(db, 1, "CSG")
	require.NoError(t, err)
	assert.Equal(t, OutcomeCreated, result.Outcome)
	require.NotNil(t, result.Certificate)
	assert.Equal(t, CertStatusPending, result.Certificate.Status)
	assert.Equal(t, 75.0, result.Certificate.Score)
	assert.Equal(t, ScoreToStars(75.0), result.Certificate.StarRating)
	assert.Equal(t, mods[0].ID, result.Certificate.ModuleID)
	assert.Equal(t, "A", result.Grade)

	progress, err := CourseProgressFor(db, 1, "CSG")
	require.NoError(t, err)
	assert.True(t, progress.Completed)
}

func TestSubmitCompletionNotEligible(t *testing.T) {
	db := newTestDB(t)
	_, mods := seedCourse(t, db, "CSG", 2)
	completeModules(t, db, 1, mods[:1], []*float64{f(90)})

	result, err := SubmitCompletion(db, 1, "CSG")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNotEligible, result.Outcome)
	assert.Nil(t, result.Certificate)

	var count int64
	require.NoError(t, db.Model(&Certificate{}).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestSubmitCompletionIdempotent(t *testing.T) {
	db := newTestDB(t)
	_, mods := seedCourse(t, db, "CSG", 2)
	completeModules(t, db, 1, mods, []*float64{f(70), f(80)})

	first, err := SubmitCompletion(db, 1, "CSG")
	require.NoError(t, err)
	require.Equal(t, OutcomeCreated, first.Outcome)

	second, err := SubmitCompletion(db, 1, "CSG")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyPending, second.Outcome)
	assert.Equal(t, first.Certificate.ID, second.Certificate.ID)

	// Approve it, then resubmit again.
	_, err = BulkApprove(db, 99, ApprovalScope{IDs: []uint{first.Certificate.ID}})
	require.NoError(t, err)

	third, err := SubmitCompletion(db, 1, "CSG")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAlreadyApproved, third.Outcome)

	var count int64
	require.NoError(t, db.Model(&Certificate{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestBulkApproveExplicitIDs(t *testing.T) {
	db := newTestDB(t)

	ids := make([]uint, 0, 3)
	for i := 1; i <= 3; i++ {
		cert := Certificate{UserID: uint(i), ModuleType: "CSG", Status: CertStatusPending, Score: 70}
		require.NoError(t, db.Create(&cert).Error)
		ids = append(ids, cert.ID)
	}

	// Duplicates collapse; one unknown ID is skipped.
	scope := ApprovalScope{IDs: []uint{ids[0], ids[0], ids[1], 9999}}
	result, err := BulkApprove(db, 42, scope)
	require.NoError(t, err)

	assert.Equal(t, 3, result.Requested)
	assert.Equal(t, 2, result.Approved)
	assert.Equal(t, 1, result.Skipped)

	var cert Certificate
	require.NoError(t, db.First(&cert, ids[0]).Error)
	assert.Equal(t, CertStatusApproved, cert.Status)
	require.NotNil(t, cert.ApprovedByID)
	assert.Equal(t, uint(42), *cert.ApprovedByID)
	assert.NotNil(t, cert.ApprovedAt)

	// Untouched certificate stays pending.
	cert = Certificate{}
	require.NoError(t, db.First(&cert, ids[2]).Error)
	assert.Equal(t, CertStatusPending, cert.Status)

	var audits int64
	require.NoError(t, db.Model(&ApprovalAudit{}).Count(&audits).Error)
	assert.Equal(t, int64(2), audits)
}

func TestBulkApproveRerunApprovesNothing(t *testing.T) {
	db := newTestDB(t)

	cert := Certificate{UserID: 1, ModuleType: "CSG", Status: CertStatusPending}
	require.NoError(t, db.Create(&cert).Error)

	first, err := BulkApprove(db, 42, ApprovalScope{IDs: []uint{cert.ID}})
	require.NoError(t, err)
	assert.Equal(t, 1, first.Approved)

	second, err := BulkApprove(db, 42, ApprovalScope{IDs: []uint{cert.ID}})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Requested)
	assert.Equal(t, 0, second.Approved)
	assert.Equal(t, 1, second.Skipped)
}

func TestBulkApproveBatchLimit(t *testing.T) {
	db := newTestDB(t)

	ids := make([]uint, BulkApproveLimit+1)
	for i := range ids {
		ids[i] = uint(i + 1)
	}
	_, err := BulkApprove(db, 42, ApprovalScope{IDs: ids})
	assert.ErrorIs(t, err, ErrBatchTooLarge)

	// Duplicates collapse below the limit before the check.
	dups := make([]uint, BulkApproveLimit*2)
	for i := range dups {
		dups[i] = uint(i%BulkApproveLimit + 1)
	}
	_, err = BulkApprove(db, 42, ApprovalScope{IDs: dups})
	assert.NoError(t, err)
}

func TestBulkApproveEmptyScope(t *testing.T) {
	db := newTestDB(t)

	_, err := BulkApprove(db, 42, ApprovalScope{})
	assert.ErrorIs(t, err, ErrEmptyScope)

	// Zero IDs collapse to an empty scope.
	_, err = BulkApprove(db, 42, ApprovalScope{IDs: []uint{0, 0}})
	assert.ErrorIs(t, err, ErrEmptyScope)
}

func TestBulkApproveUserScope(t *testing.T) {
	db := newTestDB(t)

	for _, tc := range []struct {
		user   uint
		course string
		status string
	}{
		{1, "CSG", CertStatusPending},
		{1, "TNG", CertStatusPending},
		{1, "ABC", CertStatusApproved},
		{2, "CSG", CertStatusPending},
	} {
		cert := Certificate{UserID: tc.user, ModuleType: tc.course, Status: tc.status}
		require.NoError(t, db.Create(&cert).Error)
	}

	result, err := BulkApprove(db, 42, ApprovalScope{UserID: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, result.Requested)
	assert.Equal(t, 2, result.Approved)
	assert.Equal(t, 0, result.Skipped)

	// User 2 untouched.
	var cert Certificate
	require.NoError(t, db.Where("user_id = ?", 2).First(&cert).Error)
	assert.Equal(t, CertStatusPending, cert.Status)
}

func TestBulkApproveAllPending(t *testing.T) {
	db := newTestDB(t)

	for i := 1; i <= 5; i++ {
		cert := Certificate{UserID: uint(i), ModuleType: "CSG", Status: CertStatusPending}
		require.NoError(t, db.Create(&cert).Error)
	}

	result, err := BulkApprove(db, 42, ApprovalScope{AllPending: true})
	require.NoError(t, err)
	assert.Equal(t, 5, result.Requested)
	assert.Equal(t, 5, result.Approved)
	assert.Len(t, result.ApprovedIDs, 5)
}

func TestScoreToStars(t *testing.T) {
	cases := []struct {
		score float64
		want  int
	}{
		{0, 1},
		{19.9, 1},
		{20, 2},
		{39.9, 2},
		{40, 3},
		{59.9, 3},
		{60, 4},
		{79.9, 4},
		{80, 5},
		{100, 5},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, ScoreToStars(tc.score), "score=%v", tc.score)
	}
}

func TestRecalculateStarRatings(t *testing.T) {
	db := newTestDB(t)

	stale := Certificate{UserID: 1, ModuleType: "CSG", Status: CertStatusApproved, Score: 85, StarRating: 2}
	fresh := Certificate{UserID: 2, ModuleType: "CSG", Status: CertStatusApproved, Score: 85, StarRating: 5}
	require.NoError(t, db.Create(&stale).Error)
	require.NoError(t, db.Create(&fresh).Error)

	updated, err := RecalculateStarRatings(db)
	require.NoError(t, err)
	assert.Equal(t, 1, updated)

	var cert Certificate
	require.NoError(t, db.First(&cert, stale.ID).Error)
	assert.Equal(t, 5, cert.StarRating)
}
