package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestUpsertAttemptFirstAttempt(t *testing.T) {
	db := newTestDB(t)

	result, err := UpsertAttempt(db, 1, 10, 75.0, datatypes.JSON(`[0,1]`), false)
	require.NoError(t, err)

	assert.True(t, result.Record.IsCompleted)
	assert.Equal(t, 75.0, result.ScoreKept)
	assert.Equal(t, 0, result.Record.ReattemptCount)
	assert.NotNil(t, result.Record.CompletionDate)
}

func TestUpsertAttemptScoreOnlyRises(t *testing.T) {
	db := newTestDB(t)

	_, err := UpsertAttempt(db, 1, 10, 80.0, datatypes.JSON(`[0]`), false)
	require.NoError(t, err)

	// Lower resubmission keeps the old score but refreshes the snapshot.
	result, err := UpsertAttempt(db, 1, 10, 40.0, datatypes.JSON(`[1]`), false)
	require.NoError(t, err)
	assert.Equal(t, 80.0, result.ScoreKept)
	assert.True(t, result.ScoreLowered)
	assert.Equal(t, datatypes.JSON(`[1]`), result.Record.QuizAnswers)

	// Higher resubmission overwrites.
	result, err = UpsertAttempt(db, 1, 10, 90.0, datatypes.JSON(`[0]`), false)
	require.NoError(t, err)
	assert.Equal(t, 90.0, result.ScoreKept)
	assert.False(t, result.ScoreLowered)

	// Equal score is not a lowering and not an overwrite.
	result, err = UpsertAttempt(db, 1, 10, 90.0, datatypes.JSON(`[2]`), false)
	require.NoError(t, err)
	assert.Equal(t, 90.0, result.ScoreKept)
	assert.False(t, result.ScoreLowered)

	var count int64
	require.NoError(t, db.Model(&UserModule{}).Where("user_id = ? AND module_id = ?", 1, 10).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertAttemptReattemptCounting(t *testing.T) {
	db := newTestDB(t)

	// Reattempt flag on a first attempt does not count.
	result, err := UpsertAttempt(db, 1, 10, 50.0, nil, true)
	require.NoError(t, err)
	assert.False(t, result.Reattempt)
	assert.Equal(t, 0, result.Record.ReattemptCount)

	// Reattempt of a completed module counts.
	result, err = UpsertAttempt(db, 1, 10, 60.0, nil, true)
	require.NoError(t, err)
	assert.True(t, result.Reattempt)
	assert.Equal(t, 1, result.Record.ReattemptCount)

	// Plain resubmission without the flag does not.
	result, err = UpsertAttempt(db, 1, 10, 70.0, nil, false)
	require.NoError(t, err)
	assert.False(t, result.Reattempt)
	assert.Equal(t, 1, result.Record.ReattemptCount)
}

func TestGradeLetter(t *testing.T) {
	cases := []struct {
		attempts int
		want     string
	}{
		{0, "A"},
		{1, "B"},
		{2, "C"},
		{25, "Z"},
		{26, "Z+"},
		{40, "Z+"},
		{-1, "A"},
	}
	for _, tc := range cases {
		um := UserModule{ReattemptCount: tc.attempts}
		assert.Equal(t, tc.want, um.GradeLetter(), "attempts=%d", tc.attempts)

		p := UserCourseProgress{ReattemptCount: tc.attempts}
		assert.Equal(t, tc.want, p.GradeLetter(), "attempts=%d", tc.attempts)
	}
}

func TestSaveDraftAnswers(t *testing.T) {
	db := newTestDB(t)

	um, err := SaveDraftAnswers(db, 1, 10, datatypes.JSON(`[0,null]`))
	require.NoError(t, err)
	assert.False(t, um.IsCompleted)
	assert.Nil(t, um.Score)

	// Draft over a scored attempt leaves score and completion alone.
	_, err = UpsertAttempt(db, 1, 10, 80.0, datatypes.JSON(`[0,1]`), false)
	require.NoError(t, err)

	um, err = SaveDraftAnswers(db, 1, 10, datatypes.JSON(`[1,1]`))
	require.NoError(t, err)
	assert.True(t, um.IsCompleted)
	require.NotNil(t, um.Score)
	assert.Equal(t, 80.0, *um.Score)
	assert.Equal(t, datatypes.JSON(`[1,1]`), um.QuizAnswers)
}

func TestReattemptCourse(t *testing.T) {
	db := newTestDB(t)
	_, mods := seedCourse(t, db, "CSG", 3)

	for _, m := range mods {
		_, err := UpsertAttempt(db, 1, m.ID, 70.0, nil, false)
		require.NoError(t, err)
	}

	progress, err := ReattemptCourse(db, 1, "CSG")
	require.NoError(t, err)
	assert.Equal(t, 1, progress.ReattemptCount)
	assert.Equal(t, "B", progress.GradeLetter())
	assert.False(t, progress.Completed)

	// Completion flags reset, scores survive.
	states, err := ModuleStates(db, 1, []uint{mods[0].ID, mods[1].ID, mods[2].ID})
	require.NoError(t, err)
	for _, m := range mods {
		state := states[m.ID]
		assert.False(t, state.IsCompleted)
		require.NotNil(t, state.Score)
		assert.Equal(t, 70.0, *state.Score)
	}
}

func TestCourseProgressForCreatesOnce(t *testing.T) {
	db := newTestDB(t)

	p1, err := CourseProgressFor(db, 1, "CSG")
	require.NoError(t, err)
	p2, err := CourseProgressFor(db, 1, "CSG")
	require.NoError(t, err)
	assert.Equal(t, p1.ID, p2.ID)
}
