package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckEligibilityAllCompletedAboveMark(t *testing.T) {
	db := newTestDB(t)
	_, mods := seedCourse(t, db, "CSG", 3)

	completeModules(t, db, 1, mods, []*float64{f(60), f(40), f(80)})

	el, err := CheckEligibility(db, 1, "CSG")
	require.NoError(t, err)
	assert.True(t, el.Eligible)
	assert.Equal(t, 60.0, el.AverageScore)
}

func TestCheckEligibilityIncompleteModule(t *testing.T) {
	db := newTestDB(t)
	_, mods := seedCourse(t, db, "CSG", 3)

	// High scores but one module missing.
	completeModules(t, db, 1, mods[:2], []*float64{f(100), f(100)})

	el, err := CheckEligibility(db, 1, "CSG")
	require.NoError(t, err)
	assert.False(t, el.Eligible)
	assert.Equal(t, 2, el.Completed)
	assert.Equal(t, 3, el.ModuleCount)
}

func TestCheckEligibilityBelowMark(t *testing.T) {
	db := newTestDB(t)
	_, mods := seedCourse(t, db, "CSG", 2)

	completeModules(t, db, 1, mods, []*float64{f(40), f(59)})

	el, err := CheckEligibility(db, 1, "CSG")
	require.NoError(t, err)
	assert.False(t, el.Eligible)
	assert.Equal(t, 49.5, el.AverageScore)
}

func TestCheckEligibilityExactPassMark(t *testing.T) {
	db := newTestDB(t)
	_, mods := seedCourse(t, db, "CSG", 2)

	completeModules(t, db, 1, mods, []*float64{f(40), f(60)})

	el, err := CheckEligibility(db, 1, "CSG")
	require.NoError(t, err)
	assert.True(t, el.Eligible)
	assert.Equal(t, 50.0, el.AverageScore)
}

func TestCheckEligibilityNullScoresExcludedFromAverage(t *testing.T) {
	db := newTestDB(t)
	_, mods := seedCourse(t, db, "CSG", 3)

	// Middle module completed without a score; average is over the two
	// recorded scores only.
	completeModules(t, db, 1, mods, []*float64{f(55), nil, f(65)})

	el, err := CheckEligibility(db, 1, "CSG")
	require.NoError(t, err)
	assert.True(t, el.Eligible)
	assert.Equal(t, 2, el.Scored)
	assert.Equal(t, 60.0, el.AverageScore)
}

func TestCheckEligibilityNoScoresAtAll(t *testing.T) {
	db := newTestDB(t)
	_, mods := seedCourse(t, db, "CSG", 2)

	completeModules(t, db, 1, mods, []*float64{nil, nil})

	el, err := CheckEligibility(db, 1, "CSG")
	require.NoError(t, err)
	assert.False(t, el.Eligible)
}

func TestCheckEligibilityEmptyCourse(t *testing.T) {
	db := newTestDB(t)
	seedCourse(t, db, "CSG", 0)

	el, err := CheckEligibility(db, 1, "CSG")
	require.NoError(t, err)
	assert.False(t, el.Eligible)
	assert.Equal(t, 0, el.ModuleCount)
}

func TestCheckEligibilityUnknownCourse(t *testing.T) {
	db := newTestDB(t)

	_, err := CheckEligibility(db, 1, "NOPE")
	assert.ErrorIs(t, err, ErrCourseNotFound)
}

func TestCourseModulesCaseInsensitiveAndFallback(t *testing.T) {
	db := newTestDB(t)
	c := Course{Name: "Tagged", Code: "TNG", AllowedCategory: AllowedBoth}
	require.NoError(t, db.Create(&c).Error)

	// Legacy module tagged only by module_type, no CourseID link.
	m := Module{ModuleName: "Legacy", ModuleType: "tng", SeriesNumber: "TNG001"}
	require.NoError(t, db.Create(&m).Error)

	mods, err := CourseModules(db, "tng")
	require.NoError(t, err)
	require.Len(t, mods, 1)
	assert.Equal(t, "Legacy", mods[0].ModuleName)
}

func TestRepresentativeModuleIsFirstInSeries(t *testing.T) {
	db := newTestDB(t)
	_, mods := seedCourse(t, db, "CSG", 3)

	rep, ok := RepresentativeModule(mods)
	require.True(t, ok)
	assert.Equal(t, "CSG001", rep.SeriesNumber)

	_, ok = RepresentativeModule(nil)
	assert.False(t, ok)
}
