package course

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens an isolated in-memory database per test. One open
// connection keeps the shared-cache database alive and serializes
// access the way the production pool does under contention.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:coursetest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&Course{},
		&Module{},
		&UserModule{},
		&UserCourseProgress{},
		&Certificate{},
		&ApprovalAudit{},
	))
	return db
}

// seedCourse creates a course with n quiz modules and returns the
// modules in series order.
func seedCourse(t *testing.T, db *gorm.DB, code string, n int) (*Course, []Module) {
	t.Helper()

	c := Course{Name: code + " Training", Code: code, AllowedCategory: AllowedBoth}
	require.NoError(t, db.Create(&c).Error)

	for i := 1; i <= n; i++ {
		m := Module{
			ModuleName:   fmt.Sprintf("%s Module %d", code, i),
			ModuleType:   code,
			SeriesNumber: fmt.Sprintf("%s%03d", code, i),
			CourseID:     &c.ID,
		}
		require.NoError(t, db.Create(&m).Error)
	}

	mods, err := CourseModules(db, code)
	require.NoError(t, err)
	require.Len(t, mods, n)
	return &c, mods
}

// completeModules marks modules completed for a user with the given
// scores; a nil score completes without recording one.
func completeModules(t *testing.T, db *gorm.DB, userID uint, mods []Module, scores []*float64) {
	t.Helper()

	for i, m := range mods {
		um := UserModule{UserID: userID, ModuleID: m.ID, IsCompleted: true}
		if i < len(scores) && scores[i] != nil {
			um.Score = scores[i]
		}
		require.NoError(t, db.Create(&um).Error)
	}
}

func f(v float64) *float64 { return &v }
