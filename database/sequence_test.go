package database

import (
	"fmt"
	"regexp"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDBSeq int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:dbtest%d?mode=memory&cache=shared", atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(&SeriesCounter{}))
	return db
}

func TestAllocateNumberSeriesFormat(t *testing.T) {
	db := newTestDB(t)
	year := time.Now().Year()

	got, err := AllocateNumberSeries(db, SeriesPrefixUser)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("SG%d0001", year), got)

	got, err = AllocateNumberSeries(db, SeriesPrefixUser)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("SG%d0002", year), got)

	// Trainer series counts independently.
	got, err = AllocateNumberSeries(db, SeriesPrefixTrainer)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("TR%d0001", year), got)
}

func TestAllocateNumberSeriesConcurrent(t *testing.T) {
	db := newTestDB(t)

	const workers = 50
	results := make(chan string, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			s, err := AllocateNumberSeries(db, SeriesPrefixUser)
			assert.NoError(t, err)
			results <- s
		}()
	}
	wg.Wait()
	close(results)

	pattern := regexp.MustCompile(`^SG\d{8}$`)
	seen := make(map[string]struct{}, workers)
	for s := range results {
		assert.Regexp(t, pattern, s)
		if _, dup := seen[s]; dup {
			t.Fatalf("duplicate number series allocated: %s", s)
		}
		seen[s] = struct{}{}
	}
	assert.Len(t, seen, workers)
}

func TestAllocateNumberSeriesWidensPast9999(t *testing.T) {
	db := newTestDB(t)
	year := time.Now().Year()

	name := sequenceName(SeriesPrefixUser, year)
	require.NoError(t, db.Create(&SeriesCounter{Name: name, Value: 9999}).Error)

	got, err := AllocateNumberSeries(db, SeriesPrefixUser)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("SG%d10000", year), got)
}

func TestSequenceNamePerYearAndPrefix(t *testing.T) {
	assert.Equal(t, "user_number_series_2026_seq", sequenceName(SeriesPrefixUser, 2026))
	assert.Equal(t, "trainer_number_series_2026_seq", sequenceName(SeriesPrefixTrainer, 2026))
	assert.NotEqual(t, sequenceName(SeriesPrefixUser, 2026), sequenceName(SeriesPrefixUser, 2027))
}
