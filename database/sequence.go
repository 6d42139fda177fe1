package database

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Number series prefixes.
const (
	SeriesPrefixUser    = "SG"
	SeriesPrefixTrainer = "TR"
)

// SeriesCounter backs number allocation on dialects without native
// sequences. On PostgreSQL the per-year sequences are used instead.
type SeriesCounter struct {
	Name  string `gorm:"primaryKey;size:64"`
	Value int64  `gorm:"not null;default:0"`
}

func sequenceName(prefix string, year int) string {
	if prefix == SeriesPrefixTrainer {
		return fmt.Sprintf("trainer_number_series_%d_seq", year)
	}
	return fmt.Sprintf("user_number_series_%d_seq", year)
}

// AllocateNumberSeries hands out the next display number for the
// current year, like SG20260042. Allocation goes through a database
// sequence so concurrent signups never collide; numbers may have gaps
// when a signup rolls back. Past 9999 the numeric part simply widens.
func AllocateNumberSeries(db *gorm.DB, prefix string) (string, error) {
	year := time.Now().Year()
	val, err := nextSeriesValue(db, prefix, year)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%d%04d", prefix, year, val), nil
}

func nextSeriesValue(db *gorm.DB, prefix string, year int) (int64, error) {
	name := sequenceName(prefix, year)
	if db.Dialector.Name() == "postgres" {
		return nextFromPgSequence(db, name)
	}
	return nextFromCounterTable(db, name)
}

// nextFromPgSequence lazily creates the year's sequence and draws from
// it. CREATE SEQUENCE IF NOT EXISTS can race at a year rollover, so a
// failed nextval gets one retry after re-running the create.
func nextFromPgSequence(db *gorm.DB, name string) (int64, error) {
	create := fmt.Sprintf("CREATE SEQUENCE IF NOT EXISTS %s START 1", name)
	if err := db.Exec(create).Error; err != nil {
		return 0, err
	}
	var val int64
	err := db.Raw("SELECT nextval(?)", name).Scan(&val).Error
	if err != nil {
		if err2 := db.Exec(create).Error; err2 != nil {
			return 0, err
		}
		err = db.Raw("SELECT nextval(?)", name).Scan(&val).Error
	}
	if err != nil {
		return 0, err
	}
	return val, nil
}

// nextFromCounterTable is the portable path: insert-if-missing then an
// atomic increment returning the new value.
func nextFromCounterTable(db *gorm.DB, name string) (int64, error) {
	if err := db.Exec(
		"INSERT INTO series_counters (name, value) VALUES (?, 0) ON CONFLICT (name) DO NOTHING",
		name,
	).Error; err != nil {
		return 0, err
	}
	var val int64
	err := db.Raw(
		"UPDATE series_counters SET value = value + 1 WHERE name = ? RETURNING value",
		name,
	).Scan(&val).Error
	if err != nil {
		return 0, err
	}
	return val, nil
}
