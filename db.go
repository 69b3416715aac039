package main

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// OpenDB connects using the configured driver: the pure-Go SQLite driver for
// local runs and tests, Postgres for deployment.
func OpenDB(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "sqlite", "":
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unknown db driver %q", driver)
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Profile{},
		&Lesson{},
		&UserProgress{},
		&DailyQuizAttempt{},
	)
}

func IsLessonTableEmpty(db *gorm.DB) (bool, error) {
	var count int64
	if err := db.Model(&Lesson{}).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}
