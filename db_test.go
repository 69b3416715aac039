package main

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns a migrated in-memory database. The pool is pinned to a
// single connection: each SQLite :memory: connection is its own database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return db
}

func createTestProfile(t *testing.T, db *gorm.DB, p Profile) Profile {
	t.Helper()
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if p.Email == "" {
		p.Email = p.ID + "@test.local"
	}
	if p.PasswordHash == "" {
		p.PasswordHash = "x"
	}
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now
	require.NoError(t, db.Create(&p).Error)
	return p
}

func createQuizLesson(t *testing.T, db *gorm.DB, id string, reward, questions int) Lesson {
	t.Helper()
	qs := make([]Question, 0, questions)
	for i := 0; i < questions; i++ {
		qs = append(qs, Question{
			ID:            id + "-q" + string(rune('a'+i)),
			Question:      "?",
			Options:       []string{"yes", "no"},
			CorrectAnswer: 0,
		})
	}
	l := Lesson{
		ID:         id,
		Title:      id,
		Category:   "Budgeting",
		Difficulty: "beginner",
		Reward:     reward,
		Content:    LessonContent{Type: ContentTypeQuiz, Questions: qs},
	}
	require.NoError(t, db.Create(&l).Error)
	return l
}

func createPagedLesson(t *testing.T, db *gorm.DB, id string) Lesson {
	t.Helper()
	l := Lesson{
		ID:         id,
		Title:      id,
		Category:   "Budgeting",
		Difficulty: "beginner",
		Content: LessonContent{
			Type:  ContentTypePaged,
			Pages: []Page{{Title: "intro", Body: "text"}},
		},
	}
	require.NoError(t, db.Create(&l).Error)
	return l
}
