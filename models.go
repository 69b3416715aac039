package main

import (
	"time"
)

// --- Profile ---

// Profile is the per-user aggregate state. Created at signup, mutated by the
// reward path. Streak fields follow "at most one increment per calendar day":
// LastStreakDate records the day (YYYY-MM-DD) of the most recent increment.
type Profile struct {
	ID                    string  `gorm:"primaryKey;size:36" json:"id"`
	Email                 string  `gorm:"uniqueIndex;not null" json:"email"`
	DisplayName           *string `json:"displayName,omitempty"`
	PasswordHash          string  `gorm:"not null" json:"-"`
	DoughCoins            int     `gorm:"not null;default:0" json:"doughCoins"`
	CurrentStreak         int     `gorm:"not null;default:0" json:"currentStreak"`
	LongestStreak         int     `gorm:"not null;default:0" json:"longestStreak"`
	LastStreakDate        *string `gorm:"size:10" json:"lastStreakDate,omitempty"`
	TotalLessonsCompleted int     `gorm:"not null;default:0" json:"totalLessonsCompleted"`
	TotalQuizzesCompleted int     `gorm:"not null;default:0" json:"totalQuizzesCompleted"`
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

func (Profile) TableName() string { return "profiles" }

// --- Lessons ---

// Lesson is immutable from the client's perspective; only the admin edit
// paths write it. Content holds the tagged union (paged vs quiz), parsed and
// validated by LessonContent's Scan when the row is loaded.
type Lesson struct {
	ID          string        `gorm:"primaryKey;size:64" json:"id"`
	Title       string        `gorm:"not null" json:"title"`
	Description string        `json:"description"`
	Category    string        `gorm:"index;not null" json:"category"`
	Difficulty  string        `gorm:"size:16;not null" json:"difficulty"` // "beginner" | "intermediate" | "advanced"
	OrderIndex  int           `gorm:"not null;default:0" json:"orderIndex"`
	Reward      int           `gorm:"not null;default:0" json:"xpReward"` // dough coins on completion
	Content     LessonContent `gorm:"type:text" json:"content"`
	CreatedAt   time.Time     `json:"createdAt"`
	UpdatedAt   time.Time     `json:"updatedAt"`
}

func (Lesson) TableName() string { return "lessons" }

// --- Progress ---

// UserProgress is one logical record per (user, lesson). Merged, never
// replaced: time_spent accumulates, completed only goes false→true, and
// completed_at is set exactly once.
type UserProgress struct {
	ID          uint       `gorm:"primaryKey" json:"-"`
	UserID      string     `gorm:"size:36;not null;uniqueIndex:idx_user_lesson" json:"userId"`
	LessonID    string     `gorm:"size:64;not null;uniqueIndex:idx_user_lesson" json:"lessonId"`
	Completed   bool       `gorm:"not null;default:false" json:"completed"`
	Progress    float64    `gorm:"not null;default:0" json:"progress"`  // 0..1
	TimeSpent   int        `gorm:"not null;default:0" json:"timeSpent"` // seconds
	CompletedAt *time.Time `json:"completedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (UserProgress) TableName() string { return "user_progress" }

// --- Daily quiz ---

// DailyQuizAttempt records one reward-bearing daily quiz per user per
// calendar day. The unique (user_id, completed_date) index is what makes the
// once-per-day invariant hold under concurrent completion calls: the second
// insert conflicts and is dropped.
type DailyQuizAttempt struct {
	ID            uint      `gorm:"primaryKey" json:"-"`
	UserID        string    `gorm:"size:36;not null;uniqueIndex:idx_user_day" json:"userId"`
	QuizID        string    `gorm:"size:64;not null" json:"quizId"`
	CompletedDate string    `gorm:"size:10;not null;uniqueIndex:idx_user_day" json:"completedDate"` // YYYY-MM-DD
	IsCorrect     bool      `gorm:"not null" json:"isCorrect"`
	RewardEarned  int       `gorm:"not null;default:0" json:"rewardEarned"` // 0 when not passed
	CreatedAt     time.Time `json:"createdAt"`
}

func (DailyQuizAttempt) TableName() string { return "daily_quiz_attempts" }
