package main

import (
	"context"
	"math/rand"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DailyQuizResult is the outcome of an eligibility check: either a quiz to
// serve, or the progress record that already satisfied today.
type DailyQuizResult struct {
	Quiz             *Lesson       `json:"quiz,omitempty"`
	AlreadyCompleted bool          `json:"alreadyCompleted"`
	Progress         *UserProgress `json:"userProgress,omitempty"`
}

// CompleteDailyQuizParams mirrors what the client reports after the user
// answers the served quiz.
type CompleteDailyQuizParams struct {
	UserID         string
	LessonID       string
	CorrectAnswers int
	TotalQuestions int
	CoinsRewarded  int
}

// DailyQuizCompletion reports what a completion call actually did. When
// AlreadyCompleted is set the call was a no-op: no attempt row, no progress
// write, no reward.
type DailyQuizCompletion struct {
	AlreadyCompleted bool     `json:"alreadyCompleted"`
	Passed           bool     `json:"passed"`
	RewardEarned     int      `json:"rewardEarned"`
	Profile          *Profile `json:"profile,omitempty"`
}

// fetchDailyQuiz decides whether a daily quiz may be served to the user for
// the calendar day containing now. A progress record completed since local
// midnight means the user is done for today. Otherwise one quiz-typed lesson
// with questions is drawn uniformly via rng.
func fetchDailyQuiz(ctx context.Context, db *gorm.DB, userID string, now time.Time, rng *rand.Rand) (*DailyQuizResult, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	var progress []UserProgress
	if err := db.WithContext(ctx).
		Where("user_id = ? AND completed_at >= ?", userID, startOfDay(now)).
		Order("completed_at DESC").
		Limit(1).
		Find(&progress).Error; err != nil {
		return nil, storeErr(err)
	}
	if len(progress) > 0 && progress[0].Completed {
		return &DailyQuizResult{AlreadyCompleted: true, Progress: &progress[0]}, nil
	}

	var lessons []Lesson
	if err := db.WithContext(ctx).Find(&lessons).Error; err != nil {
		return nil, storeErr(err)
	}
	quiz := drawQuiz(lessons, rng)
	if quiz == nil {
		return nil, ErrNoQuizAvailable
	}
	return &DailyQuizResult{Quiz: quiz}, nil
}

// completeDailyQuiz records today's attempt and, if this call was the first
// for the day, reconciles lesson progress and applies the reward. The
// once-per-day invariant is enforced by the store: the attempt insert carries
// ON CONFLICT (user_id, completed_date) DO NOTHING, so of two racing calls
// exactly one inserts a row and pays out.
func completeDailyQuiz(ctx context.Context, db *gorm.DB, p CompleteDailyQuizParams, now time.Time) (*DailyQuizCompletion, error) {
	if p.UserID == "" {
		return nil, ErrNotAuthenticated
	}

	passed := streakQualifies(p.CorrectAnswers, p.TotalQuestions)
	reward := 0
	if passed {
		reward = p.CoinsRewarded
	}

	attempt := DailyQuizAttempt{
		UserID:        p.UserID,
		QuizID:        p.LessonID,
		CompletedDate: dayString(now),
		IsCorrect:     passed,
		RewardEarned:  reward,
		CreatedAt:     now,
	}
	res := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "completed_date"}},
		DoNothing: true,
	}).Create(&attempt)
	if res.Error != nil {
		return nil, storeErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return &DailyQuizCompletion{AlreadyCompleted: true}, nil
	}

	if _, err := reconcileProgress(ctx, db, p.UserID, p.LessonID, true, p.CorrectAnswers, dailyQuizTimeSpent, now); err != nil {
		return nil, err
	}

	out := &DailyQuizCompletion{Passed: passed, RewardEarned: reward}
	if passed {
		profile, err := applyReward(ctx, db, p.UserID, reward, true, rewardDailyQuiz, now)
		if err != nil {
			return nil, err
		}
		out.Profile = profile
	}
	return out, nil
}

// dailyQuizTimeSpent is the flat time credited per daily quiz attempt; the
// client does not report elapsed time on this path.
const dailyQuizTimeSpent = 120
