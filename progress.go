package main

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// reconcileProgress merges one lesson/quiz attempt into the durable
// (user, lesson) progress record as a single conditional upsert, so two
// overlapping attempts cannot lose an update:
//
//   - time_spent accumulates server-side (existing + increment)
//   - completed only transitions false→true
//   - completed_at is set on the first completing attempt and never again
//   - progress carries the latest attempt's fraction
//
// Returns the merged record. Store failures surface as ErrStoreUnavailable
// and are not retried.
func reconcileProgress(ctx context.Context, db *gorm.DB, userID, lessonID string, completed bool, score, timeSpentInc int, now time.Time) (*UserProgress, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	var completedAt *time.Time
	if completed {
		completedAt = &now
	}
	row := UserProgress{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   completed,
		Progress:    progressFraction(completed, score),
		TimeSpent:   timeSpentInc,
		CompletedAt: completedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"time_spent":   gorm.Expr("user_progress.time_spent + excluded.time_spent"),
			"completed":    gorm.Expr("user_progress.completed OR excluded.completed"),
			"completed_at": gorm.Expr("COALESCE(user_progress.completed_at, excluded.completed_at)"),
			"progress":     gorm.Expr("excluded.progress"),
			"updated_at":   now,
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, storeErr(err)
	}

	var merged UserProgress
	if err := db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&merged).Error; err != nil {
		return nil, storeErr(err)
	}
	return &merged, nil
}

// claimCompletion marks the (user, lesson) record completed and reports
// whether this call is the one that made the transition. The decision is the
// store's: the upsert inserts a completed row, or flips an existing row only
// while it is still incomplete (DO UPDATE ... WHERE completed = false), so of
// two racing completion requests exactly one observes true. Reward payment
// is gated on that.
func claimCompletion(ctx context.Context, db *gorm.DB, userID, lessonID string, now time.Time) (bool, error) {
	if userID == "" {
		return false, ErrNotAuthenticated
	}

	row := UserProgress{
		UserID:      userID,
		LessonID:    lessonID,
		Completed:   true,
		Progress:    1.0,
		CompletedAt: &now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	res := db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "lesson_id"}},
		Where: clause.Where{Exprs: []clause.Expression{
			clause.Eq{Column: clause.Column{Table: "user_progress", Name: "completed"}, Value: false},
		}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"completed":    true,
			"completed_at": now,
			"progress":     1.0,
			"updated_at":   now,
		}),
	}).Create(&row)
	if res.Error != nil {
		return false, storeErr(res.Error)
	}
	return res.RowsAffected > 0, nil
}

// lessonProgress loads the record for one (user, lesson), or a zero-value
// record when the user has not touched the lesson yet.
func lessonProgress(ctx context.Context, db *gorm.DB, userID, lessonID string, now time.Time) (*UserProgress, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}
	var p UserProgress
	err := db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &UserProgress{
			UserID:    userID,
			LessonID:  lessonID,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil
	}
	if err != nil {
		return nil, storeErr(err)
	}
	return &p, nil
}
