package main

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// rewardKind selects which completion counter a reward bumps.
type rewardKind int

const (
	rewardLesson rewardKind = iota
	rewardDailyQuiz
)

func (k rewardKind) counterColumn() string {
	if k == rewardDailyQuiz {
		return "total_quizzes_completed"
	}
	return "total_lessons_completed"
}

// applyReward credits coins and one completion to the profile, and — when the
// attempt qualifies — advances the streak. Coins and counters are additive
// server-side expressions. Both writes run in one transaction: a store
// failure between them would otherwise leave coins credited with the streak
// lost for good, since every retry path sees the completion as already paid.
// The streak write is guarded by last_streak_date: the WHERE clause matches
// at most once per calendar day, so a concurrent duplicate call degrades to
// the coin/counter update and cannot double the streak. Streaks are
// consecutive-day: an increment lands on top of yesterday's, anything older
// restarts at 1.
func applyReward(ctx context.Context, db *gorm.DB, userID string, coins int, streakQualified bool, kind rewardKind, now time.Time) (*Profile, error) {
	if userID == "" {
		return nil, ErrNotAuthenticated
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counter := kind.counterColumn()
		res := tx.Model(&Profile{}).
			Where("id = ?", userID).
			Updates(map[string]interface{}{
				"dough_coins": gorm.Expr("dough_coins + ?", coins),
				counter:       gorm.Expr(counter + " + 1"),
				"updated_at":  now,
			})
		if res.Error != nil {
			return storeErr(res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrNotAuthenticated
		}

		if streakQualified {
			return advanceStreak(ctx, tx, userID, now)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	var p Profile
	if err := db.WithContext(ctx).First(&p, "id = ?", userID).Error; err != nil {
		return nil, storeErr(err)
	}
	return &p, nil
}

// advanceStreak performs today's streak increment if it has not happened yet.
// The read decides continue-vs-restart; the day guard in the UPDATE decides
// whether this call is the one that lands.
func advanceStreak(ctx context.Context, db *gorm.DB, userID string, now time.Time) error {
	today := dayString(now)
	yesterday := dayString(now.AddDate(0, 0, -1))

	var p Profile
	if err := db.WithContext(ctx).First(&p, "id = ?", userID).Error; err != nil {
		return storeErr(err)
	}
	if p.LastStreakDate != nil && *p.LastStreakDate >= today {
		return nil // already advanced today
	}

	newStreak := 1
	if p.LastStreakDate != nil && *p.LastStreakDate == yesterday {
		newStreak = p.CurrentStreak + 1
	}

	res := db.WithContext(ctx).Model(&Profile{}).
		Where("id = ? AND (last_streak_date IS NULL OR last_streak_date < ?)", userID, today).
		Updates(map[string]interface{}{
			"current_streak":   newStreak,
			"longest_streak":   gorm.Expr("CASE WHEN ? > longest_streak THEN ? ELSE longest_streak END", newStreak, newStreak),
			"last_streak_date": today,
			"updated_at":       now,
		})
	if res.Error != nil {
		return storeErr(res.Error)
	}
	// RowsAffected == 0 means another request took today's increment first.
	return nil
}
