package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func yesterdayOf(now time.Time) *string {
	s := dayString(now.AddDate(0, 0, -1))
	return &s
}

func TestApplyRewardQualifyingCompletion(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	u := createTestProfile(t, db, Profile{
		DoughCoins:     100,
		CurrentStreak:  2,
		LongestStreak:  5,
		LastStreakDate: yesterdayOf(now),
	})

	// 5/5, reward 20: coins 100 -> 120, streak 2 -> 3, longest stays 5.
	p, err := applyReward(context.Background(), db, u.ID, 20, streakQualifies(5, 5), rewardLesson, now)
	require.NoError(t, err)

	assert.Equal(t, 120, p.DoughCoins)
	assert.Equal(t, 3, p.CurrentStreak)
	assert.Equal(t, 5, p.LongestStreak)
	assert.Equal(t, 1, p.TotalLessonsCompleted)
}

func TestApplyRewardSecondLessonSameDay(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	ctx := context.Background()
	u := createTestProfile(t, db, Profile{
		DoughCoins:     100,
		CurrentStreak:  2,
		LongestStreak:  5,
		LastStreakDate: yesterdayOf(now),
	})

	_, err := applyReward(ctx, db, u.ID, 20, streakQualifies(5, 5), rewardLesson, now)
	require.NoError(t, err)

	// 2/5 later the same day: coins accrue, streak untouched.
	p, err := applyReward(ctx, db, u.ID, 10, streakQualifies(2, 5), rewardLesson, now)
	require.NoError(t, err)

	assert.Equal(t, 130, p.DoughCoins)
	assert.Equal(t, 3, p.CurrentStreak)
	assert.Equal(t, 5, p.LongestStreak)
	assert.Equal(t, 2, p.TotalLessonsCompleted)
}

func TestApplyRewardStreakOncePerDay(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	ctx := context.Background()
	u := createTestProfile(t, db, Profile{CurrentStreak: 4, LongestStreak: 4, LastStreakDate: yesterdayOf(now)})

	// Two qualifying completions on the same day: one increment only.
	p, err := applyReward(ctx, db, u.ID, 10, true, rewardLesson, now)
	require.NoError(t, err)
	require.Equal(t, 5, p.CurrentStreak)

	p, err = applyReward(ctx, db, u.ID, 10, true, rewardLesson, now)
	require.NoError(t, err)
	assert.Equal(t, 5, p.CurrentStreak)
	assert.Equal(t, 5, p.LongestStreak)
}

func TestApplyRewardLongestStreakAdvances(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	u := createTestProfile(t, db, Profile{CurrentStreak: 5, LongestStreak: 5, LastStreakDate: yesterdayOf(now)})

	p, err := applyReward(context.Background(), db, u.ID, 0, true, rewardDailyQuiz, now)
	require.NoError(t, err)
	assert.Equal(t, 6, p.CurrentStreak)
	assert.Equal(t, 6, p.LongestStreak)
	assert.Equal(t, 1, p.TotalQuizzesCompleted)
}

func TestApplyRewardStreakRestartsAfterGap(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	stale := dayString(now.AddDate(0, 0, -3))
	u := createTestProfile(t, db, Profile{CurrentStreak: 7, LongestStreak: 9, LastStreakDate: &stale})

	p, err := applyReward(context.Background(), db, u.ID, 5, true, rewardLesson, now)
	require.NoError(t, err)
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 9, p.LongestStreak)
}

func TestApplyRewardFirstEverStreak(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	u := createTestProfile(t, db, Profile{})

	p, err := applyReward(context.Background(), db, u.ID, 15, true, rewardLesson, now)
	require.NoError(t, err)
	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 1, p.LongestStreak)
	require.NotNil(t, p.LastStreakDate)
	assert.Equal(t, dayString(now), *p.LastStreakDate)
}

func TestApplyRewardRollsBackCoinsWhenStreakWriteFails(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	u := createTestProfile(t, db, Profile{DoughCoins: 100})

	// Break the streak statement while the coin statement still works: the
	// reward must land whole or not at all.
	require.NoError(t, db.Migrator().DropColumn(&Profile{}, "longest_streak"))

	_, err := applyReward(context.Background(), db, u.ID, 20, true, rewardLesson, now)
	require.Error(t, err)

	var p Profile
	require.NoError(t, db.First(&p, "id = ?", u.ID).Error)
	assert.Equal(t, 100, p.DoughCoins)
	assert.Zero(t, p.TotalLessonsCompleted)
	assert.Zero(t, p.CurrentStreak)
	assert.Nil(t, p.LastStreakDate)
}

func TestApplyRewardUnknownUser(t *testing.T) {
	db := openTestDB(t)
	_, err := applyReward(context.Background(), db, "nope", 10, false, rewardLesson, time.Now())
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	_, err = applyReward(context.Background(), db, "", 10, false, rewardLesson, time.Now())
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}

func TestApplyRewardCoinsAreAdditiveOnly(t *testing.T) {
	db := openTestDB(t)
	now := time.Now()
	ctx := context.Background()
	u := createTestProfile(t, db, Profile{DoughCoins: 40})

	p, err := applyReward(ctx, db, u.ID, 0, false, rewardLesson, now)
	require.NoError(t, err)
	assert.Equal(t, 40, p.DoughCoins)

	p, err = applyReward(ctx, db, u.ID, 25, false, rewardLesson, now)
	require.NoError(t, err)
	assert.Equal(t, 65, p.DoughCoins)
}
