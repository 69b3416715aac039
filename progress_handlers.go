package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type UpdateProgressReq struct {
	LessonID  string `json:"lessonId"`
	Completed bool   `json:"completed"`
	Score     int    `json:"score"`     // correct answers this attempt
	TimeSpent int    `json:"timeSpent"` // seconds, this attempt only
}

// GET /api/v1/progress              -> all records, newest first
// GET /api/v1/progress?lessonId=x   -> single record (zero-value if absent)
func GetProgress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			writeErr(c, ErrNotAuthenticated)
			return
		}

		ctx, cancel := storeCtx(c)
		defer cancel()

		if lessonID := c.Query("lessonId"); lessonID != "" {
			p, err := lessonProgress(ctx, db, userID, lessonID, time.Now())
			if err != nil {
				writeErr(c, err)
				return
			}
			c.JSON(http.StatusOK, p)
			return
		}

		var all []UserProgress
		if err := db.WithContext(ctx).
			Where("user_id = ?", userID).
			Order("updated_at DESC").
			Find(&all).Error; err != nil {
			writeErr(c, storeErr(err))
			return
		}
		c.JSON(http.StatusOK, all)
	}
}

// POST /api/v1/progress
// Reconciles the attempt into the durable record. An attempt that moves the
// lesson into the completed state pays the lesson's reward; repeats of an
// already-completed lesson reconcile (time keeps accumulating) but pay
// nothing. Which request is "the one that completed it" is decided by the
// store (claimCompletion), so concurrent duplicate completions cannot both
// pay. Streak qualification is judged against the lesson's real question
// count, not the assumed denominator.
func UpdateProgress(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			writeErr(c, ErrNotAuthenticated)
			return
		}

		var req UpdateProgressReq
		if err := c.BindJSON(&req); err != nil || req.LessonID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lessonId required"})
			return
		}
		if req.TimeSpent < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "timeSpent must be >= 0"})
			return
		}

		ctx, cancel := storeCtx(c)
		defer cancel()
		now := time.Now()

		var lesson Lesson
		if err := db.WithContext(ctx).First(&lesson, "id = ?", req.LessonID).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
			return
		}

		newlyCompleted := false
		if req.Completed {
			var err error
			newlyCompleted, err = claimCompletion(ctx, db, userID, req.LessonID, now)
			if err != nil {
				writeErr(c, err)
				return
			}
		}

		merged, err := reconcileProgress(ctx, db, userID, req.LessonID, req.Completed, req.Score, req.TimeSpent, now)
		if err != nil {
			writeErr(c, err)
			return
		}

		var profile *Profile
		if newlyCompleted {
			qualified := streakQualifies(req.Score, lesson.Content.QuestionCount())
			profile, err = applyReward(ctx, db, userID, lesson.Reward, qualified, rewardLesson, now)
			if err != nil {
				writeErr(c, err)
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{
			"progress":       merged,
			"newlyCompleted": newlyCompleted,
			"profile":        profile,
		})
	}
}
