package main

import (
	"math/rand"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GET /api/v1/daily-quiz
func FetchDailyQuiz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			writeErr(c, ErrNotAuthenticated)
			return
		}

		ctx, cancel := storeCtx(c)
		defer cancel()

		now := time.Now()
		rng := rand.New(rand.NewSource(now.UnixNano()))
		result, err := fetchDailyQuiz(ctx, db, userID, now, rng)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

type CompleteDailyQuizReq struct {
	LessonID       string `json:"lessonId"`
	CorrectAnswers int    `json:"correctAnswers"`
	TotalQuestions int    `json:"totalQuestions"`
	CoinsRewarded  int    `json:"coinsRewarded"`
}

// POST /api/v1/daily-quiz/complete
// A repeat on the same calendar day answers 200 with alreadyCompleted=true;
// that outcome is not an error.
func CompleteDailyQuiz(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			writeErr(c, ErrNotAuthenticated)
			return
		}

		var req CompleteDailyQuizReq
		if err := c.BindJSON(&req); err != nil || req.LessonID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "lessonId required"})
			return
		}
		if req.TotalQuestions <= 0 || req.CorrectAnswers < 0 || req.CorrectAnswers > req.TotalQuestions {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad answer counts"})
			return
		}
		if req.CoinsRewarded < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "coinsRewarded must be >= 0"})
			return
		}

		ctx, cancel := storeCtx(c)
		defer cancel()

		result, err := completeDailyQuiz(ctx, db, CompleteDailyQuizParams{
			UserID:         userID,
			LessonID:       req.LessonID,
			CorrectAnswers: req.CorrectAnswers,
			TotalQuestions: req.TotalQuestions,
			CoinsRewarded:  req.CoinsRewarded,
		}, time.Now())
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, result)
	}
}
