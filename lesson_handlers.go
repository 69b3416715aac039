package main

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

/*** Lesson catalog ***/

// GET /api/v1/lessons?category=&difficulty=
// Ordered by order_index, the authoring order.
func ListLessons(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := storeCtx(c)
		defer cancel()

		q := db.WithContext(ctx).Order("order_index")
		if cat := c.Query("category"); cat != "" {
			q = q.Where("category = ?", cat)
		}
		if diff := c.Query("difficulty"); diff != "" {
			q = q.Where("difficulty = ?", diff)
		}

		var lessons []Lesson
		if err := q.Find(&lessons).Error; err != nil {
			writeErr(c, storeErr(err))
			return
		}
		c.JSON(http.StatusOK, lessons)
	}
}

// GET /api/v1/lessons/:id
func GetLesson(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := storeCtx(c)
		defer cancel()

		var lesson Lesson
		if err := db.WithContext(ctx).First(&lesson, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
			return
		}
		c.JSON(http.StatusOK, lesson)
	}
}

/*** Admin edit paths ***/

// POST /api/v1/lessons
// Content is validated by LessonContent.Value before it hits the store.
func CreateLesson(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var lesson Lesson
		if err := c.BindJSON(&lesson); err != nil || lesson.ID == "" || lesson.Title == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "id and title required"})
			return
		}
		if err := lesson.Content.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		ctx, cancel := storeCtx(c)
		defer cancel()

		now := time.Now()
		lesson.CreatedAt = now
		lesson.UpdatedAt = now
		if err := db.WithContext(ctx).Create(&lesson).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "lesson already exists"})
			return
		}
		c.JSON(http.StatusCreated, lesson)
	}
}

// PUT /api/v1/lessons/:id
func UpdateLesson(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := storeCtx(c)
		defer cancel()

		var lesson Lesson
		if err := db.WithContext(ctx).First(&lesson, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
			return
		}

		var in Lesson
		if err := c.BindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		if err := in.Content.Validate(); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		lesson.Title = in.Title
		lesson.Description = in.Description
		lesson.Category = in.Category
		lesson.Difficulty = in.Difficulty
		lesson.OrderIndex = in.OrderIndex
		lesson.Reward = in.Reward
		lesson.Content = in.Content
		lesson.UpdatedAt = time.Now()

		if err := db.WithContext(ctx).Save(&lesson).Error; err != nil {
			writeErr(c, storeErr(err))
			return
		}
		c.JSON(http.StatusOK, lesson)
	}
}

/*** Answer checking ***/

type AnswerReq struct {
	QuestionID string `json:"questionId"`
	Selected   int    `json:"selected"` // option index
}

// POST /api/v1/lessons/:id/answer
// Grades a single option and reveals the key plus explanation; progress is
// not touched here — the client reconciles once at the end of the lesson.
func AnswerQuestion(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AnswerReq
		if err := c.BindJSON(&req); err != nil || req.QuestionID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}

		ctx, cancel := storeCtx(c)
		defer cancel()

		var lesson Lesson
		if err := db.WithContext(ctx).First(&lesson, "id = ?", c.Param("id")).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "lesson not found"})
			return
		}

		q := lesson.Content.QuestionByID(req.QuestionID)
		if q == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "question not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"isCorrect":     gradeAnswer(q, req.Selected),
			"correctAnswer": q.CorrectAnswer,
			"explanation":   q.Explanation,
		})
	}
}
