package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type MeResponse struct {
	Profile Profile `json:"profile"`
	Belt    string  `json:"belt"`
}

type MeUpdateReq struct {
	DisplayName *string `json:"displayName"`
}

// GET /api/v1/me
func GetMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			writeErr(c, ErrNotAuthenticated)
			return
		}

		ctx, cancel := storeCtx(c)
		defer cancel()

		var p Profile
		if err := db.WithContext(ctx).First(&p, "id = ?", userID).Error; err != nil {
			writeErr(c, storeErr(err))
			return
		}
		c.JSON(http.StatusOK, MeResponse{
			Profile: p,
			Belt:    beltForLessons(p.TotalLessonsCompleted),
		})
	}
}

// PUT /api/v1/me
func UpdateMe(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := currentUserID(c)
		if userID == "" {
			writeErr(c, ErrNotAuthenticated)
			return
		}

		var req MeUpdateReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}

		ctx, cancel := storeCtx(c)
		defer cancel()

		var p Profile
		if err := db.WithContext(ctx).First(&p, "id = ?", userID).Error; err != nil {
			writeErr(c, storeErr(err))
			return
		}

		if req.DisplayName != nil {
			name := strings.TrimSpace(*req.DisplayName)
			if len(name) < 2 || len(name) > 40 {
				c.JSON(http.StatusBadRequest, gin.H{"error": "displayName must be 2..40 chars"})
				return
			}
			p.DisplayName = &name
		}
		p.UpdatedAt = time.Now()

		if err := db.WithContext(ctx).Save(&p).Error; err != nil {
			writeErr(c, storeErr(err))
			return
		}
		c.JSON(http.StatusOK, MeResponse{
			Profile: p,
			Belt:    beltForLessons(p.TotalLessonsCompleted),
		})
	}
}
