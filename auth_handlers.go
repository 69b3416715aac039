package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type SignupReq struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	DisplayName *string `json:"displayName"`
}

type LoginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token   string  `json:"token"`
	Profile Profile `json:"profile"`
}

// POST /api/v1/auth/signup
// Profile rows are created here and only here; the reward path assumes the
// row already exists.
func Signup(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req SignupReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))
		if req.Email == "" || !strings.Contains(req.Email, "@") {
			c.JSON(http.StatusBadRequest, gin.H{"error": "valid email required"})
			return
		}
		if len(req.Password) < 8 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "password must be at least 8 chars"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "hash failed"})
			return
		}

		now := time.Now()
		profile := Profile{
			ID:           uuid.New().String(),
			Email:        req.Email,
			DisplayName:  req.DisplayName,
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := db.Create(&profile).Error; err != nil {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}

		token, err := issueToken(profile.ID, jwtSecret, now)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token failed"})
			return
		}
		c.JSON(http.StatusCreated, AuthResponse{Token: token, Profile: profile})
	}
}

// POST /api/v1/auth/login
func Login(db *gorm.DB, jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginReq
		if err := c.BindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "bad request"})
			return
		}
		req.Email = strings.ToLower(strings.TrimSpace(req.Email))

		var profile Profile
		if err := db.First(&profile, "email = ?", req.Email).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(req.Password)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}

		token, err := issueToken(profile.ID, jwtSecret, time.Now())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "token failed"})
			return
		}
		c.JSON(http.StatusOK, AuthResponse{Token: token, Profile: profile})
	}
}
