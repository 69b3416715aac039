package main

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"
)

const tokenTTL = 30 * 24 * time.Hour

// issueToken signs a bearer token whose subject is the profile ID.
func issueToken(userID, secret string, now time.Time) (string, error) {
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// parseToken validates a bearer token and returns its subject.
func parseToken(tokenString, secret string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return "", ErrNotAuthenticated
	}
	return token.Claims.GetSubject()
}

// RequireUser authenticates the request from the Authorization header and
// puts the profile ID into the gin context as "userID". Requests without a
// valid token never reach the core modules.
func RequireUser(db *gorm.DB, secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "not authenticated"})
			return
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "bad authorization header"})
			return
		}

		userID, err := parseToken(parts[1], secret)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		// The token may outlive the account.
		var p Profile
		if err := db.Select("id").First(&p, "id = ?", userID).Error; err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unknown user"})
			return
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// currentUserID reads the authenticated profile ID set by RequireUser.
func currentUserID(c *gin.Context) string {
	v, ok := c.Get("userID")
	if !ok {
		return ""
	}
	id, _ := v.(string)
	return id
}
