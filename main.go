package main

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"gorm.io/gorm"
)

func main() {
	// 1) Config
	LoadConfig()

	jwtSecret := viper.GetString("jwt.secret")
	if jwtSecret == "" {
		log.Fatal("jwt.secret not configured (set JWT_SECRET)")
	}

	// 2) DB
	db, err := OpenDB(viper.GetString("db.driver"), viper.GetString("db.dsn"))
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	if err := AutoMigrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// 3) Seed (if empty)
	if isEmpty, _ := IsLessonTableEmpty(db); isEmpty {
		path := viper.GetString("seed.path")
		if _, err := os.Stat(path); err == nil {
			if err := SeedFromJSON(db, path); err != nil {
				log.Fatalf("seed: %v", err)
			}
			log.Printf("Seeded lessons from %s", path)
		} else {
			log.Printf("No seed file at %s; running with empty lesson catalog", path)
		}
	}

	// 4) Router
	r := setupRouter(db, jwtSecret)

	// 5) Server
	port := viper.GetString("server.port")
	log.Printf("Listening on :%s", port)
	if err := r.Run(":" + port); err != nil {
		log.Fatalf("run: %v", err)
	}
}

func setupRouter(db *gorm.DB, jwtSecret string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			// mobile clients send no Origin; allow localhost for web dev
			return strings.HasPrefix(origin, "http://localhost:")
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/healthz", func(c *gin.Context) { c.String(200, "ok") })

	api := r.Group("/api/v1")
	{
		api.POST("/auth/signup", Signup(db, jwtSecret))
		api.POST("/auth/login", Login(db, jwtSecret))

		// Lesson catalog is public; everything user-scoped requires a token.
		api.GET("/lessons", ListLessons(db))
		api.GET("/lessons/:id", GetLesson(db))

		authed := api.Group("/")
		authed.Use(RequireUser(db, jwtSecret))
		{
			authed.POST("/lessons", CreateLesson(db))
			authed.PUT("/lessons/:id", UpdateLesson(db))
			authed.POST("/lessons/:id/answer", AnswerQuestion(db))

			authed.GET("/progress", GetProgress(db))
			authed.POST("/progress", UpdateProgress(db))

			authed.GET("/daily-quiz", FetchDailyQuiz(db))
			authed.POST("/daily-quiz/complete", CompleteDailyQuiz(db))

			authed.GET("/me", GetMe(db))
			authed.PUT("/me", UpdateMe(db))
			authed.GET("/stats", Stats(db))
		}
	}
	return r
}
