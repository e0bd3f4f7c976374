package main

import (
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/onursaribiyik/daily-tracker/internal/config"
	"github.com/onursaribiyik/daily-tracker/internal/database"
	"github.com/onursaribiyik/daily-tracker/internal/handlers"
	"github.com/onursaribiyik/daily-tracker/internal/middleware"
	"github.com/onursaribiyik/daily-tracker/internal/store"
)

func main() {
	config.Load()

	if config.AppEnv.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	log.Println("MongoDB connected to:", db.Name())

	if err := database.EnsureUserIndexes(db); err != nil {
		log.Printf("user index warning: %v", err)
	}
	if err := database.EnsureDayIndexes(db); err != nil {
		log.Printf("day index warning: %v", err)
	}

	days := store.NewMongoDayStore(db)

	r := gin.Default()
	r.Use(cors.Default())

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message":   "Daily Tracker API is running!",
			"version":   "1.0.0",
			"timestamp": time.Now().Format(time.RFC3339),
		})
	})

	auth := r.Group("/api/auth")
	{
		auth.POST("/register", handlers.Register(db, config.AppEnv.JWTSecret, config.AppEnv.TokenTTL))
		auth.POST("/login", handlers.Login(db, config.AppEnv.JWTSecret, config.AppEnv.TokenTTL))

		auth.GET("/profile", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.Profile(db))
		auth.PUT("/profile", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.UpdateProfile(db))
		auth.POST("/change-password", middleware.UserAuth(config.AppEnv.JWTSecret), handlers.ChangePassword(db))
	}

	dayRoutes := r.Group("/api/days")
	dayRoutes.Use(middleware.UserAuth(config.AppEnv.JWTSecret))
	{
		dayRoutes.GET("", handlers.ListDays(days))
		dayRoutes.GET("/:dayId", handlers.GetDay(days))
		dayRoutes.POST("", handlers.CreateDay(days))
		dayRoutes.PUT("/:dayId", handlers.UpsertDay(days))
		dayRoutes.DELETE("/:dayId", handlers.DeleteDay(days))

		dayRoutes.POST("/:dayId/photos/:mealType", handlers.AddMealPhoto(days))
		dayRoutes.DELETE("/:dayId/photos/:mealType/:photoId", handlers.RemoveMealPhoto(days))
	}

	r.Run(":" + config.AppEnv.Port)
}
