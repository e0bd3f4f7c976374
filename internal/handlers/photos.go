package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/onursaribiyik/daily-tracker/internal/calories"
	"github.com/onursaribiyik/daily-tracker/internal/models"
	"github.com/onursaribiyik/daily-tracker/internal/store"
)

type photoRequest struct {
	Photo struct {
		ID       string `json:"id"`
		URL      string `json:"url" binding:"required"`
		Calories int    `json:"calories"`
	} `json:"photo" binding:"required"`
}

// AddMealPhoto appends a photo record to one of the five meal slots.
func AddMealPhoto(days store.DayStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondUnauthorized(c, "PHOTO")
			return
		}

		dayID := strings.TrimSpace(c.Param("dayId"))
		slot := strings.TrimSpace(c.Param("mealType"))

		var req photoRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		photo := models.MealPhoto{
			ID:       strings.TrimSpace(req.Photo.ID),
			URL:      strings.TrimSpace(req.Photo.URL),
			Calories: req.Photo.Calories,
		}

		day, err := days.AddPhoto(ctx, userID, dayID, slot, photo)
		if errors.Is(err, store.ErrInvalidSlot) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid meal type"})
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Day not found"})
			return
		}
		if err != nil {
			log.Println("[PHOTO] [ERROR] add photo failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		log.Println("[PHOTO] [INFO] photo added to", slot, "of", dayID)
		calories.Annotate(day)
		c.JSON(http.StatusOK, day)
	}
}

// RemoveMealPhoto filters the photo with the given id out of the slot.
func RemoveMealPhoto(days store.DayStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondUnauthorized(c, "PHOTO")
			return
		}

		dayID := strings.TrimSpace(c.Param("dayId"))
		slot := strings.TrimSpace(c.Param("mealType"))
		photoID := strings.TrimSpace(c.Param("photoId"))

		ctx, cancel := requestContext(c)
		defer cancel()

		day, err := days.RemovePhoto(ctx, userID, dayID, slot, photoID)
		if errors.Is(err, store.ErrInvalidSlot) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid meal type"})
			return
		}
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Day not found"})
			return
		}
		if err != nil {
			log.Println("[PHOTO] [ERROR] remove photo failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		log.Println("[PHOTO] [INFO] photo removed from", slot, "of", dayID)
		calories.Annotate(day)
		c.JSON(http.StatusOK, day)
	}
}
