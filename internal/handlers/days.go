package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/onursaribiyik/daily-tracker/internal/calories"
	"github.com/onursaribiyik/daily-tracker/internal/models"
	"github.com/onursaribiyik/daily-tracker/internal/store"
)

type dayRequest struct {
	ID            string            `json:"id"`
	Meals         models.Meals      `json:"meals"`
	MealPhotos    models.MealPhotos `json:"mealPhotos"`
	Activities    models.EntryList  `json:"activities"`
	Notes         string            `json:"notes"`
	Weight        *float64          `json:"weight" binding:"omitempty,gte=0,lte=1000"`
	WaterIntake   int               `json:"waterIntake" binding:"gte=0,lte=10000"`
	StepCount     int               `json:"stepCount" binding:"gte=0,lte=100000"`
	TotalCalories int               `json:"totalCalories" binding:"gte=0,lte=10000"`
}

func (r *dayRequest) toDay(dayID string) *models.Day {
	return &models.Day{
		DayID:         dayID,
		Meals:         r.Meals,
		MealPhotos:    r.MealPhotos,
		Activities:    r.Activities,
		Notes:         strings.TrimSpace(r.Notes),
		Weight:        r.Weight,
		WaterIntake:   r.WaterIntake,
		StepCount:     r.StepCount,
		TotalCalories: r.TotalCalories,
	}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), 5*time.Second)
}

// ListDays returns the caller's full day history, newest first.
// Optional page/limit query params slice the result for clients that
// page server-side.
func ListDays(days store.DayStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondUnauthorized(c, "DAY")
			return
		}

		page, limit, err := parsePaginationParams(c.Query("page"), c.Query("limit"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		all, err := days.List(ctx, userID)
		if err != nil {
			log.Println("[DAY] [ERROR] list days failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		if limit > 0 {
			start := (page - 1) * limit
			if start > len(all) {
				start = len(all)
			}
			end := start + limit
			if end > len(all) {
				end = len(all)
			}
			all = all[start:end]
		}

		for i := range all {
			calories.Annotate(&all[i])
		}
		c.JSON(http.StatusOK, all)
	}
}

// GetDay returns one day by its date key. A day owned by another user
// reads as not found.
func GetDay(days store.DayStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondUnauthorized(c, "DAY")
			return
		}

		dayID := strings.TrimSpace(c.Param("dayId"))

		ctx, cancel := requestContext(c)
		defer cancel()

		day, err := days.Get(ctx, userID, dayID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Day not found"})
			return
		}
		if err != nil {
			log.Println("[DAY] [ERROR] get day failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		calories.Annotate(day)
		c.JSON(http.StatusOK, day)
	}
}

// CreateDay inserts a brand-new day and rejects a duplicate date key.
// Clients that cannot know whether today already exists should use
// UpsertDay instead.
func CreateDay(days store.DayStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondUnauthorized(c, "DAY")
			return
		}

		var req dayRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		dayID := strings.TrimSpace(req.ID)
		if !models.IsValidDayID(dayID) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "day id must be a YYYY-MM-DD date"})
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		day, err := days.Create(ctx, userID, req.toDay(dayID))
		if errors.Is(err, store.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "Day already exists"})
			return
		}
		if err != nil {
			log.Println("[DAY] [ERROR] create day failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		log.Println("[DAY] [INFO] day created:", dayID)
		calories.Annotate(day)
		c.JSON(http.StatusCreated, day)
	}
}

// UpsertDay replaces the full day document, creating it when absent.
// The replace-or-create happens atomically in the store, so concurrent
// saves of the same new day cannot leave two documents behind.
func UpsertDay(days store.DayStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondUnauthorized(c, "DAY")
			return
		}

		dayID := strings.TrimSpace(c.Param("dayId"))
		if !models.IsValidDayID(dayID) {
			c.JSON(http.StatusBadRequest, gin.H{"message": "day id must be a YYYY-MM-DD date"})
			return
		}

		var req dayRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := requestContext(c)
		defer cancel()

		// The path parameter is authoritative; a mismatching id in the
		// body cannot move the document to another date.
		day, err := days.Upsert(ctx, userID, req.toDay(dayID))
		if err != nil {
			log.Println("[DAY] [ERROR] upsert day failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		calories.Annotate(day)
		c.JSON(http.StatusOK, day)
	}
}

// DeleteDay removes the day permanently.
func DeleteDay(days store.DayStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondUnauthorized(c, "DAY")
			return
		}

		dayID := strings.TrimSpace(c.Param("dayId"))

		ctx, cancel := requestContext(c)
		defer cancel()

		err := days.Delete(ctx, userID, dayID)
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Day not found"})
			return
		}
		if err != nil {
			log.Println("[DAY] [ERROR] delete day failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
			return
		}

		log.Println("[DAY] [INFO] day deleted:", dayID)
		c.JSON(http.StatusOK, gin.H{"message": "Day deleted successfully"})
	}
}
