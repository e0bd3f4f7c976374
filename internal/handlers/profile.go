package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/onursaribiyik/daily-tracker/internal/models"
)

type profileUpdateRequest struct {
	Name    string   `json:"name"`
	Surname string   `json:"surname"`
	Gender  string   `json:"gender"`
	Weight  *float64 `json:"weight" binding:"omitempty,gte=0,lte=1000"`
	Height  *float64 `json:"height" binding:"omitempty,gte=0,lte=300"`
	Age     *int     `json:"age" binding:"omitempty,gte=0,lte=150"`
}

type changePasswordRequest struct {
	OldPassword string `json:"oldPassword" binding:"required"`
	NewPassword string `json:"newPassword" binding:"required,min=6"`
}

// Profile returns the authenticated user's account data with BMI.
func Profile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondUnauthorized(c, "PROFILE")
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			log.Println("[PROFILE] [ERROR] get profile failed:", err)
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		c.JSON(http.StatusOK, userResponse(&user))
	}
}

// UpdateProfile applies a partial update: only the fields present in
// the request change.
func UpdateProfile(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondUnauthorized(c, "PROFILE")
			return
		}

		var req profileUpdateRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		updates := bson.M{"updatedAt": time.Now()}
		if name := strings.TrimSpace(req.Name); name != "" {
			updates["name"] = name
		}
		if surname := strings.TrimSpace(req.Surname); surname != "" {
			updates["surname"] = surname
		}
		if gender := strings.TrimSpace(req.Gender); gender != "" {
			updates["gender"] = gender
		}
		if req.Weight != nil {
			updates["weight"] = *req.Weight
		}
		if req.Height != nil {
			updates["height"] = *req.Height
		}
		if req.Age != nil {
			updates["age"] = *req.Age
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOneAndUpdate(
			ctx,
			bson.M{"_id": userID},
			bson.M{"$set": updates},
			options.FindOneAndUpdate().SetReturnDocument(options.After),
		).Decode(&user)
		if err == mongo.ErrNoDocuments {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		if err != nil {
			log.Println("[PROFILE] [ERROR] update profile failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during update"})
			return
		}

		log.Println("[PROFILE] [INFO] profile updated:", user.Username)
		c.JSON(http.StatusOK, gin.H{
			"message": "Profile updated successfully",
			"user":    userResponse(&user),
		})
	}
}

// ChangePassword verifies the old password before storing a new hash.
func ChangePassword(db *mongo.Database) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c)
		if !ok {
			respondUnauthorized(c, "PROFILE")
			return
		}

		var req changePasswordRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		if err := db.Collection("users").FindOne(ctx, bson.M{"_id": userID}).Decode(&user); err != nil {
			log.Println("[PROFILE] [ERROR] change password user lookup failed:", err)
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Old password is incorrect"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[PROFILE] [ERROR] change password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during password change"})
			return
		}

		_, err = db.Collection("users").UpdateByID(ctx, userID, bson.M{
			"$set": bson.M{
				"passwordHash": string(hash),
				"updatedAt":    time.Now(),
			},
		})
		if err != nil {
			log.Println("[PROFILE] [ERROR] change password update failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during password change"})
			return
		}

		log.Println("[PROFILE] [INFO] password changed:", user.Username)
		c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully"})
	}
}
