package handlers

import (
	"context"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/onursaribiyik/daily-tracker/internal/models"
)

type registerRequest struct {
	Username string   `json:"username" binding:"required"`
	Password string   `json:"password" binding:"required,min=6"`
	Name     string   `json:"name" binding:"required"`
	Surname  string   `json:"surname" binding:"required"`
	Gender   string   `json:"gender"`
	Weight   *float64 `json:"weight" binding:"omitempty,gte=0,lte=1000"`
	Height   *float64 `json:"height" binding:"omitempty,gte=0,lte=300"`
	Age      *int     `json:"age" binding:"omitempty,gte=0,lte=150"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func userResponse(user *models.User) gin.H {
	return gin.H{
		"id":       user.ID.Hex(),
		"username": user.Username,
		"name":     user.Name,
		"surname":  user.Surname,
		"gender":   user.Gender,
		"weight":   user.Weight,
		"height":   user.Height,
		"age":      user.Age,
		"bmi":      user.BMI(),
	}
}

func issueUserToken(userID primitive.ObjectID, secret string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"userId": userID.Hex(),
		"exp":    time.Now().Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Register creates a user account and signs the caller in. Username
// uniqueness comes from the unique index, so a racing duplicate
// registration fails at the insert rather than slipping past a lookup.
func Register(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req registerRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		username := strings.ToLower(strings.TrimSpace(req.Username))
		if username == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "username is required"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Println("[AUTH] [ERROR] register password hash failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
			return
		}

		now := time.Now()
		user := models.User{
			Username:     username,
			PasswordHash: string(hash),
			Name:         strings.TrimSpace(req.Name),
			Surname:      strings.TrimSpace(req.Surname),
			Gender:       strings.TrimSpace(req.Gender),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if req.Weight != nil {
			user.Weight = *req.Weight
		}
		if req.Height != nil {
			user.Height = *req.Height
		}
		if req.Age != nil {
			user.Age = *req.Age
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		res, err := db.Collection("users").InsertOne(ctx, user)
		if mongo.IsDuplicateKeyError(err) {
			log.Println("[AUTH] [ERROR] register username exists:", username)
			c.JSON(http.StatusConflict, gin.H{"message": "Username already exists"})
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] register insert failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
			return
		}

		id, _ := res.InsertedID.(primitive.ObjectID)
		user.ID = id

		token, err := issueUserToken(id, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] register token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during registration"})
			return
		}

		log.Println("[AUTH] [INFO] user registered:", username)
		c.JSON(http.StatusCreated, gin.H{
			"message": "User created successfully",
			"token":   token,
			"user":    userResponse(&user),
		})
	}
}

// Login verifies credentials and issues a signed token.
func Login(db *mongo.Database, jwtSecret string, tokenTTL time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req loginRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			respondValidationError(c, err)
			return
		}

		username := strings.ToLower(strings.TrimSpace(req.Username))

		ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
		defer cancel()

		var user models.User
		err := db.Collection("users").FindOne(ctx, bson.M{"username": username}).Decode(&user)
		if err == mongo.ErrNoDocuments {
			log.Println("[AUTH] [ERROR] login unknown username")
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		if err != nil {
			log.Println("[AUTH] [ERROR] login user lookup failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
			log.Println("[AUTH] [ERROR] login invalid credentials for user")
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}

		token, err := issueUserToken(user.ID, jwtSecret, tokenTTL)
		if err != nil {
			log.Println("[AUTH] [ERROR] login token generation failed:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Server error during login"})
			return
		}

		log.Println("[AUTH] [INFO] user login succeeded:", username)
		c.JSON(http.StatusOK, gin.H{
			"message": "Login successful",
			"token":   token,
			"user":    userResponse(&user),
		})
	}
}
