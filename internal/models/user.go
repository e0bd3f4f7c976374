package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User represents the application user account with its profile data.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Username     string             `bson:"username" json:"username"`
	PasswordHash string             `bson:"passwordHash" json:"-"`
	Name         string             `bson:"name" json:"name"`
	Surname      string             `bson:"surname" json:"surname"`
	Gender       string             `bson:"gender,omitempty" json:"gender,omitempty"`
	Weight       float64            `bson:"weight,omitempty" json:"weight,omitempty"`
	Height       float64            `bson:"height,omitempty" json:"height,omitempty"`
	Age          int                `bson:"age,omitempty" json:"age,omitempty"`
	CreatedAt    time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// BMI computes the body mass index from the stored weight (kg) and
// height (cm). Returns 0 when either value is missing.
func (u *User) BMI() float64 {
	if u.Height <= 0 || u.Weight <= 0 {
		return 0
	}
	h := u.Height / 100.0
	return u.Weight / (h * h)
}
