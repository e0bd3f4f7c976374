package database

import (
	"context"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func EnsureUserIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("users").Indexes()

	usernameIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "username", Value: 1}},
		Options: options.Index().
			SetName("username_unique").
			SetUnique(true),
	}

	log.Println("EnsureUserIndexes: creating username_unique index")
	_, err := indexes.CreateOne(ctx, usernameIndex)
	if err != nil {
		log.Println("EnsureUserIndexes: username index error:", err)
		return err
	}
	log.Println("EnsureUserIndexes: username_unique index created")
	return nil
}

// EnsureDayIndexes creates the compound unique index that makes the
// (userId, dayId) key atomic: duplicate creations fail at the database,
// never through a check-then-insert in application code.
func EnsureDayIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	indexes := db.Collection("days").Indexes()

	uniqueIndex := mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}, {Key: "id", Value: 1}},
		Options: options.Index().
			SetName("userId_dayId_unique").
			SetUnique(true),
	}

	listIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "id", Value: -1}},
		Options: options.Index().SetName("userId_dayId_desc"),
	}

	log.Println("EnsureDayIndexes: creating userId_dayId indexes")
	_, err := indexes.CreateMany(ctx, []mongo.IndexModel{uniqueIndex, listIndex})
	if err != nil {
		log.Println("EnsureDayIndexes: day index error:", err)
		return err
	}
	log.Println("EnsureDayIndexes: userId_dayId indexes created")
	return nil
}
