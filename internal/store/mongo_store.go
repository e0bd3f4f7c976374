package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/onursaribiyik/daily-tracker/internal/models"
)

// MongoDayStore stores Day documents in the "days" collection. It
// relies on the unique compound index on (userId, id) created by
// database.EnsureDayIndexes.
type MongoDayStore struct {
	collection *mongo.Collection
}

func NewMongoDayStore(db *mongo.Database) *MongoDayStore {
	return &MongoDayStore{collection: db.Collection("days")}
}

func (s *MongoDayStore) List(ctx context.Context, userID primitive.ObjectID) ([]models.Day, error) {
	opts := options.Find().SetSort(bson.D{{Key: "id", Value: -1}})
	cursor, err := s.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	days := make([]models.Day, 0)
	if err := cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

func (s *MongoDayStore) Get(ctx context.Context, userID primitive.ObjectID, dayID string) (*models.Day, error) {
	var day models.Day
	err := s.collection.FindOne(ctx, bson.M{"userId": userID, "id": dayID}).Decode(&day)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (s *MongoDayStore) Create(ctx context.Context, userID primitive.ObjectID, day *models.Day) (*models.Day, error) {
	now := time.Now()
	doc := *day
	doc.ID = primitive.NilObjectID
	doc.UserID = userID
	doc.CreatedAt = now
	doc.UpdatedAt = now

	res, err := s.collection.InsertOne(ctx, doc)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrAlreadyExists
	}
	if err != nil {
		return nil, err
	}

	if id, ok := res.InsertedID.(primitive.ObjectID); ok {
		doc.ID = id
	}
	return &doc, nil
}

func (s *MongoDayStore) Upsert(ctx context.Context, userID primitive.ObjectID, day *models.Day) (*models.Day, error) {
	doc := *day
	doc.ID = primitive.NilObjectID
	doc.UserID = userID
	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now()
	}
	doc.UpdatedAt = time.Now()

	filter := bson.M{"userId": userID, "id": doc.DayID}
	opts := options.FindOneAndReplace().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var stored models.Day
	err := s.collection.FindOneAndReplace(ctx, filter, doc, opts).Decode(&stored)
	if mongo.IsDuplicateKeyError(err) {
		// Two upserts raced on a brand-new key and both took the insert
		// branch; the loser re-runs and replaces the winner's document.
		err = s.collection.FindOneAndReplace(ctx, filter, doc, opts).Decode(&stored)
	}
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *MongoDayStore) Delete(ctx context.Context, userID primitive.ObjectID, dayID string) error {
	res, err := s.collection.DeleteOne(ctx, bson.M{"userId": userID, "id": dayID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoDayStore) AddPhoto(ctx context.Context, userID primitive.ObjectID, dayID, slot string, photo models.MealPhoto) (*models.Day, error) {
	if !models.IsValidMealSlot(slot) {
		return nil, ErrInvalidSlot
	}

	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	photo.Timestamp = time.Now()
	if photo.Calories < 0 {
		photo.Calories = 0
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$push": bson.M{"mealPhotos." + slot: photo},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	var day models.Day
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"userId": userID, "id": dayID}, update, opts).Decode(&day)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}

func (s *MongoDayStore) RemovePhoto(ctx context.Context, userID primitive.ObjectID, dayID, slot, photoID string) (*models.Day, error) {
	if !models.IsValidMealSlot(slot) {
		return nil, ErrInvalidSlot
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	update := bson.M{
		"$pull": bson.M{"mealPhotos." + slot: bson.M{"id": photoID}},
		"$set":  bson.M{"updatedAt": time.Now()},
	}

	var day models.Day
	err := s.collection.FindOneAndUpdate(ctx, bson.M{"userId": userID, "id": dayID}, update, opts).Decode(&day)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &day, nil
}
