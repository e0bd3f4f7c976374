// Package store persists Day records keyed by (userId, dayId). The
// composite key is unique; uniqueness is enforced at the storage layer
// so racing duplicate creations can never leave two documents behind.
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/onursaribiyik/daily-tracker/internal/models"
)

var (
	// ErrNotFound covers both an absent day and a day owned by another
	// user; callers cannot tell the two apart.
	ErrNotFound = errors.New("day not found")

	// ErrAlreadyExists is returned by Create when the (userId, dayId)
	// key is already taken.
	ErrAlreadyExists = errors.New("day already exists")

	// ErrInvalidSlot is returned for meal slot names outside the fixed
	// five-slot set.
	ErrInvalidSlot = errors.New("invalid meal slot")
)

// DayStore is the Day record storage contract. All operations filter by
// the owning user; a day belonging to someone else behaves exactly like
// a missing one.
type DayStore interface {
	// List returns the user's days sorted by dayId descending. The key
	// format is fixed-width YYYY-MM-DD, so the lexicographic sort is
	// also chronological.
	List(ctx context.Context, userID primitive.ObjectID) ([]models.Day, error)

	// Get fetches one day by its composite key.
	Get(ctx context.Context, userID primitive.ObjectID, dayID string) (*models.Day, error)

	// Create inserts a new day and fails with ErrAlreadyExists if the
	// key is taken. The duplicate check is the unique index, not a
	// lookup, so two racing creates cannot both succeed.
	Create(ctx context.Context, userID primitive.ObjectID, day *models.Day) (*models.Day, error)

	// Upsert replaces the full document for the key, creating it when
	// absent. This is atomic at the storage layer: concurrent upserts
	// for the same new key end with exactly one stored day
	// (last-writer-wins).
	Upsert(ctx context.Context, userID primitive.ObjectID, day *models.Day) (*models.Day, error)

	// Delete removes the day permanently.
	Delete(ctx context.Context, userID primitive.ObjectID, dayID string) error

	// AddPhoto appends a photo to the slot's sequence, assigning an id
	// when the client did not send one, and stamps the server time.
	AddPhoto(ctx context.Context, userID primitive.ObjectID, dayID, slot string, photo models.MealPhoto) (*models.Day, error)

	// RemovePhoto filters the photo with the given id out of the slot.
	// An unknown photo id is a no-op, not an error.
	RemovePhoto(ctx context.Context, userID primitive.ObjectID, dayID, slot, photoID string) (*models.Day, error)
}
