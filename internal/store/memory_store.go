package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/onursaribiyik/daily-tracker/internal/models"
)

// MemoryDayStore keeps Day records in process memory behind a mutex. It
// honors the same composite-key contract as the Mongo store and backs
// the handler and contract tests, which must run without a database.
type MemoryDayStore struct {
	mu   sync.Mutex
	days map[memoryKey]models.Day
}

type memoryKey struct {
	userID string
	dayID  string
}

func NewMemoryDayStore() *MemoryDayStore {
	return &MemoryDayStore{days: make(map[memoryKey]models.Day)}
}

func (s *MemoryDayStore) List(_ context.Context, userID primitive.ObjectID) ([]models.Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	days := make([]models.Day, 0)
	for key, day := range s.days {
		if key.userID == userID.Hex() {
			days = append(days, cloneDay(day))
		}
	}

	// Fixed-width YYYY-MM-DD keys make the string sort chronological.
	sort.Slice(days, func(i, j int) bool {
		return days[i].DayID > days[j].DayID
	})
	return days, nil
}

func (s *MemoryDayStore) Get(_ context.Context, userID primitive.ObjectID, dayID string) (*models.Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	day, ok := s.days[memoryKey{userID.Hex(), dayID}]
	if !ok {
		return nil, ErrNotFound
	}
	copied := cloneDay(day)
	return &copied, nil
}

func (s *MemoryDayStore) Create(_ context.Context, userID primitive.ObjectID, day *models.Day) (*models.Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey{userID.Hex(), day.DayID}
	if _, ok := s.days[key]; ok {
		return nil, ErrAlreadyExists
	}

	now := time.Now()
	doc := cloneDay(*day)
	doc.ID = primitive.NewObjectID()
	doc.UserID = userID
	doc.CreatedAt = now
	doc.UpdatedAt = now

	s.days[key] = doc
	copied := cloneDay(doc)
	return &copied, nil
}

func (s *MemoryDayStore) Upsert(_ context.Context, userID primitive.ObjectID, day *models.Day) (*models.Day, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey{userID.Hex(), day.DayID}
	doc := cloneDay(*day)
	doc.UserID = userID
	doc.UpdatedAt = time.Now()

	if existing, ok := s.days[key]; ok {
		doc.ID = existing.ID
		doc.CreatedAt = existing.CreatedAt
	} else {
		doc.ID = primitive.NewObjectID()
		doc.CreatedAt = doc.UpdatedAt
	}

	s.days[key] = doc
	copied := cloneDay(doc)
	return &copied, nil
}

func (s *MemoryDayStore) Delete(_ context.Context, userID primitive.ObjectID, dayID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey{userID.Hex(), dayID}
	if _, ok := s.days[key]; !ok {
		return ErrNotFound
	}
	delete(s.days, key)
	return nil
}

func (s *MemoryDayStore) AddPhoto(_ context.Context, userID primitive.ObjectID, dayID, slot string, photo models.MealPhoto) (*models.Day, error) {
	if !models.IsValidMealSlot(slot) {
		return nil, ErrInvalidSlot
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey{userID.Hex(), dayID}
	day, ok := s.days[key]
	if !ok {
		return nil, ErrNotFound
	}

	if photo.ID == "" {
		photo.ID = uuid.NewString()
	}
	photo.Timestamp = time.Now()
	if photo.Calories < 0 {
		photo.Calories = 0
	}

	doc := cloneDay(day)
	photos := doc.MealPhotos.Slot(slot)
	*photos = append(*photos, photo)
	doc.UpdatedAt = time.Now()

	s.days[key] = doc
	copied := cloneDay(doc)
	return &copied, nil
}

func (s *MemoryDayStore) RemovePhoto(_ context.Context, userID primitive.ObjectID, dayID, slot, photoID string) (*models.Day, error) {
	if !models.IsValidMealSlot(slot) {
		return nil, ErrInvalidSlot
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := memoryKey{userID.Hex(), dayID}
	day, ok := s.days[key]
	if !ok {
		return nil, ErrNotFound
	}

	doc := cloneDay(day)
	photos := doc.MealPhotos.Slot(slot)
	kept := make([]models.MealPhoto, 0, len(*photos))
	for _, p := range *photos {
		if p.ID != photoID {
			kept = append(kept, p)
		}
	}
	*photos = kept
	doc.UpdatedAt = time.Now()

	s.days[key] = doc
	copied := cloneDay(doc)
	return &copied, nil
}

func cloneDay(day models.Day) models.Day {
	copied := day
	copied.Meals = models.Meals{
		Morning:      cloneEntries(day.Meals.Morning),
		MidMorning:   cloneEntries(day.Meals.MidMorning),
		Midday:       cloneEntries(day.Meals.Midday),
		MidAfternoon: cloneEntries(day.Meals.MidAfternoon),
		Evening:      cloneEntries(day.Meals.Evening),
	}
	copied.MealPhotos = models.MealPhotos{
		Morning:      clonePhotos(day.MealPhotos.Morning),
		MidMorning:   clonePhotos(day.MealPhotos.MidMorning),
		Midday:       clonePhotos(day.MealPhotos.Midday),
		MidAfternoon: clonePhotos(day.MealPhotos.MidAfternoon),
		Evening:      clonePhotos(day.MealPhotos.Evening),
	}
	copied.Activities = cloneEntries(day.Activities)
	if day.Weight != nil {
		weight := *day.Weight
		copied.Weight = &weight
	}
	return copied
}

func cloneEntries(entries models.EntryList) models.EntryList {
	if entries == nil {
		return nil
	}
	return append(models.EntryList{}, entries...)
}

func clonePhotos(photos []models.MealPhoto) []models.MealPhoto {
	if photos == nil {
		return nil
	}
	return append([]models.MealPhoto{}, photos...)
}
