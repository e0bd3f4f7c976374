package models

import (
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Meal slot wire names. The five slots are fixed; any other name is
// rejected at the API boundary.
const (
	SlotMorning      = "sabah"
	SlotMidMorning   = "araOgun1"
	SlotMidday       = "oglen"
	SlotMidAfternoon = "araOgun2"
	SlotEvening      = "aksam"
)

// MealSlots lists the fixed slot set in display order.
var MealSlots = []string{SlotMorning, SlotMidMorning, SlotMidday, SlotMidAfternoon, SlotEvening}

// IsValidMealSlot reports whether name is one of the five fixed slots.
func IsValidMealSlot(name string) bool {
	for _, slot := range MealSlots {
		if slot == name {
			return true
		}
	}
	return false
}

// dayIDPattern matches the fixed-width ISO date key. The width matters:
// List sorts days by this string, which is chronological only while
// every key is exactly YYYY-MM-DD.
var dayIDPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsValidDayID reports whether id is a real calendar date in the
// YYYY-MM-DD wire format.
func IsValidDayID(id string) bool {
	if !dayIDPattern.MatchString(id) {
		return false
	}
	_, err := time.Parse("2006-01-02", id)
	return err == nil
}

// Meals holds the free-text food entries for the five fixed slots.
type Meals struct {
	Morning      EntryList `bson:"sabah" json:"sabah"`
	MidMorning   EntryList `bson:"araOgun1" json:"araOgun1"`
	Midday       EntryList `bson:"oglen" json:"oglen"`
	MidAfternoon EntryList `bson:"araOgun2" json:"araOgun2"`
	Evening      EntryList `bson:"aksam" json:"aksam"`
}

// Slot returns the entries stored under the given slot name.
func (m *Meals) Slot(name string) []string {
	switch name {
	case SlotMorning:
		return m.Morning
	case SlotMidMorning:
		return m.MidMorning
	case SlotMidday:
		return m.Midday
	case SlotMidAfternoon:
		return m.MidAfternoon
	case SlotEvening:
		return m.Evening
	}
	return nil
}

// MealPhoto is a photo attached to a meal slot, carrying the calorie
// value estimated at upload time.
type MealPhoto struct {
	ID        string    `bson:"id" json:"id"`
	URL       string    `bson:"url" json:"url"`
	Calories  int       `bson:"calories" json:"calories"`
	Timestamp time.Time `bson:"timestamp" json:"timestamp"`
}

// MealPhotos holds the per-slot photo sequences.
type MealPhotos struct {
	Morning      []MealPhoto `bson:"sabah,omitempty" json:"sabah,omitempty"`
	MidMorning   []MealPhoto `bson:"araOgun1,omitempty" json:"araOgun1,omitempty"`
	Midday       []MealPhoto `bson:"oglen,omitempty" json:"oglen,omitempty"`
	MidAfternoon []MealPhoto `bson:"araOgun2,omitempty" json:"araOgun2,omitempty"`
	Evening      []MealPhoto `bson:"aksam,omitempty" json:"aksam,omitempty"`
}

// Slot returns a pointer to the photo sequence for the given slot name,
// or nil for an unknown slot.
func (p *MealPhotos) Slot(name string) *[]MealPhoto {
	switch name {
	case SlotMorning:
		return &p.Morning
	case SlotMidMorning:
		return &p.MidMorning
	case SlotMidday:
		return &p.Midday
	case SlotMidAfternoon:
		return &p.MidAfternoon
	case SlotEvening:
		return &p.Evening
	}
	return nil
}

// Day is one calendar day's log for one user. Identity is the composite
// key (UserID, DayID); DayID is the ISO date string, not a database id.
type Day struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	DayID       string             `bson:"id" json:"id"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	Meals       Meals              `bson:"meals" json:"meals"`
	MealPhotos  MealPhotos         `bson:"mealPhotos,omitempty" json:"mealPhotos"`
	Activities  EntryList          `bson:"activities" json:"activities"`
	Notes       string             `bson:"notes" json:"notes"`
	Weight      *float64           `bson:"weight,omitempty" json:"weight,omitempty"`
	WaterIntake int                `bson:"waterIntake" json:"waterIntake"`
	StepCount   int                `bson:"stepCount" json:"stepCount"`

	// TotalCalories is the legacy stored field. It is written as-is from
	// the client and never recalculated; CalculatedCalories is the value
	// derived on read.
	TotalCalories      int `bson:"totalCalories" json:"totalCalories"`
	CalculatedCalories int `bson:"-" json:"calculatedCalories"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
