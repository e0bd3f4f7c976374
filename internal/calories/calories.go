// Package calories is the single home of the kcal-annotation parsing
// rule. Every layer that needs a calorie total (stored documents,
// API responses) goes through these functions so the rule cannot drift
// between copies.
package calories

import (
	"regexp"
	"strconv"

	"github.com/onursaribiyik/daily-tracker/internal/models"
)

// kcalPattern matches a run of digits loosely followed by the literal
// "kcal". The unit must come after the number: "kcal150" is not an
// annotation.
var kcalPattern = regexp.MustCompile(`(?i)(\d+)\s*kcal`)

// ParseEntry extracts the calorie annotation from a free-text food
// entry. Only the first annotation in the string counts; text without
// one contributes 0 rather than failing, since entries are not required
// to carry calorie information.
func ParseEntry(entry string) int {
	match := kcalPattern.FindStringSubmatch(entry)
	if match == nil {
		return 0
	}
	value, err := strconv.Atoi(match[1])
	if err != nil {
		return 0
	}
	return value
}

// MealCalories sums the annotations of a slot's text entries plus the
// calorie values of its photos. Negative photo values clamp to 0.
func MealCalories(entries []string, photos []models.MealPhoto) int {
	total := 0
	for _, entry := range entries {
		total += ParseEntry(entry)
	}
	for _, photo := range photos {
		if photo.Calories > 0 {
			total += photo.Calories
		}
	}
	return total
}

// DayTotal computes the day's calorie total across the five fixed meal
// slots. The stored totalCalories field is never consulted; the total
// is always derived from the entries and photos themselves.
func DayTotal(day *models.Day) int {
	if day == nil {
		return 0
	}
	total := 0
	for _, slot := range models.MealSlots {
		var photos []models.MealPhoto
		if p := day.MealPhotos.Slot(slot); p != nil {
			photos = *p
		}
		total += MealCalories(day.Meals.Slot(slot), photos)
	}
	return total
}

// Annotate fills the derived CalculatedCalories field before a day is
// returned to the client.
func Annotate(day *models.Day) {
	if day == nil {
		return
	}
	day.CalculatedCalories = DayTotal(day)
}
