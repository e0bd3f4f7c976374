package calories

import (
	"testing"

	"github.com/onursaribiyik/daily-tracker/internal/models"
)

func TestParseEntryExtractsAnnotation(t *testing.T) {
	if got := ParseEntry("Ekmek 150 kcal"); got != 150 {
		t.Fatalf("expected 150, got %d", got)
	}
	if got := ParseEntry("Peynir 100kcal"); got != 100 {
		t.Fatalf("expected 100 without whitespace before unit, got %d", got)
	}
	if got := ParseEntry("Tavuk 150 KCAL"); got != 150 {
		t.Fatalf("expected case-insensitive match, got %d", got)
	}
}

func TestParseEntryNoAnnotation(t *testing.T) {
	for _, entry := range []string{"Elma", "", "200 kalori", "kcal"} {
		if got := ParseEntry(entry); got != 0 {
			t.Fatalf("expected 0 for %q, got %d", entry, got)
		}
	}
}

func TestParseEntryUnitMustFollowNumber(t *testing.T) {
	if got := ParseEntry("kcal150"); got != 0 {
		t.Fatalf("expected 0 for reversed unit, got %d", got)
	}
}

func TestParseEntryFirstMatchOnly(t *testing.T) {
	if got := ParseEntry("200kcal extra 300 kcal"); got != 200 {
		t.Fatalf("expected first annotation 200, got %d", got)
	}
}

func TestParseEntryIgnoresUnsuffixedNumbers(t *testing.T) {
	if got := ParseEntry("2 dilim ekmek 150 kcal"); got != 150 {
		t.Fatalf("expected suffixed number only, got %d", got)
	}
}

func TestMealCaloriesSumsEntriesAndPhotos(t *testing.T) {
	entries := []string{"Pilav 200 kcal", "Tavuk 150 kcal", "Su"}
	photos := []models.MealPhoto{
		{ID: "a", Calories: 120},
		{ID: "b", Calories: -40},
		{ID: "c"},
	}

	if got := MealCalories(entries, photos); got != 470 {
		t.Fatalf("expected 470 (350 entries + 120 photo), got %d", got)
	}
}

func TestDayTotalAcrossSlots(t *testing.T) {
	day := &models.Day{
		DayID: "2024-05-01",
		Meals: models.Meals{
			Morning: models.EntryList{"Bread 150 kcal"},
			Midday:  models.EntryList{"Rice 200 kcal", "Chicken 150 kcal"},
		},
	}

	if got := DayTotal(day); got != 500 {
		t.Fatalf("expected 500, got %d", got)
	}
}

func TestDayTotalEmptyDay(t *testing.T) {
	if got := DayTotal(&models.Day{}); got != 0 {
		t.Fatalf("expected 0 for empty day, got %d", got)
	}
	if got := DayTotal(nil); got != 0 {
		t.Fatalf("expected 0 for nil day, got %d", got)
	}
}

func TestDayTotalPhotoAddAndRemove(t *testing.T) {
	day := &models.Day{
		Meals: models.Meals{
			Evening: models.EntryList{"Makarna 250 kcal"},
		},
	}
	base := DayTotal(day)

	day.MealPhotos.Evening = append(day.MealPhotos.Evening, models.MealPhoto{ID: "p1", Calories: 120})
	if got := DayTotal(day); got != base+120 {
		t.Fatalf("expected total to rise by 120, got %d (base %d)", got, base)
	}

	day.MealPhotos.Evening = nil
	if got := DayTotal(day); got != base {
		t.Fatalf("expected total back at %d after photo removal, got %d", base, got)
	}
}

func TestAnnotateSetsDerivedField(t *testing.T) {
	day := &models.Day{
		Meals:         models.Meals{Morning: models.EntryList{"Elma 50 kcal"}},
		TotalCalories: 9999,
	}

	Annotate(day)
	if day.CalculatedCalories != 50 {
		t.Fatalf("expected derived field 50, got %d", day.CalculatedCalories)
	}
	if day.TotalCalories != 9999 {
		t.Fatal("stored legacy field must not be rewritten")
	}
}
