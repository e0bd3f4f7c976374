package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/onursaribiyik/daily-tracker/internal/store"
)

func newTestRouter(days store.DayStore, userID primitive.ObjectID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	authed := r.Group("/api/days", func(c *gin.Context) {
		c.Set("userId", userID)
		c.Next()
	})
	authed.GET("", ListDays(days))
	authed.GET("/:dayId", GetDay(days))
	authed.POST("", CreateDay(days))
	authed.PUT("/:dayId", UpsertDay(days))
	authed.DELETE("/:dayId", DeleteDay(days))
	authed.POST("/:dayId/photos/:mealType", AddMealPhoto(days))
	authed.DELETE("/:dayId/photos/:mealType/:photoId", RemoveMealPhoto(days))

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("{}")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestUpsertCreatesAndReplaces(t *testing.T) {
	days := store.NewMemoryDayStore()
	r := newTestRouter(days, primitive.NewObjectID())

	w := doJSON(t, r, http.MethodPut, "/api/days/2024-05-01", `{"notes":"first","meals":{"sabah":["Ekmek 150 kcal"]}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on upsert create, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPut, "/api/days/2024-05-01", `{"notes":"second","meals":{"sabah":["Ekmek 150 kcal","Peynir 100 kcal"]}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 on upsert replace, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodGet, "/api/days", "")
	var list []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("list decode failed: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("expected exactly one day after two upserts, got %d", len(list))
	}
	if list[0]["notes"] != "second" {
		t.Fatalf("expected second payload to win, got %v", list[0]["notes"])
	}
}

func TestUpsertRejectsMalformedDayID(t *testing.T) {
	days := store.NewMemoryDayStore()
	r := newTestRouter(days, primitive.NewObjectID())

	for _, dayID := range []string{"20240501", "2024-5-1", "2024-13-40", "today"} {
		w := doJSON(t, r, http.MethodPut, "/api/days/"+dayID, `{"notes":"x"}`)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for dayId %q, got %d", dayID, w.Code)
		}
	}
}

func TestCreateConflictOnDuplicateDay(t *testing.T) {
	days := store.NewMemoryDayStore()
	r := newTestRouter(days, primitive.NewObjectID())

	w := doJSON(t, r, http.MethodPost, "/api/days", `{"id":"2024-05-02"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/days", `{"id":"2024-05-02"}`)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 on duplicate create, got %d", w.Code)
	}
}

func TestValidationRejectsOutOfRangeFields(t *testing.T) {
	days := store.NewMemoryDayStore()
	r := newTestRouter(days, primitive.NewObjectID())

	cases := []string{
		`{"id":"2024-05-03","waterIntake":20000}`,
		`{"id":"2024-05-03","stepCount":-5}`,
		`{"id":"2024-05-03","weight":1500}`,
	}
	for _, body := range cases {
		w := doJSON(t, r, http.MethodPost, "/api/days", body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400 for %s, got %d", body, w.Code)
		}
	}
}

func TestGetDayComputesCalories(t *testing.T) {
	days := store.NewMemoryDayStore()
	r := newTestRouter(days, primitive.NewObjectID())

	body := `{"id":"2024-05-04","meals":{"sabah":["Bread 150 kcal"],"oglen":["Rice 200 kcal","Chicken 150 kcal"]},"totalCalories":1}`
	if w := doJSON(t, r, http.MethodPost, "/api/days", body); w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d %s", w.Code, w.Body.String())
	}

	w := doJSON(t, r, http.MethodGet, "/api/days/2024-05-04", "")
	var day map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &day); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := day["calculatedCalories"].(float64); got != 500 {
		t.Fatalf("expected calculatedCalories 500, got %v", got)
	}
	if got := day["totalCalories"].(float64); got != 1 {
		t.Fatalf("stored totalCalories must pass through untouched, got %v", got)
	}
}

func TestOwnershipHidesForeignDays(t *testing.T) {
	days := store.NewMemoryDayStore()
	owner := primitive.NewObjectID()
	stranger := primitive.NewObjectID()

	ownerRouter := newTestRouter(days, owner)
	strangerRouter := newTestRouter(days, stranger)

	if w := doJSON(t, ownerRouter, http.MethodPost, "/api/days", `{"id":"2024-05-05"}`); w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}

	if w := doJSON(t, strangerRouter, http.MethodGet, "/api/days/2024-05-05", ""); w.Code != http.StatusNotFound {
		t.Fatalf("foreign get must be 404, got %d", w.Code)
	}
	if w := doJSON(t, strangerRouter, http.MethodDelete, "/api/days/2024-05-05", ""); w.Code != http.StatusNotFound {
		t.Fatalf("foreign delete must be 404, got %d", w.Code)
	}

	w := doJSON(t, strangerRouter, http.MethodGet, "/api/days", "")
	var list []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("list decode failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("list must not leak foreign days, got %d", len(list))
	}
}

func TestListPagination(t *testing.T) {
	days := store.NewMemoryDayStore()
	r := newTestRouter(days, primitive.NewObjectID())

	for day := 1; day <= 5; day++ {
		body := fmt.Sprintf(`{"id":"2024-05-%02d"}`, day)
		if w := doJSON(t, r, http.MethodPost, "/api/days", body); w.Code != http.StatusCreated {
			t.Fatalf("create failed: %d", w.Code)
		}
	}

	w := doJSON(t, r, http.MethodGet, "/api/days?page=2&limit=2", "")
	var list []map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("list decode failed: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 days on page 2, got %d", len(list))
	}
	// Newest first: page 2 of size 2 holds days 3 and 2.
	if list[0]["id"] != "2024-05-03" || list[1]["id"] != "2024-05-02" {
		t.Fatalf("unexpected page content: %v, %v", list[0]["id"], list[1]["id"])
	}

	if w := doJSON(t, r, http.MethodGet, "/api/days?page=0", ""); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for page=0, got %d", w.Code)
	}
}

func TestPhotoEndpoints(t *testing.T) {
	days := store.NewMemoryDayStore()
	r := newTestRouter(days, primitive.NewObjectID())

	if w := doJSON(t, r, http.MethodPost, "/api/days", `{"id":"2024-05-06"}`); w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/days/2024-05-06/photos/oglen", `{"photo":{"url":"/uploads/p.jpg","calories":120}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("add photo failed: %d %s", w.Code, w.Body.String())
	}

	var day map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &day); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := day["calculatedCalories"].(float64); got != 120 {
		t.Fatalf("expected photo calories in total, got %v", got)
	}

	photos := day["mealPhotos"].(map[string]interface{})["oglen"].([]interface{})
	photoID := photos[0].(map[string]interface{})["id"].(string)
	if photoID == "" {
		t.Fatal("expected generated photo id")
	}

	w = doJSON(t, r, http.MethodDelete, "/api/days/2024-05-06/photos/oglen/"+photoID, "")
	if w.Code != http.StatusOK {
		t.Fatalf("remove photo failed: %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &day); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if got := day["calculatedCalories"].(float64); got != 0 {
		t.Fatalf("expected total back at 0 after removal, got %v", got)
	}
}

func TestPhotoInvalidSlot(t *testing.T) {
	days := store.NewMemoryDayStore()
	r := newTestRouter(days, primitive.NewObjectID())

	if w := doJSON(t, r, http.MethodPost, "/api/days", `{"id":"2024-05-07"}`); w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}

	w := doJSON(t, r, http.MethodPost, "/api/days/2024-05-07/photos/kahvalti", `{"photo":{"url":"/uploads/p.jpg"}}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid slot, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/days/2024-05-07/photos/oglen", `{"photo":{"url":"/uploads/p.jpg"}}`)
	if w.Code != http.StatusOK {
		t.Fatalf("valid slot must still work after rejection, got %d", w.Code)
	}
}

func TestPhotoOnMissingDay(t *testing.T) {
	days := store.NewMemoryDayStore()
	r := newTestRouter(days, primitive.NewObjectID())

	w := doJSON(t, r, http.MethodPost, "/api/days/2024-05-08/photos/oglen", `{"photo":{"url":"/uploads/p.jpg"}}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing day, got %d", w.Code)
	}
}

func TestDeleteDay(t *testing.T) {
	days := store.NewMemoryDayStore()
	r := newTestRouter(days, primitive.NewObjectID())

	if w := doJSON(t, r, http.MethodPost, "/api/days", `{"id":"2024-05-09"}`); w.Code != http.StatusCreated {
		t.Fatalf("create failed: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/api/days/2024-05-09", ""); w.Code != http.StatusOK {
		t.Fatalf("delete failed: %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodDelete, "/api/days/2024-05-09", ""); w.Code != http.StatusNotFound {
		t.Fatalf("second delete must be 404, got %d", w.Code)
	}
}
