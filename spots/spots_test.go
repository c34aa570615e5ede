package spots

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"spotdrop/db"
	"spotdrop/types"

	"github.com/gin-gonic/gin"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	if err := db.InitDB(filepath.Join(t.TempDir(), "test.db")); err != nil {
		t.Fatalf("failed to init test database: %v", err)
	}
	t.Cleanup(db.CloseDB)
	if _, err := db.DB.Exec(`INSERT INTO users (username, email, password) VALUES ('alice', 'alice@example.com', 'x')`); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/api/spot", HandleGetSpots)
	r.GET("/api/spot/user/:userId", HandleGetSpotsByUser)
	r.POST("/api/spot", HandleCreateSpot)
	r.DELETE("/api/spot/:id", HandleDeleteSpot)
	r.POST("/api/mark-as-picked-up", HandleMarkPickedUp)
	r.GET("/api/category", HandleGetCategories)
	return r
}

func createSpot(t *testing.T, r *gin.Engine, fields map[string]string) int {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			t.Fatalf("failed to write field %s: %v", k, err)
		}
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/spot", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body = %s", w.Code, w.Body.String())
	}

	var resp struct {
		MaterialID int `json:"MaterialID"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp.MaterialID
}

func getSpots(t *testing.T, r *gin.Engine, path string) []types.Spot {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("get status = %d, body = %s", w.Code, w.Body.String())
	}
	var spots []types.Spot
	if err := json.Unmarshal(w.Body.Bytes(), &spots); err != nil {
		t.Fatalf("failed to decode spots: %v", err)
	}
	return spots
}

func TestCreateAndListSpots(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()

	id := createSpot(t, r, map[string]string{
		"title":     "Old Couch",
		"latitude":  "52.37",
		"longitude": "5.21",
		"category":  "Furniture",
		"userId":    "1",
	})
	if id == 0 {
		t.Fatalf("expected an assigned spot id")
	}

	spots := getSpots(t, r, "/api/spot")
	if len(spots) != 1 {
		t.Fatalf("expected 1 spot, got %d", len(spots))
	}
	s := spots[0]
	if s.Title != "Old Couch" || s.Category != "Furniture" || s.Status != "available" {
		t.Fatalf("unexpected spot: %+v", s)
	}
	if s.Latitude != 52.37 || s.Longitude != 5.21 {
		t.Fatalf("coords = (%v, %v)", s.Latitude, s.Longitude)
	}
}

func TestCreateSpotRequiresTitle(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("userId", "1")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/spot", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestCreateSpotStoresPhoto(t *testing.T) {
	setupTestDB(t)
	uploadDir := t.TempDir()
	t.Setenv("UPLOAD_DIR", uploadDir)
	r := setupRouter()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	mw.WriteField("title", "Lamp")
	mw.WriteField("userId", "1")
	part, err := mw.CreateFormFile("photo", "lamp.jpg")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	io.WriteString(part, "jpegdata")
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/spot", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	spots := getSpots(t, r, "/api/spot")
	if spots[0].Photo == nil {
		t.Fatalf("expected a stored photo name")
	}
	if filepath.Ext(*spots[0].Photo) != ".jpg" {
		t.Fatalf("photo name = %q, want .jpg extension", *spots[0].Photo)
	}
	stored, err := filepath.Glob(filepath.Join(uploadDir, "*.jpg"))
	if err != nil || len(stored) != 1 {
		t.Fatalf("expected one stored photo file, got %v (%v)", stored, err)
	}
}

func TestGetSpotsByUser(t *testing.T) {
	setupTestDB(t)
	if _, err := db.DB.Exec(`INSERT INTO users (username, email, password) VALUES ('bob', 'bob@example.com', 'x')`); err != nil {
		t.Fatalf("failed to seed user: %v", err)
	}
	r := setupRouter()

	createSpot(t, r, map[string]string{"title": "Couch", "userId": "1"})
	createSpot(t, r, map[string]string{"title": "Bike", "userId": "2"})

	spots := getSpots(t, r, "/api/spot/user/2")
	if len(spots) != 1 || spots[0].Title != "Bike" {
		t.Fatalf("unexpected spots for user 2: %+v", spots)
	}
}

func TestDeleteSpot(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()

	id := createSpot(t, r, map[string]string{"title": "Couch", "userId": "1"})

	req := httptest.NewRequest(http.MethodDelete, "/api/spot/"+strconv.Itoa(id), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("delete status = %d, body = %s", w.Code, w.Body.String())
	}

	if spots := getSpots(t, r, "/api/spot"); len(spots) != 0 {
		t.Fatalf("spot should be gone, got %+v", spots)
	}

	// Deleting again reports not found.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req.Clone(req.Context()))
	if w.Code != http.StatusNotFound {
		t.Fatalf("second delete status = %d, want 404", w.Code)
	}
}

func TestMarkPickedUp(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()

	id := createSpot(t, r, map[string]string{"title": "Couch", "userId": "1"})

	body, _ := json.Marshal(gin.H{"materialId": id})
	req := httptest.NewRequest(http.MethodPost, "/api/mark-as-picked-up", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	spots := getSpots(t, r, "/api/spot")
	if spots[0].Status != "picked_up" {
		t.Fatalf("status = %q, want picked_up", spots[0].Status)
	}
}

func TestMarkPickedUpUnknownSpot(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()

	body, _ := json.Marshal(gin.H{"materialId": 999})
	req := httptest.NewRequest(http.MethodPost, "/api/mark-as-picked-up", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}

func TestGetCategories(t *testing.T) {
	setupTestDB(t)
	r := setupRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/category", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
	var categories []string
	if err := json.Unmarshal(w.Body.Bytes(), &categories); err != nil {
		t.Fatalf("failed to decode categories: %v", err)
	}
	if len(categories) == 0 {
		t.Fatalf("expected seeded categories")
	}
	for i := 1; i < len(categories); i++ {
		if categories[i-1] > categories[i] {
			t.Fatalf("categories not sorted: %v", categories)
		}
	}
}
