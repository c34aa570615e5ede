package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"spotdrop/db"

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

func register(t *testing.T, r *gin.Engine, userID int, token string) *httptest.ResponseRecorder {
	t.Helper()
	body, _ := json.Marshal(gin.H{"userId": userID, "pushToken": token})
	req := httptest.NewRequest(http.MethodPost, "/api/push-token", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRegisterPushTokenUpserts(t *testing.T) {
	setupTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/push-token", HandleRegisterPushToken)

	if w := register(t, r, 1, "token-a"); w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	// Re-registering replaces the stored token instead of adding a row.
	if w := register(t, r, 1, "token-b"); w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}

	var token string
	if err := db.DB.QueryRow(`SELECT token FROM push_tokens WHERE user_id = 1`).Scan(&token); err != nil {
		t.Fatalf("failed to read token: %v", err)
	}
	if token != "token-b" {
		t.Fatalf("token = %q, want token-b", token)
	}

	var count int
	if err := db.DB.QueryRow(`SELECT COUNT(*) FROM push_tokens`).Scan(&count); err != nil {
		t.Fatalf("failed to count tokens: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one row, got %d", count)
	}
}

func TestRegisterPushTokenRequiresToken(t *testing.T) {
	setupTestDB(t)
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/api/push-token", HandleRegisterPushToken)

	if w := register(t, r, 1, ""); w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}
