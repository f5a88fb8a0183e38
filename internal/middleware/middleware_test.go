package middleware

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"furg/internal/auth"
	"furg/internal/database"
	"furg/internal/repository"
)

func setupAuthMiddleware(t *testing.T) (*AuthMiddleware, *auth.SessionManager, int64) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.db")

	db, err := database.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	if err := db.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	t.Cleanup(func() {
		db.Close()
	})

	result, err := db.Exec(`
		INSERT INTO users (email, password_hash, name)
		VALUES (?, ?, ?)
	`, "test@example.com", "hashedpassword", "Test User")
	if err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	userID, _ := result.LastInsertId()

	sm := auth.NewSessionManager(db)
	return NewAuthMiddleware(sm, repository.NewUserRepository(db)), sm, userID
}

func TestRequireAuth_NoUser_Returns401(t *testing.T) {
	m, _, _ := setupAuthMiddleware(t)

	handler := m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("handler should not be reached without a user")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/accounts", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

func TestLoadUser_ValidSession_PutsUserInContext(t *testing.T) {
	m, sm, userID := setupAuthMiddleware(t)

	session, err := sm.Create(userID)
	if err != nil {
		t.Fatalf("creating session: %v", err)
	}

	var reached bool
	handler := m.LoadUser(m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		user := GetUser(r)
		if user == nil {
			t.Fatal("GetUser() returned nil inside protected handler")
		}
		if user.ID != userID {
			t.Errorf("user.ID = %d, want %d", user.ID, userID)
		}
	})))

	req := httptest.NewRequest(http.MethodGet, "/api/accounts", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: session.ID})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !reached {
		t.Error("protected handler was not reached with a valid session")
	}
}

func TestLoadUser_InvalidSession_ClearsCookieAndContinues(t *testing.T) {
	m, _, _ := setupAuthMiddleware(t)

	handler := m.LoadUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if GetUser(r) != nil {
			t.Error("GetUser() should return nil for an invalid session")
		}
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "bogus"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	cleared := false
	for _, c := range rec.Result().Cookies() {
		if c.Name == SessionCookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("invalid session cookie should be cleared")
	}
}
