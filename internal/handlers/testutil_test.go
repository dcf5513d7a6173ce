package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/teamtasker/backend/internal/config"
	"github.com/teamtasker/backend/internal/middleware"
	"github.com/teamtasker/backend/internal/models"
	"github.com/teamtasker/backend/internal/services"
)

const testCookieName = "teamtasker_sid"

// newTestRouter wires the full API surface against an in-memory database,
// mirroring the production route table.
func newTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.AutoMigrate(
		&models.User{},
		&models.Team{},
		&models.TeamMember{},
		&models.Task{},
		&models.Session{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	cfg := &config.Config{}
	cfg.Server.Mode = gin.TestMode
	cfg.Session.CookieName = testCookieName
	cfg.Session.TTLHours = 24

	sessions := services.NewSessionService(db, cfg.Session.TTLHours)
	authHandler := NewAuthHandler(db, sessions, cfg)
	userHandler := NewUserHandler(db)
	teamHandler := NewTeamHandler(db)
	taskHandler := NewTaskHandler(db)

	r := gin.New()
	r.GET("/health", NewHealthHandler(db).Check)
	api := r.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(middleware.AuthRequired(sessions, testCookieName))
	{
		protected.GET("/users/profile", userHandler.GetProfile)
		protected.PUT("/users/profile", userHandler.UpdateProfile)

		protected.GET("/teams", teamHandler.List)
		protected.GET("/teams/:id", teamHandler.Get)
		protected.POST("/teams", teamHandler.Create)
		protected.POST("/teams/:id/members", teamHandler.AddMember)
		protected.DELETE("/teams/:id/members/:userId", teamHandler.RemoveMember)
		protected.DELETE("/teams/:id", teamHandler.Delete)

		protected.GET("/tasks", taskHandler.List)
		protected.GET("/tasks/:id", taskHandler.Get)
		protected.POST("/tasks", taskHandler.Create)
		protected.PUT("/tasks/:id", taskHandler.Update)
		protected.DELETE("/tasks/:id", taskHandler.Delete)
	}

	return r, db
}

// doJSON performs a request with an optional JSON body and session cookie.
func doJSON(t *testing.T, r *gin.Engine, method, path, sessionID string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: sessionID})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// doRaw performs a request with a literal body, for malformed payloads the
// json package would refuse to produce.
func doRaw(t *testing.T, r *gin.Engine, method, path, sessionID, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: sessionID})
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// registerAndLogin creates an account through the API and returns the
// session cookie value from the login response.
func registerAndLogin(t *testing.T, r *gin.Engine, name, email string) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"name":     name,
		"email":    email,
		"password": "secret-password",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: status = %d, body %s", email, w.Code, w.Body.String())
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": "secret-password",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status = %d, body %s", email, w.Code, w.Body.String())
	}

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == testCookieName && cookie.Value != "" {
			return cookie.Value
		}
	}
	t.Fatalf("login %s: no session cookie in response", email)
	return ""
}

// decodeBody unmarshals a JSON response body into a map.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON response %q: %v", w.Body.String(), err)
	}
	return body
}
