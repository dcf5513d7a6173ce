package services

import (
	"errors"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/teamtasker/backend/internal/models"
	"github.com/teamtasker/backend/pkg/response"
)

// setupTestDB opens a per-test in-memory SQLite database with the full
// schema migrated.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// createTestUser inserts a user directly. The password hash is a dummy;
// credential checks are exercised through AuthService tests only.
func createTestUser(t *testing.T, db *gorm.DB, name, email string) *models.User {
	t.Helper()

	user := models.User{
		Name:     name,
		Email:    email,
		Password: "$2a$10$testtesttesttesttesttesttesttesttesttesttesttesttesttes",
	}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return &user
}

func createTestTeam(t *testing.T, db *gorm.DB, name string, ownerID uint) *models.Team {
	t.Helper()

	team := models.Team{Name: name, OwnerID: ownerID}
	if err := db.Create(&team).Error; err != nil {
		t.Fatalf("failed to create team %s: %v", name, err)
	}
	return &team
}

func addTestMember(t *testing.T, db *gorm.DB, teamID, userID uint) {
	t.Helper()

	member := models.TeamMember{TeamID: teamID, UserID: userID}
	if err := db.Create(&member).Error; err != nil {
		t.Fatalf("failed to add member %d to team %d: %v", userID, teamID, err)
	}
}

// assertAppError fails unless err is an *AppError with the given status.
func assertAppError(t *testing.T, err error, status int) {
	t.Helper()

	if err == nil {
		t.Fatalf("expected error with status %d, got nil", status)
	}
	var appErr *response.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *response.AppError, got %T: %v", err, err)
	}
	if appErr.HTTPStatus != status {
		t.Fatalf("expected status %d, got %d (%s)", status, appErr.HTTPStatus, appErr.Message)
	}
}
