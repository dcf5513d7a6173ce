package services

import (
	"errors"
	"testing"
	"time"

	"github.com/teamtasker/backend/internal/models"
)

func TestSession_CreateAndResolve(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, 24)
	user := createTestUser(t, db, "Alice", "alice@example.com")

	session, err := svc.Create(user.ID, "127.0.0.1", "go-test")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if session.ID == "" {
		t.Fatal("session id should not be empty")
	}

	resolved, err := svc.Resolve(session.ID)
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.ID != user.ID {
		t.Errorf("resolved user id = %d, expected %d", resolved.ID, user.ID)
	}
}

func TestSession_ResolveUnknown(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, 24)

	if _, err := svc.Resolve("no-such-session"); !errors.Is(err, ErrNoSession) {
		t.Errorf("expected ErrNoSession, got %v", err)
	}
	if _, err := svc.Resolve(""); !errors.Is(err, ErrNoSession) {
		t.Errorf("empty id: expected ErrNoSession, got %v", err)
	}
}

func TestSession_SlidingExpiry(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, 24)
	user := createTestUser(t, db, "Alice", "alice@example.com")

	session, _ := svc.Create(user.ID, "", "")

	// Age the session artificially, then resolve and verify the expiry
	// moved forward again.
	stale := time.Now().Add(1 * time.Hour)
	db.Model(&models.Session{}).Where("id = ?", session.ID).Update("expires_at", stale)

	if _, err := svc.Resolve(session.ID); err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	var refreshed models.Session
	db.First(&refreshed, "id = ?", session.ID)
	if !refreshed.ExpiresAt.After(stale.Add(time.Hour)) {
		t.Errorf("expiry did not slide forward: %v", refreshed.ExpiresAt)
	}
}

func TestSession_ExpiredIsInvalidAndRemoved(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, 24)
	user := createTestUser(t, db, "Alice", "alice@example.com")

	session, _ := svc.Create(user.ID, "", "")
	db.Model(&models.Session{}).Where("id = ?", session.ID).
		Update("expires_at", time.Now().Add(-time.Minute))

	if _, err := svc.Resolve(session.ID); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession for expired session, got %v", err)
	}

	var count int64
	db.Model(&models.Session{}).Where("id = ?", session.ID).Count(&count)
	if count != 0 {
		t.Error("expired session row should be removed on resolve")
	}
}

func TestSession_RevokeIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, 24)
	user := createTestUser(t, db, "Alice", "alice@example.com")

	session, _ := svc.Create(user.ID, "", "")

	if err := svc.Revoke(session.ID); err != nil {
		t.Fatalf("first Revoke() error = %v", err)
	}
	if err := svc.Revoke(session.ID); err != nil {
		t.Fatalf("second Revoke() error = %v", err)
	}
	if err := svc.Revoke(""); err != nil {
		t.Fatalf("Revoke with empty id error = %v", err)
	}

	if _, err := svc.Resolve(session.ID); !errors.Is(err, ErrNoSession) {
		t.Errorf("revoked session should not resolve, got %v", err)
	}
}

func TestSession_PurgeExpired(t *testing.T) {
	db := setupTestDB(t)
	svc := NewSessionService(db, 24)
	user := createTestUser(t, db, "Alice", "alice@example.com")

	live, _ := svc.Create(user.ID, "", "")
	dead, _ := svc.Create(user.ID, "", "")
	db.Model(&models.Session{}).Where("id = ?", dead.ID).
		Update("expires_at", time.Now().Add(-time.Hour))

	deleted, err := svc.PurgeExpired()
	if err != nil {
		t.Fatalf("PurgeExpired() error = %v", err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, expected 1", deleted)
	}

	if _, err := svc.Resolve(live.ID); err != nil {
		t.Errorf("live session should survive purge, got %v", err)
	}
}
