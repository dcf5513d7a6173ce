package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/teamtasker/backend/internal/models"
	"github.com/teamtasker/backend/pkg/logger"
)

// ErrNoSession is returned when a session id does not resolve to a live
// session. The caller treats the request as anonymous.
var ErrNoSession = errors.New("no valid session")

type SessionService struct {
	db   *gorm.DB
	ttl  time.Duration
	cron *cron.Cron
}

func NewSessionService(db *gorm.DB, ttlHours int) *SessionService {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &SessionService{
		db:  db,
		ttl: time.Duration(ttlHours) * time.Hour,
	}
}

// TTL returns the configured session lifetime.
func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

// Create opens a new session for the user and returns its opaque id.
func (s *SessionService) Create(userID uint, clientIP, userAgent string) (*models.Session, error) {
	session := models.Session{
		ID:          uuid.NewString(),
		UserID:      userID,
		ExpiresAt:   time.Now().Add(s.ttl),
		CreatedByIP: clientIP,
		UserAgent:   userAgent,
	}
	if err := s.db.Create(&session).Error; err != nil {
		return nil, err
	}
	return &session, nil
}

// Resolve maps a session id to its user and slides the expiry forward.
// Expired sessions are removed on sight.
func (s *SessionService) Resolve(sessionID string) (*models.User, error) {
	if sessionID == "" {
		return nil, ErrNoSession
	}

	var session models.Session
	if err := s.db.First(&session, "id = ?", sessionID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		s.db.Delete(&models.Session{}, "id = ?", session.ID)
		return nil, ErrNoSession
	}

	var user models.User
	if err := s.db.First(&user, session.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Session outlived its user; drop it.
			s.db.Delete(&models.Session{}, "id = ?", session.ID)
			return nil, ErrNoSession
		}
		return nil, err
	}

	// Sliding expiry
	s.db.Model(&models.Session{}).
		Where("id = ?", session.ID).
		Update("expires_at", time.Now().Add(s.ttl))

	return &user, nil
}

// Revoke deletes a session. Revoking an unknown or already-revoked id is
// not an error (logout is idempotent).
func (s *SessionService) Revoke(sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.db.Delete(&models.Session{}, "id = ?", sessionID).Error
}

// PurgeExpired removes all sessions past their expiry and returns the count.
func (s *SessionService) PurgeExpired() (int64, error) {
	result := s.db.Where("expires_at < ?", time.Now()).Delete(&models.Session{})
	return result.RowsAffected, result.Error
}

// StartCleanupScheduler purges expired sessions hourly.
func (s *SessionService) StartCleanupScheduler() {
	s.cron = cron.New()

	if _, err := s.cron.AddFunc("@hourly", func() {
		deleted, err := s.PurgeExpired()
		if err != nil {
			logger.Error().Err(err).Msg("session cleanup failed")
			return
		}
		if deleted > 0 {
			logger.Infof("session cleanup removed %d expired sessions", deleted)
		}
	}); err != nil {
		logger.Error().Err(err).Msg("failed to schedule session cleanup")
		return
	}

	s.cron.Start()
	logger.Info().Msg("session cleanup scheduler started")
}

// StopCleanupScheduler stops the cleanup cron if it was started.
func (s *SessionService) StopCleanupScheduler() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
