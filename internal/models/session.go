package models

import "time"

// Session is a server-side login session keyed by an opaque identifier
// transported in an httpOnly cookie. Expiry slides forward on use.
type Session struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	UserID      uint      `gorm:"index;not null" json:"user_id"`
	User        *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	ExpiresAt   time.Time `gorm:"index;not null" json:"expires_at"`
	CreatedByIP string    `gorm:"size:64" json:"created_by_ip,omitempty"`
	UserAgent   string    `gorm:"size:255" json:"user_agent,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Session) TableName() string { return "user_sessions" }
