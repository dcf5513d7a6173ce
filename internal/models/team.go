package models

import "time"

// Team is owned by exactly one user. The owner counts as a member for every
// authorization check without holding a TeamMember row.
type Team struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	OwnerID   uint      `gorm:"index;not null" json:"owner_id"`
	Owner     *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"owner,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (Team) TableName() string { return "teams" }
