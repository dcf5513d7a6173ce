package models

import "time"

// TeamMember is the join row recording a user's membership in a team.
// The owner never has a row here.
type TeamMember struct {
	UserID   uint      `gorm:"primaryKey" json:"user_id"`
	User     *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user,omitempty"`
	TeamID   uint      `gorm:"primaryKey" json:"team_id"`
	Team     *Team     `gorm:"foreignKey:TeamID;constraint:OnDelete:CASCADE" json:"team,omitempty"`
	JoinedAt time.Time `gorm:"autoCreateTime" json:"joined_at"`
}

func (TeamMember) TableName() string { return "team_members" }
