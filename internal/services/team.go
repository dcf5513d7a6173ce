package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/teamtasker/backend/internal/models"
	"github.com/teamtasker/backend/pkg/response"
)

// TeamService owns the visibility predicate for all team- and task-scoped
// data: a user may act on a team iff they own it or hold a membership row.
// Every team/task operation goes through HasAccess or TeamVisibility; the
// rule lives here and nowhere else.
type TeamService struct {
	db *gorm.DB
}

func NewTeamService(db *gorm.DB) *TeamService {
	return &TeamService{db: db}
}

type CreateTeamRequest struct {
	Name string `json:"name" binding:"required,min=2,max=255"`
}

type AddMemberRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// TeamSummary is a team row annotated for the listing view: the owner's
// name and whether the requesting user is a plain member (false for teams
// they own without a membership row).
type TeamSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	OwnerID   uint      `json:"owner_id"`
	OwnerName string    `json:"owner_name"`
	IsMember  bool      `json:"is_member"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamMemberInfo is a member entry in the team detail view.
type TeamMemberInfo struct {
	ID       uint      `json:"id"`
	Name     string    `json:"name"`
	Email    string    `json:"email"`
	JoinedAt time.Time `json:"joined_at"`
}

// TeamDetail is a team plus its resolved member list.
type TeamDetail struct {
	ID        uint             `json:"id"`
	Name      string           `json:"name"`
	OwnerID   uint             `json:"owner_id"`
	OwnerName string           `json:"owner_name"`
	CreatedAt time.Time        `json:"created_at"`
	Members   []TeamMemberInfo `json:"members"`
}

// HasAccess reports whether the user owns or belongs to the team. It runs
// against the given handle so callers can evaluate it inside a transaction.
func (s *TeamService) HasAccess(tx *gorm.DB, userID, teamID uint) (bool, error) {
	var count int64
	if err := tx.Model(&models.Team{}).
		Where("id = ? AND owner_id = ?", teamID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}
	if err := tx.Model(&models.TeamMember{}).
		Where("team_id = ? AND user_id = ?", teamID, userID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// TeamVisibility returns a gorm scope constraining a query's team_id column
// to teams the user owns or belongs to. Applied by every task query so the
// predicate cannot drift between endpoints.
func (s *TeamService) TeamVisibility(userID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		memberTeams := s.db.Model(&models.TeamMember{}).
			Select("team_id").
			Where("user_id = ?", userID)
		ownedTeams := s.db.Model(&models.Team{}).
			Select("id").
			Where("owner_id = ?", userID)
		return db.Where("team_id IN (?) OR team_id IN (?)", memberTeams, ownedTeams)
	}
}

// List returns the teams visible to the user, newest first.
func (s *TeamService) List(userID uint) ([]TeamSummary, error) {
	var teams []TeamSummary
	err := s.db.Table("teams").
		Select(`teams.id, teams.name, teams.owner_id, teams.created_at,
			users.name AS owner_name,
			CASE WHEN team_members.user_id IS NULL THEN 0 ELSE 1 END AS is_member`).
		Joins("LEFT JOIN team_members ON team_members.team_id = teams.id AND team_members.user_id = ?", userID).
		Joins("LEFT JOIN users ON users.id = teams.owner_id").
		Where("teams.owner_id = ? OR team_members.user_id = ?", userID, userID).
		Order("teams.created_at DESC").
		Scan(&teams).Error
	if err != nil {
		return nil, err
	}
	if teams == nil {
		teams = []TeamSummary{}
	}
	return teams, nil
}

// Get returns a team with its member list. Unlike tasks, access denial is
// distinguishable from absence here (403 vs 404).
func (s *TeamService) Get(userID, teamID uint) (*TeamDetail, error) {
	var team models.Team
	if err := s.db.Preload("Owner").First(&team, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("team not found")
		}
		return nil, err
	}

	ok, err := s.HasAccess(s.db, userID, teamID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, response.NewForbidden("access denied")
	}

	var members []TeamMemberInfo
	if err := s.db.Table("team_members").
		Select("users.id, users.name, users.email, team_members.joined_at").
		Joins("JOIN users ON users.id = team_members.user_id").
		Where("team_members.team_id = ?", teamID).
		Order("team_members.joined_at ASC").
		Scan(&members).Error; err != nil {
		return nil, err
	}
	if members == nil {
		members = []TeamMemberInfo{}
	}

	detail := &TeamDetail{
		ID:        team.ID,
		Name:      team.Name,
		OwnerID:   team.OwnerID,
		CreatedAt: team.CreatedAt,
		Members:   members,
	}
	if team.Owner != nil {
		detail.OwnerName = team.Owner.Name
	}
	return detail, nil
}

// Create makes the user the owner of a new team. No membership row is
// written for the owner.
func (s *TeamService) Create(userID uint, req *CreateTeamRequest) (*models.Team, error) {
	name := strings.TrimSpace(req.Name)
	if n := utf8.RuneCountInString(name); n < 2 || n > 255 {
		return nil, response.NewBadRequest("name must be 2-255 characters")
	}

	team := models.Team{
		Name:    name,
		OwnerID: userID,
	}
	if err := s.db.Create(&team).Error; err != nil {
		return nil, err
	}
	return &team, nil
}

// AddMember adds the user with the given email to the team. Owner-only.
func (s *TeamService) AddMember(userID, teamID uint, req *AddMemberRequest) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.First(&team, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("team not found")
			}
			return err
		}
		if team.OwnerID != userID {
			return response.NewForbidden("only the team owner can add members")
		}

		var target models.User
		if err := tx.Where("email = ?", req.Email).First(&target).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("user with this email not found")
			}
			return err
		}

		var count int64
		if err := tx.Model(&models.TeamMember{}).
			Where("team_id = ? AND user_id = ?", teamID, target.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return response.NewConflict("user is already a team member")
		}

		member := models.TeamMember{
			TeamID: teamID,
			UserID: target.ID,
		}
		return tx.Create(&member).Error
	})
}

// RemoveMember removes a membership row. Owner-only; the owner themself is
// un-removable.
func (s *TeamService) RemoveMember(userID, teamID, targetUserID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.First(&team, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("team not found")
			}
			return err
		}
		if team.OwnerID != userID {
			return response.NewForbidden("only the team owner can remove members")
		}
		if targetUserID == team.OwnerID {
			return response.NewBadRequest("cannot remove the team owner")
		}

		result := tx.Where("team_id = ? AND user_id = ?", teamID, targetUserID).
			Delete(&models.TeamMember{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return response.NewNotFound("member not found")
		}
		return nil
	})
}

// Delete removes a team with its members and tasks in one transaction.
// The explicit ordering keeps the semantics independent of driver-level
// cascade support. Owner-only.
func (s *TeamService) Delete(userID, teamID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var team models.Team
		if err := tx.First(&team, teamID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return response.NewNotFound("team not found")
			}
			return err
		}
		if team.OwnerID != userID {
			return response.NewForbidden("only the team owner can delete the team")
		}

		if err := tx.Where("team_id = ?", teamID).Delete(&models.TeamMember{}).Error; err != nil {
			return err
		}
		if err := tx.Where("team_id = ?", teamID).Delete(&models.Task{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Team{}, teamID).Error
	})
}
