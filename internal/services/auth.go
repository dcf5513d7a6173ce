package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"gorm.io/gorm"

	"github.com/teamtasker/backend/internal/models"
	"github.com/teamtasker/backend/internal/utils"
	"github.com/teamtasker/backend/pkg/response"
)

type AuthService struct {
	db *gorm.DB
}

func NewAuthService(db *gorm.DB) *AuthService {
	return &AuthService{db: db}
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required,min=1,max=255"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type UpdateProfileRequest struct {
	Name string `json:"name" binding:"required,min=1,max=255"`
}

// validateName re-checks the display-name bounds on the trimmed value;
// binding validates the raw payload, so whitespace padding slips past it.
func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > 255 {
		return "", response.NewBadRequest("name must be 1-255 characters")
	}
	return name, nil
}

// Register creates a new user. Duplicate emails fail with a conflict.
func (s *AuthService) Register(req *RegisterRequest) (*models.User, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, response.NewConflict("email is already registered")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:     name,
		Email:    req.Email,
		Password: hash,
	}
	if err := s.db.Create(&user).Error; err != nil {
		// Unique constraint can still trip under a registration race.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, response.NewConflict("email is already registered")
		}
		return nil, err
	}

	return &user, nil
}

// Login verifies an email/password pair. Unknown email and wrong password
// return the same message so callers cannot enumerate accounts.
func (s *AuthService) Login(req *LoginRequest) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewUnauthorized("invalid email or password")
		}
		return nil, err
	}

	if !utils.CheckPassword(req.Password, user.Password) {
		return nil, response.NewUnauthorized("invalid email or password")
	}

	return &user, nil
}

// GetUserByID fetches a user record without the password hash column loaded
// into responses (the model never serializes it).
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}
	return &user, nil
}

// UpdateProfile changes the only mutable user field.
func (s *AuthService) UpdateProfile(userID uint, req *UpdateProfileRequest) (*models.User, error) {
	name, err := validateName(req.Name)
	if err != nil {
		return nil, err
	}

	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, response.NewNotFound("user not found")
		}
		return nil, err
	}

	user.Name = name
	if err := s.db.Save(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
