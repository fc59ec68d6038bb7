package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	ProviderCredentials = "credentials"
	ProviderGoogle      = "google"

	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

type User struct {
	ID            uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Email         string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null"`
	Name          string    `json:"name" gorm:"type:varchar(255);not null;default:''"`
	PasswordHash  *string   `json:"-" gorm:"column:password_hash;type:text"`
	GoogleID      *string   `json:"googleId,omitempty" gorm:"column:google_id;type:varchar(255);uniqueIndex"`
	Provider      string    `json:"provider" gorm:"type:varchar(50);default:'credentials'"`
	Role          string    `json:"role" gorm:"type:varchar(20);default:'USER'"`
	EmailVerified bool      `json:"emailVerified" gorm:"column:email_verified;default:false"`
	Avatar        *string   `json:"avatar,omitempty" gorm:"type:text"`
	CreatedAt     time.Time `json:"createdAt" gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.Must(uuid.NewV7())
	}
	return nil
}

// UserResponse is the public-facing user data
type UserResponse struct {
	ID            uuid.UUID `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Provider      string    `json:"provider"`
	Role          string    `json:"role"`
	EmailVerified bool      `json:"email_verified"`
	Avatar        *string   `json:"avatar,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// ToResponse converts User to UserResponse
func (u *User) ToResponse() UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Provider:      u.Provider,
		Role:          u.Role,
		EmailVerified: u.EmailVerified,
		Avatar:        u.Avatar,
		CreatedAt:     u.CreatedAt,
	}
}

// GoogleUserInfo represents data from Google OAuth
type GoogleUserInfo struct {
	Sub           string `json:"sub"` // Google user ID
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// AuthResponse is returned after successful authentication
type AuthResponse struct {
	User  UserResponse `json:"user"`
	Token string       `json:"token"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginEvent is appended on every successful sign-in.
type LoginEvent struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;index"`
	LoggedInAt time.Time `json:"loggedInAt" gorm:"not null;index"`
	Provider   string    `json:"provider" gorm:"type:varchar(50)"`
	IPAddress  string    `json:"ipAddress" gorm:"type:varchar(64)"`
	UserAgent  string    `json:"userAgent" gorm:"type:text"`
	DeviceType string    `json:"deviceType" gorm:"type:varchar(20)"`
	Browser    string    `json:"browser" gorm:"type:varchar(50)"`
	OS         string    `json:"os" gorm:"column:os;type:varchar(50)"`
}

func (LoginEvent) TableName() string {
	return "login_events"
}
