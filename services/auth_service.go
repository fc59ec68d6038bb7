package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const MinPasswordLength = 8

var (
	ErrPasswordTooShort  = errors.New("password must be at least 8 characters")
	ErrInvalidCredential = errors.New("invalid credentials")
)

// AuthService handles customer credential operations
type AuthService struct {
	cost int
}

// NewAuthService creates a new auth service
func NewAuthService() *AuthService {
	return &AuthService{cost: bcrypt.DefaultCost}
}

// ════════════════════════════════════════════════════════════
// Password Management
// ════════════════════════════════════════════════════════════

// HashPassword validates the length and returns a bcrypt hash
func (s *AuthService) HashPassword(password string) (string, error) {
	if !s.ValidatePassword(password) {
		return "", ErrPasswordTooShort
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword checks if a password matches its bcrypt hash
func (s *AuthService) VerifyPassword(hash, password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidatePassword checks the minimum length
func (s *AuthService) ValidatePassword(password string) bool {
	return len(password) >= MinPasswordLength
}

// ════════════════════════════════════════════════════════════
// OAuth state
// ════════════════════════════════════════════════════════════

// GenerateStateToken returns a 64 character hex string (32 random bytes)
func (s *AuthService) GenerateStateToken() (string, error) {
	token := make([]byte, 32)
	if _, err := rand.Read(token); err != nil {
		return "", err
	}
	return hex.EncodeToString(token), nil
}

// ════════════════════════════════════════════════════════════
// Global Instance
// ════════════════════════════════════════════════════════════

var authService *AuthService

// GetAuthService returns the global auth service instance
func GetAuthService() *AuthService {
	if authService == nil {
		authService = NewAuthService()
	}
	return authService
}
