package models

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"project-admin/core/database"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Roles a user can hold.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// Password length bounds. bcrypt ignores input past 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordLength = 72
)

// User is an account of the admin panel.
type User struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:191;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:100;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:user" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// BeforeCreate assigns a UUID when none is set.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// SetPassword validates and hashes the password.
func (u *User) SetPassword(password string, cost int) error {
	if err := ValidatePassword(password); err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

var (
	ErrInvalidName     = errors.New("name is required and must be at most 100 characters")
	ErrInvalidEmail    = errors.New("a valid email address is required")
	ErrInvalidPassword = fmt.Errorf("password must be between %d and %d characters", MinPasswordLength, MaxPasswordLength)
	ErrInvalidRole     = errors.New("role must be one of: user, admin")
)

// NormalizeName trims the name and checks its length.
func NormalizeName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" || len([]rune(name)) > 100 {
		return "", ErrInvalidName
	}
	return name, nil
}

// NormalizeEmail lower-cases the address and checks it is a bare address.
func NormalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email || len(email) > 191 {
		return "", ErrInvalidEmail
	}
	return email, nil
}

// ValidatePassword checks the password length.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLength || len(password) > MaxPasswordLength {
		return ErrInvalidPassword
	}
	return nil
}

// ValidateRole checks the role is known.
func ValidateRole(role string) error {
	if role != RoleUser && role != RoleAdmin {
		return ErrInvalidRole
	}
	return nil
}

// StoredRole returns a lookup of the current role of a user, for the auth
// middleware. A missing user yields gorm.ErrRecordNotFound.
func StoredRole(provider database.Provider) func(ctx context.Context, userID string) (string, error) {
	return func(ctx context.Context, userID string) (string, error) {
		db, err := provider.DB()
		if err != nil {
			return "", err
		}
		var user User
		if err := db.WithContext(ctx).Select("role").First(&user, "id = ?", userID).Error; err != nil {
			return "", err
		}
		return user.Role, nil
	}
}
