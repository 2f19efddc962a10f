package auth

import (
	"context"
	"errors"
	"fmt"

	"project-admin/core/apperr"
	"project-admin/core/database"
	"project-admin/core/token"
	"project-admin/feature/users/models"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RegisterInput is the body of POST /register.
type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginInput is the body of POST /login.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is returned after a successful registration or login.
type Session struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// Service handles account registration and login.
type Service struct {
	db     database.Provider
	tokens *token.Issuer
	cost   int
	logger *zap.Logger

	// dummyHash is compared against when the email is unknown so that both
	// login failure paths cost one bcrypt comparison.
	dummyHash []byte
}

// NewService creates a new auth service.
func NewService(db database.Provider, tokens *token.Issuer, cost int, logger *zap.Logger) *Service {
	if cost < bcrypt.MinCost {
		cost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte("project-admin-dummy"), cost)
	return &Service{db: db, tokens: tokens, cost: cost, logger: logger, dummyHash: dummy}
}

// Register creates a user with the default role and returns a session.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*Session, error) {
	name, err := models.NormalizeName(in.Name)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	email, err := models.NormalizeEmail(in.Email)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	user := &models.User{Name: name, Email: email, Role: models.RoleUser}
	if err := user.SetPassword(in.Password, s.cost); err != nil {
		if errors.Is(err, models.ErrInvalidPassword) {
			return nil, apperr.BadRequest(err.Error())
		}
		return nil, err
	}

	db, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	var existing int64
	if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if existing > 0 {
		return nil, apperr.Conflict("User already exists")
	}

	if err := db.WithContext(ctx).Create(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("User already exists")
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID))
	return s.session(user)
}

// Login verifies the credentials and returns a session.
func (s *Service) Login(ctx context.Context, in LoginInput) (*Session, error) {
	email, err := models.NormalizeEmail(in.Email)
	if err != nil || in.Password == "" {
		return nil, apperr.BadRequest("Email and password are required")
	}

	db, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	var user models.User
	err = db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(in.Password))
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}

	if !user.CheckPassword(in.Password) {
		return nil, apperr.Unauthorized("Invalid credentials")
	}
	return s.session(&user)
}

// Me returns the user behind the current token.
func (s *Service) Me(ctx context.Context, userID string) (*models.User, error) {
	db, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	var user models.User
	err = db.WithContext(ctx).First(&user, "id = ?", userID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Unauthorized("User no longer exists")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}

func (s *Service) session(user *models.User) (*Session, error) {
	signed, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	return &Session{Token: signed, User: user}, nil
}
