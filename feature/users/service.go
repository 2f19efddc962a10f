package users

import (
	"context"
	"errors"
	"fmt"

	"project-admin/core/apperr"
	"project-admin/core/database"
	authmw "project-admin/core/middleware/auth"
	"project-admin/core/response"
	projectmodels "project-admin/feature/projects/models"
	"project-admin/feature/users/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// UpdateInput is the body of PUT /:id. Nil fields are left unchanged.
type UpdateInput struct {
	Name     *string `json:"name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
	Role     *string `json:"role"`
}

// Service manages user accounts.
type Service struct {
	db     database.Provider
	cost   int
	logger *zap.Logger
}

// NewService creates a new users service.
func NewService(db database.Provider, bcryptCost int, logger *zap.Logger) *Service {
	return &Service{db: db, cost: bcryptCost, logger: logger}
}

// List returns one page of users ordered by creation time.
func (s *Service) List(ctx context.Context, page, limit, offset int) (*response.Page, error) {
	db, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	var total int64
	if err := db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	users := []models.User{}
	if err := db.WithContext(ctx).Order("created_at ASC").Order("id ASC").Limit(limit).Offset(offset).Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return &response.Page{Items: users, Total: total, Page: page, Limit: limit}, nil
}

// Get returns a single user. Non-admins may only read their own account.
func (s *Service) Get(ctx context.Context, caller authmw.Caller, id string) (*models.User, error) {
	if !caller.Admin && caller.UserID != id {
		return nil, apperr.Forbidden("Not authorized to access this user")
	}

	db, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	return s.find(ctx, db, id)
}

// Update applies the non-nil fields of in to the user.
func (s *Service) Update(ctx context.Context, caller authmw.Caller, id string, in UpdateInput) (*models.User, error) {
	if !caller.Admin && caller.UserID != id {
		return nil, apperr.Forbidden("Not authorized to update this user")
	}
	if in.Role != nil && !caller.Admin {
		return nil, apperr.Forbidden("Only admins can change roles")
	}

	db, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	user, err := s.find(ctx, db, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name, err := models.NormalizeName(*in.Name)
		if err != nil {
			return nil, apperr.BadRequest(err.Error())
		}
		user.Name = name
	}
	if in.Email != nil {
		email, err := models.NormalizeEmail(*in.Email)
		if err != nil {
			return nil, apperr.BadRequest(err.Error())
		}
		if email != user.Email {
			var taken int64
			if err := db.WithContext(ctx).Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&taken).Error; err != nil {
				return nil, fmt.Errorf("failed to check email: %w", err)
			}
			if taken > 0 {
				return nil, apperr.Conflict("Email is already in use")
			}
		}
		user.Email = email
	}
	if in.Password != nil {
		if err := user.SetPassword(*in.Password, s.cost); err != nil {
			if errors.Is(err, models.ErrInvalidPassword) {
				return nil, apperr.BadRequest(err.Error())
			}
			return nil, err
		}
	}
	if in.Role != nil {
		if err := models.ValidateRole(*in.Role); err != nil {
			return nil, apperr.BadRequest(err.Error())
		}
		if *in.Role != models.RoleAdmin && caller.UserID == id {
			return nil, apperr.BadRequest("Admins cannot remove their own admin role")
		}
		user.Role = *in.Role
	}

	if err := db.WithContext(ctx).Save(user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperr.Conflict("Email is already in use")
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User updated", zap.String("user_id", id), zap.String("by", caller.UserID))
	return user, nil
}

// Delete removes a user. Users who still own projects cannot be deleted.
func (s *Service) Delete(ctx context.Context, caller authmw.Caller, id string) error {
	if !caller.Admin {
		return apperr.Forbidden("Not authorized for this action")
	}
	if caller.UserID == id {
		return apperr.BadRequest("Admins cannot delete their own account")
	}

	db, err := s.db.DB()
	if err != nil {
		return err
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.find(ctx, tx, id); err != nil {
			return err
		}

		var owned int64
		if err := tx.Model(&projectmodels.Project{}).Where("owner_id = ?", id).Count(&owned).Error; err != nil {
			return fmt.Errorf("failed to count projects: %w", err)
		}
		if owned > 0 {
			return apperr.Conflict("User still owns projects")
		}

		if err := tx.Delete(&models.User{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
		s.logger.Info("User deleted", zap.String("user_id", id), zap.String("by", caller.UserID))
		return nil
	})
}

func (s *Service) find(ctx context.Context, db *gorm.DB, id string) (*models.User, error) {
	var user models.User
	err := db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return &user, nil
}
