package projects

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"project-admin/core/apperr"
	"project-admin/core/database"
	authmw "project-admin/core/middleware/auth"
	"project-admin/core/response"
	"project-admin/core/storage"
	"project-admin/feature/projects/models"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var errStorageDisabled = apperr.Unavailable("Attachment storage is not configured")

// CreateInput is the body of POST /.
type CreateInput struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateInput is the body of PUT /:id. Nil fields are left unchanged.
type UpdateInput struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

// StatusInput is the body of PATCH /:id/status.
type StatusInput struct {
	Status string `json:"status"`
}

// ListFilter narrows a project listing.
type ListFilter struct {
	Status string
	Page   int
	Limit  int
	Offset int
}

// Upload describes a file being attached to a project.
type Upload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// Service manages projects and their attachments.
type Service struct {
	db        database.Provider
	store     storage.Client
	bucket    string
	maxUpload int64
	logger    *zap.Logger
}

// NewService creates a new projects service. store may be nil, in which case
// attachment operations fail with 503.
func NewService(db database.Provider, store storage.Client, cfg storage.Config, logger *zap.Logger) *Service {
	return &Service{
		db:        db,
		store:     store,
		bucket:    cfg.Bucket,
		maxUpload: cfg.MaxUploadBytes,
		logger:    logger,
	}
}

// List returns one page of projects visible to the caller, newest first.
func (s *Service) List(ctx context.Context, caller authmw.Caller, filter ListFilter) (*response.Page, error) {
	if filter.Status != "" {
		if err := models.ValidateStatus(filter.Status); err != nil {
			return nil, apperr.BadRequest(err.Error())
		}
	}

	db, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	visible := func(tx *gorm.DB) *gorm.DB {
		if !caller.Admin {
			tx = tx.Where("owner_id = ?", caller.UserID)
		}
		if filter.Status != "" {
			tx = tx.Where("status = ?", filter.Status)
		}
		return tx
	}

	var total int64
	if err := db.WithContext(ctx).Model(&models.Project{}).Scopes(visible).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count projects: %w", err)
	}

	projects := []models.Project{}
	err = db.WithContext(ctx).Scopes(visible).
		Order("created_at DESC").Order("id ASC").
		Limit(filter.Limit).Offset(filter.Offset).
		Find(&projects).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}

	return &response.Page{Items: projects, Total: total, Page: filter.Page, Limit: filter.Limit}, nil
}

// Create stores a new project owned by the caller.
func (s *Service) Create(ctx context.Context, caller authmw.Caller, in CreateInput) (*models.Project, error) {
	name, err := models.NormalizeName(in.Name)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	description, err := models.NormalizeDescription(in.Description)
	if err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	status := in.Status
	if status == "" {
		status = models.StatusPlanned
	}
	if err := models.ValidateStatus(status); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	db, err := s.db.DB()
	if err != nil {
		return nil, err
	}

	project := &models.Project{Name: name, Description: description, Status: status, OwnerID: caller.UserID}
	if err := db.WithContext(ctx).Create(project).Error; err != nil {
		return nil, fmt.Errorf("failed to create project: %w", err)
	}

	s.logger.Info("Project created", zap.String("project_id", project.ID), zap.String("owner_id", caller.UserID))
	return project, nil
}

// Get returns a project the caller owns, or any project for admins.
func (s *Service) Get(ctx context.Context, caller authmw.Caller, id string) (*models.Project, error) {
	db, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	return s.authorized(ctx, db, caller, id)
}

// Update applies the non-nil fields of in to the project.
func (s *Service) Update(ctx context.Context, caller authmw.Caller, id string, in UpdateInput) (*models.Project, error) {
	db, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	project, err := s.authorized(ctx, db, caller, id)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		name, err := models.NormalizeName(*in.Name)
		if err != nil {
			return nil, apperr.BadRequest(err.Error())
		}
		project.Name = name
	}
	if in.Description != nil {
		description, err := models.NormalizeDescription(*in.Description)
		if err != nil {
			return nil, apperr.BadRequest(err.Error())
		}
		project.Description = description
	}
	if in.Status != nil {
		if err := models.ValidateStatus(*in.Status); err != nil {
			return nil, apperr.BadRequest(err.Error())
		}
		project.Status = *in.Status
	}

	if err := db.WithContext(ctx).Omit("Attachments").Save(project).Error; err != nil {
		return nil, fmt.Errorf("failed to update project: %w", err)
	}
	return project, nil
}

// UpdateStatus moves the project to another lifecycle state.
func (s *Service) UpdateStatus(ctx context.Context, caller authmw.Caller, id, status string) (*models.Project, error) {
	if err := models.ValidateStatus(status); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}

	db, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	project, err := s.authorized(ctx, db, caller, id)
	if err != nil {
		return nil, err
	}

	if err := db.WithContext(ctx).Model(project).Update("status", status).Error; err != nil {
		return nil, fmt.Errorf("failed to update project status: %w", err)
	}
	project.Status = status
	s.logger.Info("Project status changed", zap.String("project_id", id), zap.String("status", status))
	return project, nil
}

// Delete removes the project and its attachments. Stored objects are removed
// after the rows are gone; failures there are logged and left behind.
func (s *Service) Delete(ctx context.Context, caller authmw.Caller, id string) error {
	db, err := s.db.DB()
	if err != nil {
		return err
	}

	var keys []string
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := s.authorized(ctx, tx, caller, id); err != nil {
			return err
		}
		if err := tx.Model(&models.Attachment{}).Where("project_id = ?", id).Pluck("object_key", &keys).Error; err != nil {
			return fmt.Errorf("failed to list attachments: %w", err)
		}
		if err := tx.Where("project_id = ?", id).Delete(&models.Attachment{}).Error; err != nil {
			return fmt.Errorf("failed to delete attachments: %w", err)
		}
		if err := tx.Delete(&models.Project{}, "id = ?", id).Error; err != nil {
			return fmt.Errorf("failed to delete project: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.removeObjects(ctx, keys)
	s.logger.Info("Project deleted", zap.String("project_id", id), zap.Int("attachments", len(keys)))
	return nil
}

// AddAttachment uploads a file and records it on the project.
func (s *Service) AddAttachment(ctx context.Context, caller authmw.Caller, projectID string, up Upload) (*models.Attachment, error) {
	if s.store == nil {
		return nil, errStorageDisabled
	}
	if s.maxUpload > 0 && up.Size > s.maxUpload {
		return nil, apperr.New(http.StatusRequestEntityTooLarge, fmt.Sprintf("File exceeds the maximum size of %d bytes", s.maxUpload))
	}

	db, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	if _, err := s.authorized(ctx, db, caller, projectID); err != nil {
		return nil, err
	}

	contentType := up.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	attachment := &models.Attachment{
		ID:          uuid.NewString(),
		ProjectID:   projectID,
		FileName:    models.SanitizeFileName(up.FileName),
		ContentType: contentType,
		Size:        up.Size,
		UploadedBy:  caller.UserID,
	}
	attachment.ObjectKey = models.ObjectKeyFor(projectID, attachment.ID, attachment.FileName)

	_, err = s.store.PutObject(ctx, s.bucket, attachment.ObjectKey, up.Content, up.Size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload attachment: %w", err)
	}

	if err := db.WithContext(ctx).Create(attachment).Error; err != nil {
		s.removeObjects(ctx, []string{attachment.ObjectKey})
		return nil, fmt.Errorf("failed to record attachment: %w", err)
	}

	s.logger.Info("Attachment uploaded",
		zap.String("project_id", projectID),
		zap.String("attachment_id", attachment.ID),
		zap.Int64("size", attachment.Size))
	return attachment, nil
}

// ListAttachments returns the project's attachments, oldest first.
func (s *Service) ListAttachments(ctx context.Context, caller authmw.Caller, projectID string) ([]models.Attachment, error) {
	if s.store == nil {
		return nil, errStorageDisabled
	}

	db, err := s.db.DB()
	if err != nil {
		return nil, err
	}
	if _, err := s.authorized(ctx, db, caller, projectID); err != nil {
		return nil, err
	}

	attachments := []models.Attachment{}
	if err := db.WithContext(ctx).Where("project_id = ?", projectID).Order("created_at ASC").Find(&attachments).Error; err != nil {
		return nil, fmt.Errorf("failed to list attachments: %w", err)
	}
	return attachments, nil
}

// OpenAttachment returns the attachment record and a reader over its content.
// The caller must close the reader.
func (s *Service) OpenAttachment(ctx context.Context, caller authmw.Caller, projectID, attachmentID string) (*models.Attachment, io.ReadCloser, error) {
	if s.store == nil {
		return nil, nil, errStorageDisabled
	}

	db, err := s.db.DB()
	if err != nil {
		return nil, nil, err
	}
	attachment, err := s.attachment(ctx, db, caller, projectID, attachmentID)
	if err != nil {
		return nil, nil, err
	}

	obj, err := s.store.GetObject(ctx, s.bucket, attachment.ObjectKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open attachment: %w", err)
	}
	return attachment, obj, nil
}

// DeleteAttachment removes the attachment row and its stored object.
func (s *Service) DeleteAttachment(ctx context.Context, caller authmw.Caller, projectID, attachmentID string) error {
	if s.store == nil {
		return errStorageDisabled
	}

	db, err := s.db.DB()
	if err != nil {
		return err
	}
	attachment, err := s.attachment(ctx, db, caller, projectID, attachmentID)
	if err != nil {
		return err
	}

	if err := db.WithContext(ctx).Delete(attachment).Error; err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	s.removeObjects(ctx, []string{attachment.ObjectKey})
	return nil
}

// authorized loads a project and checks the caller may act on it.
func (s *Service) authorized(ctx context.Context, db *gorm.DB, caller authmw.Caller, id string) (*models.Project, error) {
	var project models.Project
	err := db.WithContext(ctx).First(&project, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Project not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load project: %w", err)
	}
	if !caller.Admin && project.OwnerID != caller.UserID {
		return nil, apperr.Forbidden("Not authorized to access this project")
	}
	return &project, nil
}

func (s *Service) attachment(ctx context.Context, db *gorm.DB, caller authmw.Caller, projectID, attachmentID string) (*models.Attachment, error) {
	if _, err := s.authorized(ctx, db, caller, projectID); err != nil {
		return nil, err
	}

	var attachment models.Attachment
	err := db.WithContext(ctx).First(&attachment, "id = ? AND project_id = ?", attachmentID, projectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Attachment not found")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load attachment: %w", err)
	}
	return &attachment, nil
}

func (s *Service) removeObjects(ctx context.Context, keys []string) {
	if s.store == nil {
		return
	}
	for _, key := range keys {
		if err := s.store.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
			s.logger.Warn("Failed to remove attachment object", zap.String("key", key), zap.Error(err))
		}
	}
}
