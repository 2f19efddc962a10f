package projects

import (
	"project-admin/core/apperr"
	authmw "project-admin/core/middleware/auth"
	"project-admin/core/response"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for projects.
type Handler struct {
	service     *Service
	requireAuth fiber.Handler
	logger      *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, requireAuth fiber.Handler, logger *zap.Logger) *Handler {
	return &Handler{service: service, requireAuth: requireAuth, logger: logger}
}

// RegisterRoutes registers the project routes on the /api/projects group.
func (h *Handler) RegisterRoutes(router fiber.Router) {
	router.Get("/", h.requireAuth, h.HandleList)
	router.Post("/", h.requireAuth, h.HandleCreate)
	router.Get("/:id", h.requireAuth, h.HandleGet)
	router.Put("/:id", h.requireAuth, h.HandleUpdate)
	router.Patch("/:id/status", h.requireAuth, h.HandleUpdateStatus)
	router.Delete("/:id", h.requireAuth, h.HandleDelete)

	router.Post("/:id/attachments", h.requireAuth, h.HandleUploadAttachment)
	router.Get("/:id/attachments", h.requireAuth, h.HandleListAttachments)
	router.Get("/:id/attachments/:attachmentId", h.requireAuth, h.HandleDownloadAttachment)
	router.Delete("/:id/attachments/:attachmentId", h.requireAuth, h.HandleDeleteAttachment)
}

// HandleList lists the caller's projects.
// @Summary List projects
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (max 100)"
// @Success 200 {object} response.Envelope{data=response.Page}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /api/projects [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	page, limit, offset := response.Pagination(c)
	result, err := h.service.List(c.UserContext(), authmw.CallerOf(c), ListFilter{
		Status: c.Query("status"),
		Page:   page,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		return err
	}
	return response.OK(c, "Projects retrieved", result)
}

// HandleCreate creates a project.
// @Summary Create project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateInput true "Project"
// @Success 201 {object} response.Envelope{data=models.Project}
// @Failure 400 {object} response.Envelope
// @Failure 401 {object} response.Envelope
// @Router /api/projects [post]
func (h *Handler) HandleCreate(c *fiber.Ctx) error {
	var in CreateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Wrap(fiber.StatusBadRequest, "Invalid request body", err)
	}

	project, err := h.service.Create(c.UserContext(), authmw.CallerOf(c), in)
	if err != nil {
		return err
	}
	return response.Created(c, "Project created", project)
}

// HandleGet returns a project.
// @Summary Get project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope{data=models.Project}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/projects/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	project, err := h.service.Get(c.UserContext(), authmw.CallerOf(c), c.Params("id"))
	if err != nil {
		return err
	}
	return response.OK(c, "Project retrieved", project)
}

// HandleUpdate updates a project.
// @Summary Update project
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param body body UpdateInput true "Fields to change"
// @Success 200 {object} response.Envelope{data=models.Project}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/projects/{id} [put]
func (h *Handler) HandleUpdate(c *fiber.Ctx) error {
	var in UpdateInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Wrap(fiber.StatusBadRequest, "Invalid request body", err)
	}

	project, err := h.service.Update(c.UserContext(), authmw.CallerOf(c), c.Params("id"), in)
	if err != nil {
		return err
	}
	return response.OK(c, "Project updated", project)
}

// HandleUpdateStatus changes a project's status.
// @Summary Change project status
// @Tags projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param body body StatusInput true "New status"
// @Success 200 {object} response.Envelope{data=models.Project}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/projects/{id}/status [patch]
func (h *Handler) HandleUpdateStatus(c *fiber.Ctx) error {
	var in StatusInput
	if err := c.BodyParser(&in); err != nil {
		return apperr.Wrap(fiber.StatusBadRequest, "Invalid request body", err)
	}

	project, err := h.service.UpdateStatus(c.UserContext(), authmw.CallerOf(c), c.Params("id"), in.Status)
	if err != nil {
		return err
	}
	return response.OK(c, "Project status updated", project)
}

// HandleDelete deletes a project and its attachments.
// @Summary Delete project
// @Tags projects
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /api/projects/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.UserContext(), authmw.CallerOf(c), c.Params("id")); err != nil {
		return err
	}
	return response.OK(c, "Project deleted", nil)
}

// HandleUploadAttachment stores the multipart "file" field as an attachment.
// @Summary Upload attachment
// @Tags attachments
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param file formData file true "File to attach"
// @Success 201 {object} response.Envelope{data=models.Attachment}
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /api/projects/{id}/attachments [post]
func (h *Handler) HandleUploadAttachment(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return apperr.Wrap(fiber.StatusBadRequest, "A file is required in the \"file\" field", err)
	}

	f, err := fh.Open()
	if err != nil {
		return apperr.Wrap(fiber.StatusBadRequest, "Failed to read uploaded file", err)
	}
	defer f.Close()

	attachment, err := h.service.AddAttachment(c.UserContext(), authmw.CallerOf(c), c.Params("id"), Upload{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
		Content:     f,
	})
	if err != nil {
		return err
	}
	return response.Created(c, "Attachment uploaded", attachment)
}

// HandleListAttachments lists a project's attachments.
// @Summary List attachments
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Success 200 {object} response.Envelope{data=[]models.Attachment}
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /api/projects/{id}/attachments [get]
func (h *Handler) HandleListAttachments(c *fiber.Ctx) error {
	attachments, err := h.service.ListAttachments(c.UserContext(), authmw.CallerOf(c), c.Params("id"))
	if err != nil {
		return err
	}
	return response.OK(c, "Attachments retrieved", attachments)
}

// HandleDownloadAttachment streams an attachment's content.
// @Summary Download attachment
// @Tags attachments
// @Produce octet-stream
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param attachmentId path string true "Attachment ID"
// @Success 200 {file} file
// @Failure 404 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /api/projects/{id}/attachments/{attachmentId} [get]
func (h *Handler) HandleDownloadAttachment(c *fiber.Ctx) error {
	attachment, content, err := h.service.OpenAttachment(c.UserContext(), authmw.CallerOf(c), c.Params("id"), c.Params("attachmentId"))
	if err != nil {
		return err
	}

	c.Attachment(attachment.FileName)
	c.Set(fiber.HeaderContentType, attachment.ContentType)
	// The stream is closed by fasthttp once the body is written.
	return c.SendStream(content, int(attachment.Size))
}

// HandleDeleteAttachment removes an attachment.
// @Summary Delete attachment
// @Tags attachments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Project ID"
// @Param attachmentId path string true "Attachment ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /api/projects/{id}/attachments/{attachmentId} [delete]
func (h *Handler) HandleDeleteAttachment(c *fiber.Ctx) error {
	if err := h.service.DeleteAttachment(c.UserContext(), authmw.CallerOf(c), c.Params("id"), c.Params("attachmentId")); err != nil {
		return err
	}
	return response.OK(c, "Attachment deleted", nil)
}
