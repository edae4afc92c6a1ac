package webinars

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-webinar/landing/internal/media"
	"github.com/aura-webinar/landing/internal/models"
	"github.com/aura-webinar/landing/internal/store"
	"github.com/aura-webinar/landing/pkg/response"
)

// ImageUploader stores an uploaded image and returns its public URL.
type ImageUploader interface {
	ImagesEnabled() bool
	UploadImage(ctx context.Context, ext, contentType string, body io.Reader) (string, error)
}

// ListResponse is the body of GET /admin/webinars.
type ListResponse struct {
	Webinars []models.WebinarConfig `json:"webinars"`
	ActiveID string                 `json:"active_id"`
}

// SelectionResponse reports the active configuration after a selection change.
type SelectionResponse struct {
	ActiveID string `json:"active_id"`
	Fragment string `json:"fragment"`
	Selected bool   `json:"selected"`
}

// Handler handles the admin dashboard endpoints.
type Handler struct {
	store  *store.Store
	images ImageUploader
	logger *zap.Logger
}

// NewHandler creates a dashboard handler. images may be nil; uploads are then embedded as data URLs.
func NewHandler(s *store.Store, images ImageUploader, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: s, images: images, logger: logger}
}

// Register mounts the dashboard routes on an already guarded group.
func (h *Handler) Register(g *gin.RouterGroup) {
	g.GET("/webinars", h.List)
	g.POST("/webinars", h.Create)
	g.GET("/webinars/:id", h.GetByID)
	g.PUT("/webinars/:id", h.Replace)
	g.DELETE("/webinars/:id", h.Delete)
	g.POST("/webinars/:id/select", h.Select)
	g.GET("/webinars/:id/attendees", h.Attendees)
	g.POST("/webinars/:id/fields", h.AddField)
	g.PATCH("/webinars/:id/fields/:fieldId", h.UpdateField)
	g.DELETE("/webinars/:id/fields/:fieldId", h.RemoveField)
	g.POST("/images", h.UploadImage)
}

// RespondError maps store errors onto the response envelope.
func RespondError(c *gin.Context, logger *zap.Logger, err error) {
	var (
		protected *store.ProtectedStateError
		invalid   *store.ValidationError
		persist   *store.PersistError
	)
	switch {
	case errors.As(err, &protected):
		response.Conflict(c, protected.Reason)
	case errors.As(err, &invalid):
		response.BadRequest(c, invalid.Error())
	case errors.Is(err, store.ErrNotFound):
		response.NotFound(c, "webinar not found")
	case errors.Is(err, store.ErrFieldNotFound):
		response.NotFound(c, "form field not found")
	case errors.As(err, &persist):
		logger.Error("state not persisted", zap.Error(err))
		response.ServiceUnavailable(c, "changes could not be saved; please retry")
	default:
		logger.Error("unexpected store error", zap.Error(err))
		response.Internal(c, "internal error")
	}
}

// List handles GET /admin/webinars.
func (h *Handler) List(c *gin.Context) {
	response.OK(c, ListResponse{Webinars: h.store.List(), ActiveID: h.store.ActiveID()})
}

// GetByID handles GET /admin/webinars/:id.
func (h *Handler) GetByID(c *gin.Context) {
	w, ok := h.store.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "webinar not found")
		return
	}
	response.OK(c, w)
}

// Create handles POST /admin/webinars. An empty body creates a new session
// from the active configuration; otherwise the body is the template.
func (h *Handler) Create(c *gin.Context) {
	var template models.WebinarConfig
	if c.Request.ContentLength == 0 {
		template = models.NewSessionTemplate(h.store.Active())
	} else if err := c.ShouldBindJSON(&template); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	id, err := h.store.Create(c.Request.Context(), template)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	w, _ := h.store.Get(id)
	response.Created(c, w)
}

// Replace handles PUT /admin/webinars/:id. When the body carries no attendees
// the captured ones are kept, so saving page content never drops registrations.
func (h *Handler) Replace(c *gin.Context) {
	id := c.Param("id")
	var cfg models.WebinarConfig
	if err := c.ShouldBindJSON(&cfg); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	if err := h.store.ReplaceContent(c.Request.Context(), id, cfg); err != nil {
		RespondError(c, h.logger, err)
		return
	}
	w, _ := h.store.Get(id)
	response.OK(c, w)
}

// Delete handles DELETE /admin/webinars/:id?confirm=true. The operator must confirm explicitly.
func (h *Handler) Delete(c *gin.Context) {
	if c.Query("confirm") != "true" {
		response.BadRequest(c, "deletion must be confirmed with confirm=true")
		return
	}
	if err := h.store.Delete(c.Request.Context(), c.Param("id")); err != nil {
		RespondError(c, h.logger, err)
		return
	}
	response.OK(c, SelectionResponse{
		ActiveID: h.store.ActiveID(),
		Fragment: store.Fragment(h.store.ActiveID()),
	})
}

// Select handles POST /admin/webinars/:id/select. Unknown ids leave the selection unchanged.
func (h *Handler) Select(c *gin.Context) {
	selected := h.store.Select(c.Param("id"))
	active := h.store.ActiveID()
	response.OK(c, SelectionResponse{ActiveID: active, Fragment: store.Fragment(active), Selected: selected})
}

// Attendees handles GET /admin/webinars/:id/attendees.
func (h *Handler) Attendees(c *gin.Context) {
	w, ok := h.store.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "webinar not found")
		return
	}
	attendees := w.Attendees
	if attendees == nil {
		attendees = []models.Registration{}
	}
	response.OK(c, gin.H{"webinar_id": w.ID, "count": len(attendees), "attendees": attendees})
}

// AddField handles POST /admin/webinars/:id/fields. An empty body adds a default field.
func (h *Handler) AddField(c *gin.Context) {
	var f models.FormField
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&f); err != nil {
			response.BadRequest(c, "invalid request: "+err.Error())
			return
		}
	}
	added, err := h.store.AddFormField(c.Request.Context(), c.Param("id"), f)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	response.Created(c, added)
}

// UpdateField handles PATCH /admin/webinars/:id/fields/:fieldId.
func (h *Handler) UpdateField(c *gin.Context) {
	var patch store.FieldPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	f, err := h.store.UpdateFormField(c.Request.Context(), c.Param("id"), c.Param("fieldId"), patch)
	if err != nil {
		RespondError(c, h.logger, err)
		return
	}
	response.OK(c, f)
}

// RemoveField handles DELETE /admin/webinars/:id/fields/:fieldId.
func (h *Handler) RemoveField(c *gin.Context) {
	if err := h.store.RemoveFormField(c.Request.Context(), c.Param("id"), c.Param("fieldId")); err != nil {
		RespondError(c, h.logger, err)
		return
	}
	response.NoContent(c)
}

// UploadImage handles POST /admin/images (multipart "file"). The result is an
// image reference for logoImage or a speaker image: a public URL when an images
// bucket is configured, otherwise an embedded data URL.
func (h *Handler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, media.MaxImageSize+1<<20)
	fh, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "file is required")
		return
	}
	if fh.Size > media.MaxImageSize {
		response.PayloadTooLarge(c, media.ErrTooLarge.Error())
		return
	}
	if !media.ValidateImageType(fh.Header.Get("Content-Type"), fh.Filename) {
		response.BadRequest(c, media.ErrUnsupportedType.Error())
		return
	}
	f, err := fh.Open()
	if err != nil {
		response.BadRequest(c, "cannot read file")
		return
	}
	defer f.Close()

	img, err := media.Read(f)
	switch {
	case errors.Is(err, media.ErrTooLarge):
		response.PayloadTooLarge(c, err.Error())
		return
	case err != nil:
		response.BadRequest(c, err.Error())
		return
	}

	ref := img.DataURL()
	if h.images != nil && h.images.ImagesEnabled() {
		url, err := h.images.UploadImage(c.Request.Context(), img.Ext, img.ContentType, bytes.NewReader(img.Data))
		if err != nil {
			h.logger.Error("image upload failed", zap.Error(err))
			response.ServiceUnavailable(c, "image upload failed")
			return
		}
		ref = url
	}
	response.Created(c, gin.H{"image": ref, "content_type": img.ContentType})
}
