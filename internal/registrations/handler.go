package registrations

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aura-webinar/landing/internal/calendar"
	"github.com/aura-webinar/landing/internal/models"
	"github.com/aura-webinar/landing/internal/store"
	"github.com/aura-webinar/landing/internal/webinars"
	"github.com/aura-webinar/landing/pkg/response"
)

// RegisterRequest is the body for POST /webinars/:id/register: the raw form values keyed by field id.
type RegisterRequest struct {
	FormData map[string]string `json:"formData"`
}

// RegisterResponse is returned after a signup.
type RegisterResponse struct {
	Recorded     bool                 `json:"recorded"`
	Registration *models.Registration `json:"registration,omitempty"`
	CalendarLink string               `json:"calendar_link,omitempty"`
}

// Page is the public landing view of one configuration. Attendees are never exposed.
type Page struct {
	Webinar      models.WebinarConfig `json:"webinar"`
	Fragment     string               `json:"fragment"`
	CalendarLink string               `json:"calendar_link"`
}

// Handler handles the public landing page endpoints.
type Handler struct {
	store  *store.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewHandler creates a registrations handler.
func NewHandler(s *store.Store, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{store: s, logger: logger, now: time.Now}
}

func (h *Handler) page(w models.WebinarConfig) Page {
	w.Attendees = nil
	return Page{
		Webinar:      w,
		Fragment:     store.Fragment(w.ID),
		CalendarLink: calendar.GoogleLink(calendar.ForWebinar(w, h.now())),
	}
}

// Active handles GET /page: the configuration currently shown.
func (h *Handler) Active(c *gin.Context) {
	response.OK(c, h.page(h.store.Active()))
}

// GetByID handles GET /page/:id.
func (h *Handler) GetByID(c *gin.Context) {
	w, ok := h.store.Get(c.Param("id"))
	if !ok {
		response.NotFound(c, "webinar not found")
		return
	}
	response.OK(c, h.page(w))
}

// Register handles POST /webinars/:id/register. Signups for an unknown
// configuration are dropped without an error.
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	configID := c.Param("id")
	reg := h.store.NewRegistration(req.FormData)
	recorded, err := h.store.Register(c.Request.Context(), configID, reg)
	if err != nil {
		webinars.RespondError(c, h.logger, err)
		return
	}
	if !recorded {
		response.OK(c, RegisterResponse{Recorded: false})
		return
	}
	w, _ := h.store.Get(configID)
	response.Created(c, RegisterResponse{
		Recorded:     true,
		Registration: &reg,
		CalendarLink: calendar.GoogleLink(calendar.ForWebinar(w, h.now())),
	})
}
