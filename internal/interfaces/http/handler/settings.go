package handler

import (
	appcatalog "github.com/chickenviken/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// SettingsHandler serves the storefront settings singleton
type SettingsHandler struct {
	BaseHandler
	settings *appcatalog.SettingsService
}

// NewSettingsHandler creates a new SettingsHandler
func NewSettingsHandler(settings *appcatalog.SettingsService) *SettingsHandler {
	return &SettingsHandler{settings: settings}
}

// Get returns the storefront settings
// GET /api/settings
func (h *SettingsHandler) Get(c *gin.Context) {
	resp, err := h.settings.Get(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// Update replaces the storefront settings
// PUT /api/admin/settings
func (h *SettingsHandler) Update(c *gin.Context) {
	var req appcatalog.UpdateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.settings.Update(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}
