package handler

import (
	appidentity "github.com/chickenviken/backend/internal/application/identity"
	"github.com/chickenviken/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AdminHandler serves admin-namespace accounts: authentication, capability
// grants, and the super-admin promotion functions
type AdminHandler struct {
	BaseHandler
	admins *appidentity.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(admins *appidentity.AdminService) *AdminHandler {
	return &AdminHandler{admins: admins}
}

// SignUp creates an admin-namespace account
// POST /api/admin/auth/signup
func (h *AdminHandler) SignUp(c *gin.Context) {
	var req appidentity.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.admins.SignUp(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// SignIn authenticates an admin
// POST /api/admin/auth/signin
func (h *AdminHandler) SignIn(c *gin.Context) {
	var req appidentity.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.admins.SignIn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SignOut revokes the presented token
// POST /api/admin/auth/signout
func (h *AdminHandler) SignOut(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.admins.SignOut(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// Me returns the signed-in admin's own account
// GET /api/admin/me
func (h *AdminHandler) Me(c *gin.Context) {
	adminID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	admin, err := h.admins.Get(c.Request.Context(), adminID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, admin)
}

// List returns admin accounts for the dashboard
// GET /api/admin/admins
func (h *AdminHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.admins.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// SetCapabilities replaces an admin's capability grants
// PUT /api/admin/admins/:id/capabilities
func (h *AdminHandler) SetCapabilities(c *gin.Context) {
	callerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	targetID, err := bindID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	var req appidentity.SetCapabilitiesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	admin, err := h.admins.SetCapabilities(c.Request.Context(), callerID, targetID, req.Capabilities)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, admin)
}

// PromoteToAdmin grants a target account a role and capability set
// POST /api/admin/functions/promote
func (h *AdminHandler) PromoteToAdmin(c *gin.Context) {
	callerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appidentity.PromoteAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	targetID, err := uuid.Parse(req.TargetUserID)
	if err != nil {
		h.BadRequest(c, "Invalid target user ID")
		return
	}

	resp, err := h.admins.PromoteToAdmin(c.Request.Context(), callerID, targetID, req.AdminRole, req.Permissions)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// RevokeAdminPrivileges strips super-admin rank and all capabilities from
// a target account
// POST /api/admin/functions/revoke
func (h *AdminHandler) RevokeAdminPrivileges(c *gin.Context) {
	callerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appidentity.RevokeAdminRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}
	targetID, err := uuid.Parse(req.TargetUserID)
	if err != nil {
		h.BadRequest(c, "Invalid target user ID")
		return
	}

	resp, err := h.admins.RevokeAdminPrivileges(c.Request.Context(), callerID, targetID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// DeleteOwnAccount removes the caller's own admin account
// DELETE /api/admin/me
func (h *AdminHandler) DeleteOwnAccount(c *gin.Context) {
	callerID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.admins.DeleteOwnAccount(c.Request.Context(), callerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
