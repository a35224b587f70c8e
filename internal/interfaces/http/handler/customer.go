package handler

import (
	appidentity "github.com/chickenviken/backend/internal/application/identity"
	"github.com/chickenviken/backend/internal/interfaces/http/middleware"
	"github.com/gin-gonic/gin"
)

// CustomerHandler serves storefront accounts: authentication, profile and
// address book, plus the dashboard's user management view
type CustomerHandler struct {
	BaseHandler
	customers *appidentity.CustomerService
}

// NewCustomerHandler creates a new CustomerHandler
func NewCustomerHandler(customers *appidentity.CustomerService) *CustomerHandler {
	return &CustomerHandler{customers: customers}
}

// SignUp creates a storefront account
// POST /api/auth/signup
func (h *CustomerHandler) SignUp(c *gin.Context) {
	var req appidentity.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.customers.SignUp(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, resp)
}

// SignIn authenticates a customer
// POST /api/auth/signin
func (h *CustomerHandler) SignIn(c *gin.Context) {
	var req appidentity.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	resp, err := h.customers.SignIn(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, resp)
}

// SignOut revokes the presented token
// POST /api/auth/signout
func (h *CustomerHandler) SignOut(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	if err := h.customers.SignOut(c.Request.Context(), claims); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// GetProfile returns the signed-in customer's account
// GET /api/profile
func (h *CustomerHandler) GetProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	profile, err := h.customers.GetProfile(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// UpdateProfile edits the customer's display fields
// PUT /api/profile
func (h *CustomerHandler) UpdateProfile(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appidentity.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	profile, err := h.customers.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// AddAddress appends a saved address
// POST /api/profile/addresses
func (h *CustomerHandler) AddAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appidentity.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	profile, err := h.customers.AddAddress(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, profile)
}

// UpdateAddress replaces a saved address
// PUT /api/profile/addresses/:addressId
func (h *CustomerHandler) UpdateAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	addressID := c.Param("addressId")
	if addressID == "" {
		h.BadRequest(c, "address id is required")
		return
	}

	var req appidentity.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	profile, err := h.customers.UpdateAddress(c.Request.Context(), userID, addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// RemoveAddress deletes a saved address
// DELETE /api/profile/addresses/:addressId
func (h *CustomerHandler) RemoveAddress(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	addressID := c.Param("addressId")
	if addressID == "" {
		h.BadRequest(c, "address id is required")
		return
	}

	profile, err := h.customers.RemoveAddress(c.Request.Context(), userID, addressID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, profile)
}

// List returns storefront accounts for the dashboard
// GET /api/admin/users
func (h *CustomerHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.customers.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Delete removes a storefront account
// DELETE /api/admin/users/:id
func (h *CustomerHandler) Delete(c *gin.Context) {
	customerID, err := bindID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.customers.Delete(c.Request.Context(), customerID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
