package handler

import (
	appordering "github.com/chickenviken/backend/internal/application/ordering"
	"github.com/gin-gonic/gin"
)

// OrderHandler serves storefront checkout and the dashboard's order
// management
type OrderHandler struct {
	BaseHandler
	orders *appordering.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orders *appordering.OrderService) *OrderHandler {
	return &OrderHandler{orders: orders}
}

// Create places an order for the signed-in customer
// POST /api/orders
func (h *OrderHandler) Create(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req appordering.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orders.Create(c.Request.Context(), userID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, order)
}

// ListOwn returns the customer's own orders, newest first
// GET /api/orders
func (h *OrderHandler) ListOwn(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, orders)
}

// GetOwn returns one of the customer's own orders
// GET /api/orders/:id
func (h *OrderHandler) GetOwn(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	orderID, err := bindID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orders.GetOwn(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// CancelOwn cancels one of the customer's own pending orders
// POST /api/orders/:id/cancel
func (h *OrderHandler) CancelOwn(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}
	orderID, err := bindID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orders.CancelOwn(c.Request.Context(), userID, orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// ListAll returns orders across all customers for the dashboard
// GET /api/admin/orders
func (h *OrderHandler) ListAll(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}
	if status := c.Query("status"); status != "" {
		filter.Filters["status"] = status
	}

	page, err := h.orders.ListAll(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Get returns any order for the dashboard
// GET /api/admin/orders/:id
func (h *OrderHandler) Get(c *gin.Context) {
	orderID, err := bindID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// UpdateStatus moves an order along the lifecycle
// PATCH /api/admin/orders/:id/status
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	orderID, err := bindID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	var req appordering.UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orders.UpdateStatus(c.Request.Context(), orderID, req.Status)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Cancel cancels an order from the dashboard
// POST /api/admin/orders/:id/cancel
func (h *OrderHandler) Cancel(c *gin.Context) {
	orderID, err := bindID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	order, err := h.orders.Cancel(c.Request.Context(), orderID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, order)
}

// Delete removes an order record entirely
// DELETE /api/admin/orders/:id
func (h *OrderHandler) Delete(c *gin.Context) {
	orderID, err := bindID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.orders.Delete(c.Request.Context(), orderID); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
