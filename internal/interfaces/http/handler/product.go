package handler

import (
	"strconv"

	appcatalog "github.com/chickenviken/backend/internal/application/catalog"
	"github.com/gin-gonic/gin"
)

// ProductHandler serves storefront product reads and dashboard catalog
// management
type ProductHandler struct {
	BaseHandler
	products *appcatalog.ProductService
}

// NewProductHandler creates a new ProductHandler
func NewProductHandler(products *appcatalog.ProductService) *ProductHandler {
	return &ProductHandler{products: products}
}

// List returns products matching the query
// GET /api/products
func (h *ProductHandler) List(c *gin.Context) {
	filter, err := bindFilter(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	page, err := h.products.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.SuccessWithMeta(c, page.Items, page.Total, page.Page, page.PageSize)
}

// Popular returns the most-ordered products
// GET /api/products/popular
func (h *ProductHandler) Popular(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 0 {
			h.BadRequest(c, "limit must be a non-negative integer")
			return
		}
		limit = parsed
	}

	products, err := h.products.Popular(c.Request.Context(), limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, products)
}

// Get returns a single product
// GET /api/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.products.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Create adds a product to the catalog
// POST /api/admin/products
func (h *ProductHandler) Create(c *gin.Context) {
	var req appcatalog.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.products.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, product)
}

// Update edits a product's descriptive fields
// PUT /api/admin/products/:id
func (h *ProductHandler) Update(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	var req appcatalog.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.products.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// AdjustStock applies an absolute or relative stock change
// PATCH /api/admin/products/:id/stock
func (h *ProductHandler) AdjustStock(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	var req appcatalog.AdjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.products.AdjustStock(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// SetInStock toggles the availability flag
// PATCH /api/admin/products/:id/in-stock
func (h *ProductHandler) SetInStock(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	var req appcatalog.SetInStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.ValidationError(c, err)
		return
	}

	product, err := h.products.SetInStock(c.Request.Context(), id, req.InStock)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// UploadImage replaces the product's hosted image
// POST /api/admin/products/:id/image
func (h *ProductHandler) UploadImage(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		h.BadRequest(c, "image file is required")
		return
	}

	content, err := file.Open()
	if err != nil {
		h.InternalError(c, "failed to read uploaded file")
		return
	}
	defer content.Close()

	product, err := h.products.AttachImage(c.Request.Context(), id, file.Filename, content)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, product)
}

// Delete removes a product
// DELETE /api/admin/products/:id
func (h *ProductHandler) Delete(c *gin.Context) {
	id, err := bindID(c)
	if err != nil {
		h.ValidationError(c, err)
		return
	}

	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}
