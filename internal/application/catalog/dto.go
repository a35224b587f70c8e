package catalog

import (
	"time"

	"github.com/chickenviken/backend/internal/domain/catalog"
	"github.com/chickenviken/backend/internal/domain/settings"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CreateProductRequest adds a product to the catalog
type CreateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category"`
	Stock       int     `json:"stock" binding:"gte=0"`
}

// UpdateProductRequest edits a product's descriptive fields
type UpdateProductRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category"`
}

// AdjustStockRequest applies a relative or absolute stock change
type AdjustStockRequest struct {
	// exactly one of Set or Delta is honored; Set wins when both are present
	Set   *int `json:"set,omitempty"`
	Delta *int `json:"delta,omitempty"`
}

// SetInStockRequest toggles the availability flag
type SetInStockRequest struct {
	InStock bool `json:"inStock"`
}

// ProductResponse is the API shape of a product
type ProductResponse struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"image,omitempty"`
	Stock       int             `json:"stock"`
	InStock     bool            `json:"inStock"`
	OrderCount  int64           `json:"orderCount"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// ToProductResponse maps a product aggregate to its API shape
func ToProductResponse(p *catalog.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.UnitPrice,
		Category:    p.Category,
		ImageURL:    p.ImageURL,
		Stock:       p.StockQuantity,
		InStock:     p.InStock,
		OrderCount:  p.OrderCount,
		CreatedAt:   p.CreatedAt,
	}
}

// ToProductResponses maps a slice of products
func ToProductResponses(products []catalog.Product) []ProductResponse {
	out := make([]ProductResponse, len(products))
	for i := range products {
		out[i] = ToProductResponse(&products[i])
	}
	return out
}

// UpdateSettingsRequest replaces the storefront settings
type UpdateSettingsRequest struct {
	StoreName       string `json:"storeName" binding:"required"`
	ContactEmail    string `json:"contactEmail"`
	ContactPhone    string `json:"contactPhone"`
	StoreAddress    string `json:"storeAddress"`
	OpeningHours    string `json:"openingHours"`
	AcceptingOrders bool   `json:"acceptingOrders"`
}

// SettingsResponse is the API shape of the storefront settings
type SettingsResponse struct {
	StoreName       string `json:"storeName"`
	ContactEmail    string `json:"contactEmail"`
	ContactPhone    string `json:"contactPhone"`
	StoreAddress    string `json:"storeAddress"`
	OpeningHours    string `json:"openingHours"`
	AcceptingOrders bool   `json:"acceptingOrders"`
}

// ToSettingsResponse maps settings to their API shape
func ToSettingsResponse(s *settings.StoreSettings) SettingsResponse {
	return SettingsResponse{
		StoreName:       s.StoreName,
		ContactEmail:    s.ContactEmail,
		ContactPhone:    s.ContactPhone,
		StoreAddress:    s.StoreAddress,
		OpeningHours:    s.OpeningHours,
		AcceptingOrders: s.AcceptingOrders,
	}
}
