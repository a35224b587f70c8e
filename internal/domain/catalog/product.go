package catalog

import (
	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Product is a sellable item, owned by the admin namespace and read by both
// applications.
type Product struct {
	shared.BaseAggregateRoot
	Name        string          `json:"name"`
	Description string          `json:"description"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	// Category is a free-text label, not a foreign key to a category entity
	Category      string `json:"category" gorm:"index"`
	ImageURL      string `json:"image_url"`
	ImagePublicID string `json:"image_public_id"`
	StockQuantity int    `json:"stock_quantity"`
	// InStock is settable independently of StockQuantity; the two can
	// disagree and the data layer does not reconcile them
	InStock bool `json:"in_stock"`
	// OrderCount is a best-effort popularity counter. Nothing in the order
	// placement path increments it, so it must not be treated as a reliable
	// sales figure.
	OrderCount int64 `json:"order_count"`
}

// NewProduct creates a new product
func NewProduct(name, description string, unitPrice decimal.Decimal, category string) (*Product, error) {
	if name == "" {
		return nil, shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	return &Product{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Name:              name,
		Description:       description,
		UnitPrice:         unitPrice,
		Category:          category,
		InStock:           true,
	}, nil
}

// Update edits the product's descriptive fields
func (p *Product) Update(name, description string, unitPrice decimal.Decimal, category string) error {
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Product name cannot be empty")
	}
	if unitPrice.IsNegative() {
		return shared.NewDomainError("INVALID_PRICE", "Product price cannot be negative")
	}

	p.Name = name
	p.Description = description
	p.UnitPrice = unitPrice
	p.Category = category
	p.Touch()
	return nil
}

// SetStock replaces the stock quantity. Negative quantities are rejected
// here rather than only at the input widget.
func (p *Product) SetStock(quantity int) error {
	if quantity < 0 {
		return shared.NewDomainError("INVALID_STOCK", "Stock quantity cannot be negative")
	}
	p.StockQuantity = quantity
	p.Touch()
	return nil
}

// AdjustStock applies a relative stock change
func (p *Product) AdjustStock(delta int) error {
	return p.SetStock(p.StockQuantity + delta)
}

// SetInStock toggles availability independently of the stock counter
func (p *Product) SetInStock(inStock bool) {
	p.InStock = inStock
	p.Touch()
}

// SetImage records the hosted image reference
func (p *Product) SetImage(url, publicID string) {
	p.ImageURL = url
	p.ImagePublicID = publicID
	p.Touch()
}
