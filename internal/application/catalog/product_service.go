package catalog

import (
	"context"
	"io"

	"github.com/chickenviken/backend/internal/domain/catalog"
	"github.com/chickenviken/backend/internal/domain/shared"
	"github.com/chickenviken/backend/internal/infrastructure/assets"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ImageStore is the slice of the asset host the catalog needs
type ImageStore interface {
	Upload(ctx context.Context, filename string, content io.Reader) (*assets.UploadResult, error)
	Delete(ctx context.Context, publicID string) error
}

// ProductService handles catalog management and storefront product reads
type ProductService struct {
	products catalog.ProductRepository
	images   ImageStore
	logger   *zap.Logger
}

// NewProductService creates a new ProductService
func NewProductService(products catalog.ProductRepository, images ImageStore, logger *zap.Logger) *ProductService {
	return &ProductService{
		products: products,
		images:   images,
		logger:   logger,
	}
}

// Create adds a product to the catalog
func (s *ProductService) Create(ctx context.Context, req CreateProductRequest) (*ProductResponse, error) {
	product, err := catalog.NewProduct(req.Name, req.Description, decimal.NewFromFloat(req.Price), req.Category)
	if err != nil {
		return nil, err
	}
	if req.Stock > 0 {
		if err := product.SetStock(req.Stock); err != nil {
			return nil, err
		}
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	s.logger.Info("product created", zap.String("product_id", product.ID.String()), zap.String("name", product.Name))

	response := ToProductResponse(product)
	return &response, nil
}

// Update edits a product's descriptive fields
func (s *ProductService) Update(ctx context.Context, id uuid.UUID, req UpdateProductRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := product.Update(req.Name, req.Description, decimal.NewFromFloat(req.Price), req.Category); err != nil {
		return nil, err
	}
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}

	response := ToProductResponse(product)
	return &response, nil
}

// GetByID retrieves a single product
func (s *ProductService) GetByID(ctx context.Context, id uuid.UUID) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// List returns products matching the filter
func (s *ProductService) List(ctx context.Context, filter shared.Filter) (*shared.Paginated[ProductResponse], error) {
	products, err := s.products.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	total, err := s.products.Count(ctx, filter)
	if err != nil {
		return nil, err
	}
	page := shared.NewPaginated(ToProductResponses(products), total, filter.Page, filter.PageSize)
	return &page, nil
}

// Popular returns the most-ordered products. When the popularity query
// cannot be served the storefront still needs something to show, so it falls
// back to a plain listing.
func (s *ProductService) Popular(ctx context.Context, limit int) ([]ProductResponse, error) {
	if limit <= 0 {
		limit = 8
	}

	products, err := s.products.FindPopular(ctx, limit)
	if err != nil {
		s.logger.Warn("popular query failed, falling back to plain listing", zap.Error(err))
		filter := shared.DefaultFilter()
		filter.PageSize = limit
		products, err = s.products.FindAll(ctx, filter)
		if err != nil {
			return nil, err
		}
	}
	return ToProductResponses(products), nil
}

// AdjustStock changes a product's stock counter
func (s *ProductService) AdjustStock(ctx context.Context, id uuid.UUID, req AdjustStockRequest) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	switch {
	case req.Set != nil:
		err = product.SetStock(*req.Set)
	case req.Delta != nil:
		err = product.AdjustStock(*req.Delta)
	default:
		err = shared.NewDomainError("INVALID_STOCK_CHANGE", "Either set or delta is required")
	}
	if err != nil {
		return nil, err
	}

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// SetInStock toggles the availability flag independently of the counter
func (s *ProductService) SetInStock(ctx context.Context, id uuid.UUID, inStock bool) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	product.SetInStock(inStock)
	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// AttachImage uploads an image and records its reference on the product. An
// existing image is deleted from the host first, best effort.
func (s *ProductService) AttachImage(ctx context.Context, id uuid.UUID, filename string, content io.Reader) (*ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if product.ImagePublicID != "" {
		if err := s.images.Delete(ctx, product.ImagePublicID); err != nil {
			s.logger.Warn("failed to delete previous image",
				zap.String("public_id", product.ImagePublicID),
				zap.Error(err),
			)
		}
	}

	uploaded, err := s.images.Upload(ctx, filename, content)
	if err != nil {
		return nil, err
	}
	product.SetImage(uploaded.URL, uploaded.PublicID)

	if err := s.products.Save(ctx, product); err != nil {
		return nil, err
	}
	response := ToProductResponse(product)
	return &response, nil
}

// Delete removes a product and its hosted image
func (s *ProductService) Delete(ctx context.Context, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if product.ImagePublicID != "" {
		if err := s.images.Delete(ctx, product.ImagePublicID); err != nil {
			s.logger.Warn("failed to delete product image",
				zap.String("public_id", product.ImagePublicID),
				zap.Error(err),
			)
		}
	}

	return s.products.Delete(ctx, id)
}
