package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/shopdesk/backoffice/internal/money"
	"github.com/shopdesk/backoffice/internal/platform/apierr"
	"github.com/shopdesk/backoffice/internal/platform/logger"
	"github.com/shopdesk/backoffice/internal/query"
	"github.com/shopdesk/backoffice/internal/repos"
	"github.com/shopdesk/backoffice/internal/types"
)

type CreateProductInput struct {
	Name        string
	SKU         string
	Description *string
	Price       *money.Amount
	InStock     *int
}

// EditProductInput carries a partial update: nil fields keep their prior
// values. An empty description clears the column.
type EditProductInput struct {
	Name        *string
	SKU         *string
	Description *string
	Price       *money.Amount
	InStock     *int
}

type ProductService interface {
	List(ctx context.Context, spec query.Spec) ([]*types.Product, error)
	Count(ctx context.Context) (int64, error)
	GetByID(ctx context.Context, id uint) (*types.Product, error)
	Create(ctx context.Context, in CreateProductInput) (*types.Product, error)
	Edit(ctx context.Context, id uint, in EditProductInput) (*types.Product, error)
	SoftDelete(ctx context.Context, id uint) error
	SetPicture(ctx context.Context, id uint, filename string) (*types.Product, error)
	ClearPicture(ctx context.Context, id uint) (*types.Product, error)
}

type productService struct {
	db       *gorm.DB
	log      *logger.Logger
	products repos.ProductRepo
}

func NewProductService(db *gorm.DB, log *logger.Logger, products repos.ProductRepo) ProductService {
	return &productService{
		db:       db,
		log:      log.With("service", "ProductService"),
		products: products,
	}
}

func (s *productService) List(ctx context.Context, spec query.Spec) ([]*types.Product, error) {
	return s.products.List(ctx, nil, spec)
}

func (s *productService) Count(ctx context.Context) (int64, error) {
	return s.products.Count(ctx, nil)
}

func (s *productService) GetByID(ctx context.Context, id uint) (*types.Product, error) {
	return s.products.GetByID(ctx, nil, id)
}

func (s *productService) Create(ctx context.Context, in CreateProductInput) (*types.Product, error) {
	if in.Name == "" {
		return nil, apierr.InvalidArgument("product name is required")
	}
	if in.SKU == "" {
		return nil, apierr.InvalidArgument("product sku is required")
	}
	if in.Price == nil {
		return nil, apierr.InvalidArgument("product price is required")
	}
	if in.Price.IsNegative() {
		return nil, apierr.InvalidArgument("product price must not be negative")
	}

	inStock := 1
	if in.InStock != nil {
		if *in.InStock < 0 {
			return nil, apierr.InvalidArgument("inStock must not be negative")
		}
		inStock = *in.InStock
	}

	product := &types.Product{
		Name:        in.Name,
		SKU:         in.SKU,
		Description: normalizeDescription(in.Description),
		Price:       *in.Price,
		InStock:     inStock,
	}
	if err := s.products.Create(ctx, nil, product); err != nil {
		return nil, err
	}
	s.log.Info("product created", "product_id", product.ID, "sku", product.SKU)
	return product, nil
}

func (s *productService) Edit(ctx context.Context, id uint, in EditProductInput) (*types.Product, error) {
	fields := map[string]interface{}{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, apierr.InvalidArgument("product name must not be empty")
		}
		fields["name"] = *in.Name
	}
	if in.SKU != nil {
		if *in.SKU == "" {
			return nil, apierr.InvalidArgument("product sku must not be empty")
		}
		fields["sku"] = *in.SKU
	}
	if in.Description != nil {
		fields["description"] = normalizeDescription(in.Description)
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, apierr.InvalidArgument("product price must not be negative")
		}
		fields["price"] = *in.Price
	}
	if in.InStock != nil {
		if *in.InStock < 0 {
			return nil, apierr.InvalidArgument("inStock must not be negative")
		}
		fields["in_stock"] = *in.InStock
	}

	if err := s.products.Update(ctx, nil, id, fields); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, nil, id)
}

func (s *productService) SoftDelete(ctx context.Context, id uint) error {
	if err := s.products.SoftDelete(ctx, nil, id); err != nil {
		return err
	}
	s.log.Info("product soft-deleted", "product_id", id)
	return nil
}

// SetPicture records a filename the asset store has already written; it
// never touches the file itself.
func (s *productService) SetPicture(ctx context.Context, id uint, filename string) (*types.Product, error) {
	if filename == "" {
		return nil, apierr.InvalidArgument("picture filename is required")
	}
	if err := s.products.Update(ctx, nil, id, map[string]interface{}{"picture_filename": filename}); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, nil, id)
}

// ClearPicture nulls the association. The underlying file is kept.
func (s *productService) ClearPicture(ctx context.Context, id uint) (*types.Product, error) {
	if err := s.products.Update(ctx, nil, id, map[string]interface{}{"picture_filename": nil}); err != nil {
		return nil, err
	}
	return s.products.GetByID(ctx, nil, id)
}

func normalizeDescription(desc *string) *string {
	if desc == nil || *desc == "" {
		return nil
	}
	return desc
}
