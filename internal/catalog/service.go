package catalog

import (
	"context"
	"fmt"

	"github.com/ekinderauto/storefront-backend/pkg/config"
	pkgerrors "github.com/ekinderauto/storefront-backend/pkg/errors"
	"github.com/ekinderauto/storefront-backend/pkg/logger"
)

// Service exposes the read-side catalog operations used by the storefront.
type Service interface {
	ListProducts(ctx context.Context, input ListProductsInput) ([]Product, error)
	GetProductDetail(ctx context.Context, slug string) (*ProductDetail, error)
	ListCategories(ctx context.Context) []Category
}

// ListProductsInput carries the optional catalog filters.
type ListProductsInput struct {
	CategorySlug string
	Limit        int
}

// ProductDetail is the detail-page payload: the requested product plus all
// of its color/configuration variants, with the shortened card name and
// the color-free family name precomputed for display.
type ProductDetail struct {
	Product   Product   `json:"product"`
	Variants  []Product `json:"variants"`
	ShortName string    `json:"shortName"`
	BaseName  string    `json:"baseName"`
	URL       string    `json:"url"`
}

type service struct {
	repo *Repository
	cfg  config.CatalogConfig
	logg *logger.Logger
}

// NewService builds the catalog service on top of the row repository.
func NewService(repo *Repository, cfg config.CatalogConfig, logg *logger.Logger) Service {
	return &service{repo: repo, cfg: cfg, logg: logg}
}

// ListProducts loads recent rows, normalizes them, optionally filters by
// category slug, and collapses variants into one representative per base
// SKU.
func (s *service) ListProducts(ctx context.Context, input ListProductsInput) ([]Product, error) {
	limit := input.Limit
	if limit <= 0 || limit > s.cfg.ListLimit {
		limit = s.cfg.ListLimit
	}

	rows, err := s.repo.ListRecent(ctx, limit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing products")
	}

	products := make([]Product, 0, len(rows))
	for _, row := range rows {
		p := MapRowToProduct(row)
		if input.CategorySlug != "" && CategoryToSlug(p.Category) != input.CategorySlug {
			continue
		}
		products = append(products, p)
	}

	grouped := GroupProductsByBase(products)
	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"rows":    len(rows),
		"grouped": len(grouped),
	}), "catalog list loaded")
	return grouped, nil
}

// GetProductDetail resolves a detail-page slug (either <name>--<sku> or a
// bare SKU) to the product and its variant set.
func (s *service) GetProductDetail(ctx context.Context, slug string) (*ProductDetail, error) {
	sku := ExtractProductIDFromSlug(slug)
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product slug is required")
	}
	ctx = s.logg.WithSKU(ctx, sku)

	row, err := s.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product")
	}
	if row == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not found", sku))
	}
	product := MapRowToProduct(*row)

	variantRows, err := s.repo.ListVariantsByBase(ctx, BaseSKU(product))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading product variants")
	}
	variants := make([]Product, 0, len(variantRows))
	for _, vr := range variantRows {
		variants = append(variants, MapRowToProduct(vr))
	}

	return &ProductDetail{
		Product:   product,
		Variants:  variants,
		ShortName: ShortProductName(product.Name, s.cfg.ShortNameMax),
		BaseName:  BaseProductName(product),
		URL:       ProductURL(product),
	}, nil
}

// ListCategories returns the fixed category order for tiles and sidebar.
func (s *service) ListCategories(ctx context.Context) []Category {
	return CategoryOrder
}
