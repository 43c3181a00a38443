package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// DefaultListLimit caps the fetch-all query the way the storefront does.
const DefaultListLimit = 1000

// Repository reads raw product rows from the products table.
type Repository struct {
	db *gorm.DB
}

// NewRepository builds a repository tied to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListRecent returns up to limit rows ordered by most recently updated.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]ProductRow, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var rows []ProductRow
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Limit(limit).
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// GetBySKU loads a single row by its full SKU. Returns (nil, nil) when no
// row exists.
func (r *Repository) GetBySKU(ctx context.Context, sku string) (*ProductRow, error) {
	var row ProductRow
	err := r.db.WithContext(ctx).First(&row, "sku = ?", sku).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &row, nil
}

// ListVariantsByBase returns the base-SKU row plus every SKU-suffixed
// variant, ordered by SKU.
func (r *Repository) ListVariantsByBase(ctx context.Context, baseSKU string) ([]ProductRow, error) {
	var rows []ProductRow
	err := r.db.WithContext(ctx).
		Where("sku = ? OR sku LIKE ?", baseSKU, baseSKU+"-%").
		Order("sku").
		Find(&rows).
		Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
