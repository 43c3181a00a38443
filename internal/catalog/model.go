package catalog

// ProductRow mirrors one row of the `products` table. Most columns are
// nullable upstream, so everything but the SKU is a pointer.
type ProductRow struct {
	SKU          string   `gorm:"column:sku;primaryKey"`
	Name         *string  `gorm:"column:name"`
	Description  *string  `gorm:"column:description"`
	MainImage    *string  `gorm:"column:main_image"`
	Images       *string  `gorm:"column:images"`
	Category     *string  `gorm:"column:category"`
	Manufacturer *string  `gorm:"column:manufacturer"`
	ParentSKU    *string  `gorm:"column:parent_sku"`
	PriceB2B     *float64 `gorm:"column:price_b2b"`
	UVP          *float64 `gorm:"column:uvp"`
	Quantity     *int     `gorm:"column:quantity"`
	Tax          *float64 `gorm:"column:tax"`
	EAN          *string  `gorm:"column:ean"`
	Status       *string  `gorm:"column:status"`
	ShippingTime *string  `gorm:"column:shipping_time"`
	ShippingCost *float64 `gorm:"column:shipping_cost"`
	UpdatedAt    *int64   `gorm:"column:updated_at"`
}

func (ProductRow) TableName() string {
	return "products"
}

// Product is the canonical storefront view model derived from a ProductRow.
type Product struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Description  string   `json:"description"`
	Price        float64  `json:"price"`
	Image        string   `json:"image"`
	Images       []string `json:"images,omitempty"`
	Category     string   `json:"category"`
	Manufacturer string   `json:"manufacturer,omitempty"`
	InStock      bool     `json:"inStock"`
	Rating       *float64 `json:"rating,omitempty"`
	ShippingTime string   `json:"shippingTime,omitempty"`
	ShippingCost *float64 `json:"shippingCost,omitempty"`
	Color        string   `json:"color,omitempty"`
}
