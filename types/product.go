package types

import "github.com/shopspring/decimal"

// ProductCard 前台商品列表项
type ProductCard struct {
	ProductID      uint64          `json:"product_id"`
	ThumbnailImage string          `json:"thumbnail_image"`
	ProductName    string          `json:"product_name"`
	OriginalPrice  decimal.Decimal `json:"original_price"`
	DiscountRate   int             `json:"discount_rate"`
	SalePrice      decimal.Decimal `json:"sale_price"`
}

type ColorOption struct {
	ColorID   uint64 `json:"color_id"`
	ColorName string `json:"color_name"`
}

type SizeOption struct {
	SizeID   uint64 `json:"size_id"`
	Size     string `json:"size"`
	Quantity int    `json:"quantity"`
}

type ProductDetailResponse struct {
	ProductID        uint64          `json:"product_id"`
	Name             string          `json:"name"`
	HTML             string          `json:"html"`
	OriginalPrice    decimal.Decimal `json:"original_price"`
	DiscountRate     int             `json:"discount_rate"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	MinSalesQuantity int             `json:"min_sales_quantity"`
	MaxSalesQuantity int             `json:"max_sales_quantity"`
	Images           []string        `json:"images"`
	Colors           []*ColorOption  `json:"colors"`
}

type OptionSizesRequest struct {
	ColorID uint64 `form:"color_id" binding:"required"`
}
