package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type ProductImageInput struct {
	Large  string `json:"large" binding:"required,max=500"`
	Medium string `json:"medium" binding:"required,max=500"`
	Small  string `json:"small" binding:"required,max=500"`
}

type ProductOptionInput struct {
	Color    string `json:"color" binding:"required"`
	Size     string `json:"size" binding:"required"`
	Quantity int    `json:"quantity"`
}

// ProductRequest 商品注册与修改共用。修改时 Images 为空表示图片不变。
type ProductRequest struct {
	SellYn            bool                 `json:"sellYn"`
	ExhibitionYn      bool                 `json:"exhibitionYn"`
	MainCategoryID    uint64               `json:"mainCategoryId" binding:"required"`
	SubCategoryID     uint64               `json:"subCategoryId" binding:"required"`
	ProductName       string               `json:"productName" binding:"required,max=100"`
	SimpleDescription string               `json:"simpleDescription" binding:"max=200"`
	DetailInformation string               `json:"detailInformation"`
	Price             decimal.Decimal      `json:"price"`
	DiscountRate      *int                 `json:"discountRate"`
	DiscountStartDate *time.Time           `json:"discountStartDate"`
	DiscountEndDate   *time.Time           `json:"discountEndDate"`
	MinSalesQuantity  int                  `json:"minSalesQuantity"`
	MaxSalesQuantity  int                  `json:"maxSalesQuantity"`
	Images            []ProductImageInput  `json:"images" binding:"dive"`
	Options           []ProductOptionInput `json:"options" binding:"required,min=1,dive"`
}

type RegisterProductResponse struct {
	ProductNo   uint64 `json:"productNo"`
	ProductCode string `json:"productCode"`
}

type UpdateProductResponse struct {
	ProductNo         uint64 `json:"productNo"`
	DetailRevised     bool   `json:"detailRevised"`
	ImagesReplaced    bool   `json:"imagesReplaced"`
	OptionsDeleted    int    `json:"optionsDeleted"`
	OptionsInserted   int    `json:"optionsInserted"`
	QuantitiesRevised int    `json:"quantitiesRevised"`
}

// AdminProductListRequest 后台商品列表筛选，日期格式 2006-01-02
type AdminProductListRequest struct {
	SellYn       *bool   `form:"sellYn"`
	DiscountYn   *bool   `form:"discountYn"`
	ExhibitionYn *bool   `form:"exhibitionYn"`
	StartDate    string  `form:"startDate"`
	EndDate      string  `form:"endDate"`
	ProductName  *string `form:"productName"`
	ProductNo    *uint64 `form:"productNo"`
	ProductCode  *string `form:"productCode"`
	Page         int     `form:"page"`
	Limit        int     `form:"limit"`
}

type AdminProductItem struct {
	ProductRegistDate    time.Time       `json:"productRegistDate"`
	ProductSmallImageURL string          `json:"productSmallImageUrl"`
	ProductName          string          `json:"productName"`
	ProductNo            uint64          `json:"productNo"`
	ProductCode          string          `json:"productCode"`
	SellPrice            decimal.Decimal `json:"sellPrice"`
	DiscountRate         int             `json:"discountRate"`
	DiscountPrice        decimal.Decimal `json:"discountPrice"`
	DiscountYn           bool            `json:"discountYn"`
	ProductExhibitYn     bool            `json:"productExhibitYn"`
	ProductSellYn        bool            `json:"productSellYn"`
}

type AdminProductListResponse struct {
	Total int64               `json:"total"`
	Data  []*AdminProductItem `json:"data"`
}

type OptionQuantity struct {
	ProductOptionNo uint64 `json:"productOptionNo"`
	ColorName       string `json:"colorName"`
	SizeName        string `json:"sizeName"`
	Quantity        int    `json:"quantity"`
}

type AdminProductDetail struct {
	ProductNo         uint64            `json:"productNo"`
	ProductCode       string            `json:"productCode"`
	SellYn            bool              `json:"sellYn"`
	ExhibitYn         bool              `json:"exhibitYn"`
	MainCategoryID    uint64            `json:"mainCategoryId"`
	MainCategory      string            `json:"mainCategory"`
	SubCategoryID     uint64            `json:"subCategoryId"`
	SubCategory       string            `json:"subCategory"`
	ProductName       string            `json:"productName"`
	SimpleDescription string            `json:"simpleDescription"`
	DetailInformation string            `json:"detailInformation"`
	Price             decimal.Decimal   `json:"price"`
	DiscountRate      *int              `json:"discountRate"`
	DiscountStartDate *time.Time        `json:"discountStartDate"`
	DiscountEndDate   *time.Time        `json:"discountEndDate"`
	MinSalesQuantity  int               `json:"minSalesQuantity"`
	MaxSalesQuantity  int               `json:"maxSalesQuantity"`
	ImageURL          []string          `json:"imageUrl"`
	OptionQuantity    []*OptionQuantity `json:"optionQuantity"`
}
