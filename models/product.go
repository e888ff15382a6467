package models

import (
	"time"

	"Brandi/pkg/temporal"

	"github.com/shopspring/decimal"
)

// Product 商品主体，只保存不变的身份信息，可变属性都在带时间区间的版本表里
type Product struct {
	ProductNo   uint64    `gorm:"column:product_no;primaryKey;autoIncrement" json:"product_no"`
	ProductCode string    `gorm:"column:product_code;type:varchar(45);not null;uniqueIndex:idx_product_code" json:"product_code"` // ProductCode: UUID
	IsDeleted   bool      `gorm:"column:is_deleted;not null;default:0" json:"is_deleted"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index:idx_products_created_at" json:"created_at"`
}

func (Product) TableName() string {
	return "products"
}

// ProductDetail 商品详情版本，同一商品任一时刻只有一个版本的区间包含该时刻
type ProductDetail struct {
	ProductDetailNo   uint64          `gorm:"column:product_detail_no;primaryKey;autoIncrement" json:"product_detail_no"`
	ProductID         uint64          `gorm:"column:product_id;not null;index:idx_product_details_product" json:"product_id"`
	IsActivated       bool            `gorm:"column:is_activated;not null;default:1" json:"is_activated"` // 是否在售
	IsDisplayed       bool            `gorm:"column:is_displayed;not null;default:1" json:"is_displayed"` // 是否展示
	MainCategoryID    uint64          `gorm:"column:main_category_id;not null" json:"main_category_id"`
	SubCategoryID     uint64          `gorm:"column:sub_category_id;not null" json:"sub_category_id"`
	Name              string          `gorm:"column:name;type:varchar(100);not null;index:idx_product_details_name" json:"name"`
	SimpleDescription string          `gorm:"column:simple_description;type:varchar(200)" json:"simple_description"`
	DetailInformation string          `gorm:"column:detail_information;type:text" json:"detail_information"`
	Price             decimal.Decimal `gorm:"column:price;type:decimal(12,2);not null" json:"price"`
	DiscountRate      *int            `gorm:"column:discount_rate" json:"discount_rate"`
	DiscountStartDate *time.Time      `gorm:"column:discount_start_date" json:"discount_start_date"`
	DiscountEndDate   *time.Time      `gorm:"column:discount_end_date" json:"discount_end_date"`
	MinSalesQuantity  int             `gorm:"column:min_sales_quantity;not null;default:1" json:"min_sales_quantity"`
	MaxSalesQuantity  int             `gorm:"column:max_sales_quantity;not null;default:20" json:"max_sales_quantity"`
	temporal.Period
}

func (ProductDetail) TableName() string {
	return "product_details"
}

// SameAttributes 比较两个版本的业务字段，忽略主键与区间
func (d *ProductDetail) SameAttributes(o *ProductDetail) bool {
	return d.IsActivated == o.IsActivated &&
		d.IsDisplayed == o.IsDisplayed &&
		d.MainCategoryID == o.MainCategoryID &&
		d.SubCategoryID == o.SubCategoryID &&
		d.Name == o.Name &&
		d.SimpleDescription == o.SimpleDescription &&
		d.DetailInformation == o.DetailInformation &&
		d.Price.Equal(o.Price) &&
		equalIntPtr(d.DiscountRate, o.DiscountRate) &&
		equalTimePtr(d.DiscountStartDate, o.DiscountStartDate) &&
		equalTimePtr(d.DiscountEndDate, o.DiscountEndDate) &&
		d.MinSalesQuantity == o.MinSalesQuantity &&
		d.MaxSalesQuantity == o.MaxSalesQuantity
}

type Image struct {
	ImageNo     uint64 `gorm:"column:image_no;primaryKey;autoIncrement" json:"image_no"`
	ImageLarge  string `gorm:"column:image_large;type:varchar(500);not null" json:"image_large"`
	ImageMedium string `gorm:"column:image_medium;type:varchar(500);not null" json:"image_medium"`
	ImageSmall  string `gorm:"column:image_small;type:varchar(500);not null" json:"image_small"`
	IsDeleted   bool   `gorm:"column:is_deleted;not null;default:0" json:"is_deleted"`
}

func (Image) TableName() string {
	return "images"
}

// ProductImage 商品与图片的关联，按集合整体换版本
type ProductImage struct {
	ProductImageNo uint64 `gorm:"column:product_image_no;primaryKey;autoIncrement" json:"product_image_no"`
	ProductID      uint64 `gorm:"column:product_id;not null;index:idx_product_images_product" json:"product_id"`
	ImageID        uint64 `gorm:"column:image_id;not null" json:"image_id"`
	IsMain         bool   `gorm:"column:is_main;not null;default:0" json:"is_main"`
	temporal.Period
}

func (ProductImage) TableName() string {
	return "product_images"
}

// ProductOption 颜色和尺码的组合，软删除而非版本化
type ProductOption struct {
	ProductOptionNo uint64     `gorm:"column:product_option_no;primaryKey;autoIncrement" json:"product_option_no"`
	ProductID       uint64     `gorm:"column:product_id;not null;index:idx_product_options_product" json:"product_id"`
	ColorID         uint64     `gorm:"column:color_id;not null" json:"color_id"`
	SizeID          uint64     `gorm:"column:size_id;not null" json:"size_id"`
	IsDeleted       bool       `gorm:"column:is_deleted;not null;default:0" json:"is_deleted"`
	DeletedAt       *time.Time `gorm:"column:deleted_at" json:"deleted_at"`
}

func (ProductOption) TableName() string {
	return "product_options"
}

// Quantity 库存版本，按 product_option_id 维护历史
type Quantity struct {
	QuantityNo      uint64 `gorm:"column:quantity_no;primaryKey;autoIncrement" json:"quantity_no"`
	ProductOptionID uint64 `gorm:"column:product_option_id;not null;index:idx_quantities_option" json:"product_option_id"`
	Quantity        int    `gorm:"column:quantity;not null" json:"quantity"`
	temporal.Period
}

func (Quantity) TableName() string {
	return "quantities"
}

type Color struct {
	ColorNo uint64 `gorm:"column:color_no;primaryKey;autoIncrement" json:"color_no"`
	Name    string `gorm:"column:name;type:varchar(45);not null;uniqueIndex" json:"name"`
}

func (Color) TableName() string {
	return "colors"
}

type Size struct {
	SizeNo uint64 `gorm:"column:size_no;primaryKey;autoIncrement" json:"size_no"`
	Name   string `gorm:"column:name;type:varchar(45);not null;uniqueIndex" json:"name"`
}

func (Size) TableName() string {
	return "sizes"
}

type MainCategory struct {
	MainCategoryNo uint64 `gorm:"column:main_category_no;primaryKey;autoIncrement" json:"main_category_no"`
	Name           string `gorm:"column:name;type:varchar(45);not null" json:"name"`
}

func (MainCategory) TableName() string {
	return "main_categories"
}

type SubCategory struct {
	SubCategoryNo  uint64 `gorm:"column:sub_category_no;primaryKey;autoIncrement" json:"sub_category_no"`
	MainCategoryID uint64 `gorm:"column:main_category_id;not null;index" json:"main_category_id"`
	Name           string `gorm:"column:name;type:varchar(45);not null" json:"name"`
}

func (SubCategory) TableName() string {
	return "sub_categories"
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
