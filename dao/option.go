package dao

import (
	"context"
	"time"

	"Brandi/models"
	"Brandi/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidOptionID = errs.Invalid("INVALID_OPTION_ID")

type ProductOption struct {
	Repo[models.ProductOption]
}

func NewProductOption(db *gorm.DB) *ProductOption {
	return &ProductOption{
		Repo: NewRepo[models.ProductOption](db),
	}
}

// OptionStock 一个在售选项及其 at 时刻的库存
type OptionStock struct {
	ProductOptionNo uint64 `gorm:"column:product_option_no"`
	ColorID         uint64 `gorm:"column:color_id"`
	ColorName       string `gorm:"column:color_name"`
	SizeID          uint64 `gorm:"column:size_id"`
	SizeName        string `gorm:"column:size_name"`
	Quantity        int    `gorm:"column:quantity"`
}

// LiveWithStock 商品未删除选项的库存，按选项号排序
func (o *ProductOption) LiveWithStock(ctx context.Context, productNo uint64, at time.Time) ([]*OptionStock, error) {
	rows := make([]*OptionStock, 0)
	err := o.Conn(ctx).
		Table("product_options AS PO").
		Select("PO.product_option_no, PO.color_id, C.name AS color_name, PO.size_id, S.name AS size_name, Q.quantity").
		Joins("INNER JOIN quantities AS Q ON Q.product_option_id = PO.product_option_no AND Q.start_time <= ? AND Q.close_time > ?", at, at).
		Joins("INNER JOIN colors AS C ON C.color_no = PO.color_id").
		Joins("INNER JOIN sizes AS S ON S.size_no = PO.size_id").
		Where("PO.product_id = ? AND PO.is_deleted = 0", productNo).
		Order("PO.product_option_no").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type ColorRow struct {
	ColorID   uint64 `gorm:"column:color_id" json:"color_id"`
	ColorName string `gorm:"column:color_name" json:"color_name"`
}

// Colors 商品未删除选项中出现的颜色
func (o *ProductOption) Colors(ctx context.Context, productNo uint64) ([]*ColorRow, error) {
	rows := make([]*ColorRow, 0)
	err := o.Conn(ctx).
		Table("product_options AS PO").
		Distinct("C.color_no AS color_id", "C.name AS color_name").
		Joins("INNER JOIN colors AS C ON C.color_no = PO.color_id").
		Where("PO.product_id = ? AND PO.is_deleted = 0", productNo).
		Order("color_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

type SizeStock struct {
	SizeID   uint64 `gorm:"column:size_id" json:"size_id"`
	Size     string `gorm:"column:size" json:"size"`
	Quantity int    `gorm:"column:quantity" json:"quantity"`
}

// SizesInStock 指定颜色下 at 时刻有货的尺码，尺码号倒序
func (o *ProductOption) SizesInStock(ctx context.Context, productNo, colorID uint64, at time.Time) ([]*SizeStock, error) {
	rows := make([]*SizeStock, 0)
	err := o.Conn(ctx).
		Table("product_options AS PO").
		Select("S.size_no AS size_id, S.name AS size, Q.quantity").
		Joins("INNER JOIN sizes AS S ON S.size_no = PO.size_id").
		Joins("INNER JOIN quantities AS Q ON Q.product_option_id = PO.product_option_no AND Q.start_time <= ? AND Q.close_time > ?", at, at).
		Where("PO.product_id = ? AND PO.color_id = ? AND PO.is_deleted = 0 AND Q.quantity > 0", productNo, colorID).
		Order("S.size_no DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// LockLive 锁定未删除的选项行，下单扣库存前调用。必须在事务内调用。
func (o *ProductOption) LockLive(ctx context.Context, optionNo uint64) (*models.ProductOption, error) {
	var items []*models.ProductOption
	err := o.Conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_option_no = ? AND is_deleted = 0", optionNo).
		Limit(1).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrInvalidOptionID.Withf("product_option_no=%d", optionNo)
	}
	return items[0], nil
}

// LockByProduct 锁定商品全部未删除选项，修改选项前调用。必须在事务内调用。
func (o *ProductOption) LockByProduct(ctx context.Context, productNo uint64) ([]*models.ProductOption, error) {
	items := make([]*models.ProductOption, 0)
	err := o.Conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_id = ? AND is_deleted = 0", productNo).
		Order("product_option_no").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// SoftDelete 标记删除并记录删除时间，选项行本身保留供历史订单引用
func (o *ProductOption) SoftDelete(ctx context.Context, optionNo uint64, at time.Time) error {
	res := o.Model(ctx).
		Where("product_option_no = ? AND is_deleted = 0", optionNo).
		Updates(map[string]any{"is_deleted": true, "deleted_at": at})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return errWriteFailed("delete product_option", res.RowsAffected, 1)
	}
	return nil
}
