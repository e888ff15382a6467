package dao

import (
	"context"
	"time"

	"Brandi/models"
	"Brandi/pkg/errs"
	"Brandi/pkg/pricing"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInvalidProductID = errs.NotFound("INVALID_PRODUCT_ID")

type Product struct {
	Repo[models.Product]
}

func NewProduct(db *gorm.DB) *Product {
	return &Product{
		Repo: NewRepo[models.Product](db),
	}
}

// FindLive 未删除的商品
func (p *Product) FindLive(ctx context.Context, productNo uint64) (*models.Product, error) {
	item, err := p.FindByWhere(ctx, "product_no = ? AND is_deleted = 0", productNo)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrInvalidProductID.Withf("product_no=%d", productNo)
	}
	return item, nil
}

// LockLive 对商品行加写锁，同一商品的并发编辑在此排队。必须在事务内调用。
func (p *Product) LockLive(ctx context.Context, productNo uint64) (*models.Product, error) {
	var items []*models.Product
	err := p.Conn(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("product_no = ? AND is_deleted = 0", productNo).
		Limit(1).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrInvalidProductID.Withf("product_no=%d", productNo)
	}
	return items[0], nil
}

type ProductCard struct {
	ProductNo      uint64          `gorm:"column:product_no"`
	ThumbnailImage string          `gorm:"column:thumbnail_image"`
	ProductName    string          `gorm:"column:product_name"`
	OriginalPrice  decimal.Decimal `gorm:"column:original_price"`
	DiscountRate   int             `gorm:"column:discount_rate"`
}

// ListDisplayed 前台商品列表：at 时刻在售且展示的商品，新商品在前。
// 区间连接依赖每个商品在 at 时刻只有一个详情版本和一张主图，重叠时会出现重复行。
func (p *Product) ListDisplayed(ctx context.Context, at time.Time) ([]*ProductCard, error) {
	var rows []*ProductCard
	err := p.Conn(ctx).
		Table("products AS P").
		Select("P.product_no, I.image_medium AS thumbnail_image, PD.name AS product_name, PD.price AS original_price, "+
			pricing.EffectiveRateSQL("PD")+" AS discount_rate", at, at).
		Joins("INNER JOIN product_images AS PI ON PI.product_id = P.product_no AND PI.is_main = 1 AND PI.start_time <= ? AND PI.close_time > ?", at, at).
		Joins("INNER JOIN images AS I ON I.image_no = PI.image_id AND I.is_deleted = 0").
		Joins("INNER JOIN product_details AS PD ON PD.product_id = P.product_no AND PD.is_activated = 1 AND PD.is_displayed = 1 AND PD.start_time <= ? AND PD.close_time > ?", at, at).
		Where("P.is_deleted = 0").
		Order("P.product_no DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if err := distinctProducts(rows, func(r *ProductCard) uint64 { return r.ProductNo }); err != nil {
		return nil, err
	}
	return rows, nil
}

// distinctProducts 列表里同一商品出现两次说明其版本区间重叠
func distinctProducts[T any](rows []*T, key func(*T) uint64) error {
	seen := make(map[uint64]struct{}, len(rows))
	for _, r := range rows {
		no := key(r)
		if _, ok := seen[no]; ok {
			return errs.Invariant("product_no=%d joined to several current versions", no)
		}
		seen[no] = struct{}{}
	}
	return nil
}

// AdminFilter 后台商品列表的筛选条件，nil 表示不过滤
type AdminFilter struct {
	SellYn       *bool
	DiscountYn   *bool
	ExhibitionYn *bool
	StartDate    *time.Time
	EndDate      *time.Time
	ProductName  *string
	ProductNo    *uint64
	ProductCode  *string
}

type AdminProductRow struct {
	CreatedAt    time.Time       `gorm:"column:created_at"`
	ImageSmall   string          `gorm:"column:image_small"`
	ProductName  string          `gorm:"column:product_name"`
	ProductNo    uint64          `gorm:"column:product_no"`
	ProductCode  string          `gorm:"column:product_code"`
	Price        decimal.Decimal `gorm:"column:price"`
	DiscountRate int             `gorm:"column:discount_rate"`
	IsDisplayed  bool            `gorm:"column:is_displayed"`
	IsActivated  bool            `gorm:"column:is_activated"`
}

// AdminQuery 组装后台列表的 FROM/JOIN/WHERE 部分，列表与计数共用。
// 依赖单一当前版本：详情或主图区间重叠时同一商品会出现多行，总数也随之偏大。
// 当前页出现重复商品时 ListForAdmin 报不变式错误，计数本身不做检查。
func AdminQuery(db *gorm.DB, f AdminFilter, at time.Time) *gorm.DB {
	q := db.Table("products AS P").
		Joins("INNER JOIN product_details AS PD ON PD.product_id = P.product_no AND PD.start_time <= ? AND PD.close_time > ?", at, at).
		Joins("INNER JOIN product_images AS PI ON PI.product_id = P.product_no AND PI.is_main = 1 AND PI.start_time <= ? AND PI.close_time > ?", at, at).
		Joins("INNER JOIN images AS I ON I.image_no = PI.image_id AND I.is_deleted = 0").
		Where("P.is_deleted = 0")

	if f.SellYn != nil {
		q = q.Where("PD.is_activated = ?", *f.SellYn)
	}
	if f.DiscountYn != nil {
		if *f.DiscountYn {
			q = q.Where(pricing.EffectiveRateSQL("PD")+" > 0", at, at)
		} else {
			q = q.Where(pricing.EffectiveRateSQL("PD")+" = 0", at, at)
		}
	}
	if f.ExhibitionYn != nil {
		q = q.Where("PD.is_displayed = ?", *f.ExhibitionYn)
	}
	if f.StartDate != nil {
		q = q.Where("P.created_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		// 结束日期当天整天都算在内
		q = q.Where("P.created_at < ?", f.EndDate.AddDate(0, 0, 1))
	}
	if f.ProductName != nil {
		q = q.Where("PD.name LIKE ?", "%"+*f.ProductName+"%")
	}
	if f.ProductNo != nil {
		q = q.Where("P.product_no = ?", *f.ProductNo)
	}
	if f.ProductCode != nil {
		q = q.Where("P.product_code = ?", *f.ProductCode)
	}
	return q
}

// ListForAdmin 返回当前页及筛选后的总数
func (p *Product) ListForAdmin(ctx context.Context, f AdminFilter, at time.Time, limit, offset int) ([]*AdminProductRow, int64, error) {
	var total int64
	if err := AdminQuery(p.Conn(ctx), f, at).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	rows := make([]*AdminProductRow, 0)
	if total == 0 {
		return rows, 0, nil
	}
	err := AdminQuery(p.Conn(ctx), f, at).
		Select("P.created_at, I.image_small, PD.name AS product_name, P.product_no, P.product_code, PD.price, "+
			pricing.EffectiveRateSQL("PD")+" AS discount_rate, PD.is_displayed, PD.is_activated", at, at).
		Order("P.product_no DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	if err := distinctProducts(rows, func(r *AdminProductRow) uint64 { return r.ProductNo }); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// SoftDelete 标记商品删除
func (p *Product) SoftDelete(ctx context.Context, productNo uint64) error {
	res := p.Model(ctx).Where("product_no = ? AND is_deleted = 0", productNo).Update("is_deleted", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != 1 {
		return errWriteFailed("delete product", res.RowsAffected, 1)
	}
	return nil
}
