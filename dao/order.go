package dao

import (
	"context"
	"time"

	"Brandi/models"
	"Brandi/pkg/errs"
	"Brandi/pkg/temporal"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrInvalidOrderDetail = errs.NotFound("INVALID_ORDER_DETAIL_NO")

type Order struct {
	Repo[models.Order]
}

func NewOrder(db *gorm.DB) *Order {
	return &Order{
		Repo: NewRepo[models.Order](db),
	}
}

func (o *Order) CreateDetail(ctx context.Context, d *models.OrderDetail) error {
	return createOne(o.Conn(ctx), d)
}

func (o *Order) CreateProduct(ctx context.Context, p *models.OrderProduct) error {
	return createOne(o.Conn(ctx), p)
}

func (o *Order) CreateShipping(ctx context.Context, s *models.UserShippingDetail) error {
	return createOne(o.Conn(ctx), s)
}

func createOne(tx *gorm.DB, v any) error {
	res := tx.Create(v)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected != 1 {
		return errWriteFailed("insert", res.RowsAffected, 1)
	}
	return nil
}

// OrderLine 一个订单明细。价格和折扣取下单时刻的版本，商品名和主图取当前版本。
type OrderLine struct {
	OrderDetailNo     uint64          `gorm:"column:order_detail_no"`
	StartTime         time.Time       `gorm:"column:start_time"`
	UserNo            uint64          `gorm:"column:user_no"`
	Orderer           string          `gorm:"column:orderer"`
	ImageSmall        *string         `gorm:"column:image_small"`
	ProductName       *string         `gorm:"column:product_name"`
	Color             string          `gorm:"column:color"`
	Size              string          `gorm:"column:size"`
	Quantity          int             `gorm:"column:quantity"`
	Price             decimal.Decimal `gorm:"column:price"`
	DiscountRate      *int            `gorm:"column:discount_rate"`
	DiscountStartDate *time.Time      `gorm:"column:discount_start_date"`
	DiscountEndDate   *time.Time      `gorm:"column:discount_end_date"`
	OrderStatusID     uint64          `gorm:"column:order_status_id"`
	OrderStatus       string          `gorm:"column:order_status"`
	Receiver          string          `gorm:"column:receiver"`
	PhoneNumber       string          `gorm:"column:phone_number"`
	Address           string          `gorm:"column:address"`
	AdditionalAddress string          `gorm:"column:additional_address"`
	DeliveryRequest   string          `gorm:"column:delivery_request"`
}

const orderLineColumns = "OD.order_detail_no, OD.start_time, U.user_no, U.name AS orderer, " +
	"I.image_small, PDN.name AS product_name, C.name AS color, S.name AS size, OP.quantity, " +
	"PD.price, PD.discount_rate, PD.discount_start_date, PD.discount_end_date, " +
	"OD.order_status_id, OS.name AS order_status, " +
	"SH.receiver, SH.phone_number, SH.address, SH.additional_address, SH.delivery_request"

// orderLines 订单明细的公共连接，now 决定商品名与主图取哪个版本
func orderLines(db *gorm.DB, now time.Time) *gorm.DB {
	return db.Table("orders_details AS OD").
		Joins("INNER JOIN orders AS O ON O.order_no = OD.order_id").
		Joins("INNER JOIN users AS U ON U.user_no = O.user_id").
		Joins("INNER JOIN user_shipping_details AS SH ON SH.user_shipping_detail_no = OD.user_shipping_id").
		Joins("INNER JOIN order_product AS OP ON OP.order_detail_id = OD.order_detail_no").
		Joins("INNER JOIN product_options AS PO ON PO.product_option_no = OP.product_option_id").
		Joins("INNER JOIN colors AS C ON C.color_no = PO.color_id").
		Joins("INNER JOIN sizes AS S ON S.size_no = PO.size_id").
		Joins("INNER JOIN order_status AS OS ON OS.order_status_no = OD.order_status_id").
		Joins("INNER JOIN product_details AS PD ON PD.product_id = PO.product_id AND PD.start_time <= OD.start_time AND PD.close_time > OD.start_time").
		Joins("LEFT JOIN product_details AS PDN ON PDN.product_id = PO.product_id AND PDN.start_time <= ? AND PDN.close_time > ?", now, now).
		Joins("LEFT JOIN product_images AS PI ON PI.product_id = PO.product_id AND PI.is_main = 1 AND PI.start_time <= ? AND PI.close_time > ?", now, now).
		Joins("LEFT JOIN images AS I ON I.image_no = PI.image_id")
}

// distinctLines 每个明细只能连上一个价格版本、一个当前名称和一张主图，
// 同一明细出现两次说明版本区间重叠
func distinctLines(rows []*OrderLine) error {
	seen := make(map[uint64]struct{}, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.OrderDetailNo]; ok {
			return errs.Invariant("%s: several versions joined for order_detail_no=%d",
				temporal.ProductDetail.Name, r.OrderDetailNo)
		}
		seen[r.OrderDetailNo] = struct{}{}
	}
	return nil
}

// UserLines 用户的全部订单明细
func (o *Order) UserLines(ctx context.Context, userNo uint64, now time.Time) ([]*OrderLine, error) {
	rows := make([]*OrderLine, 0)
	err := orderLines(o.Conn(ctx), now).
		Select(orderLineColumns).
		Where("O.user_id = ?", userNo).
		Order("O.order_no, OD.order_detail_no").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if err := distinctLines(rows); err != nil {
		return nil, err
	}
	return rows, nil
}

// UserLine 用户的单个订单明细，不属于该用户时视为不存在
func (o *Order) UserLine(ctx context.Context, userNo, orderDetailNo uint64, now time.Time) (*OrderLine, error) {
	rows := make([]*OrderLine, 0)
	err := orderLines(o.Conn(ctx), now).
		Select(orderLineColumns).
		Where("O.user_id = ? AND OD.order_detail_no = ?", userNo, orderDetailNo).
		Limit(2).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, ErrInvalidOrderDetail.Withf("order_detail_no=%d", orderDetailNo)
	}
	if err := distinctLines(rows); err != nil {
		return nil, err
	}
	return rows[0], nil
}

// AdminLines 后台订单列表，status 为 nil 时不过滤
func (o *Order) AdminLines(ctx context.Context, status *uint64, now time.Time, limit, offset int) ([]*OrderLine, int64, error) {
	filter := func(q *gorm.DB) *gorm.DB {
		if status != nil {
			q = q.Where("OD.order_status_id = ?", *status)
		}
		return q
	}

	var total int64
	err := o.Conn(ctx).
		Table("orders_details AS OD").
		Scopes(filter).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}
	rows := make([]*OrderLine, 0)
	if total == 0 {
		return rows, 0, nil
	}
	err = orderLines(o.Conn(ctx), now).
		Select(orderLineColumns).
		Scopes(filter).
		Order("OD.order_detail_no DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	if err := distinctLines(rows); err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
