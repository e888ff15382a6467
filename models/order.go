package models

import "time"

// Order 订单主表
type Order struct {
	OrderNo   uint64    `gorm:"column:order_no;primaryKey;autoIncrement" json:"order_no"`
	UserID    uint64    `gorm:"column:user_id;not null;index:idx_orders_user" json:"user_id"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderDetail 订单明细，StartTime 是渲染历史价格时使用的时刻
type OrderDetail struct {
	OrderDetailNo  uint64    `gorm:"column:order_detail_no;primaryKey;autoIncrement" json:"order_detail_no"`
	OrderID        uint64    `gorm:"column:order_id;not null;index:idx_orders_details_order" json:"order_id"`
	UserShippingID uint64    `gorm:"column:user_shipping_id;not null" json:"user_shipping_id"`
	OrderStatusID  uint64    `gorm:"column:order_status_id;not null;default:1;index" json:"order_status_id"`
	StartTime      time.Time `gorm:"column:start_time;not null" json:"start_time"`
}

func (OrderDetail) TableName() string {
	return "orders_details"
}

type OrderProduct struct {
	OrderProductNo  uint64 `gorm:"column:order_product_no;primaryKey;autoIncrement" json:"order_product_no"`
	OrderDetailID   uint64 `gorm:"column:order_detail_id;not null;index" json:"order_detail_id"`
	ProductOptionID uint64 `gorm:"column:product_option_id;not null;index" json:"product_option_id"`
	Quantity        int    `gorm:"column:quantity;not null" json:"quantity"`
}

func (OrderProduct) TableName() string {
	return "order_product"
}

const (
	OrderStatusPaid uint64 = iota + 1
	OrderStatusPreparing
	OrderStatusShipping
	OrderStatusDelivered
	OrderStatusConfirmed
)

type OrderStatus struct {
	OrderStatusNo uint64 `gorm:"column:order_status_no;primaryKey" json:"order_status_no"`
	Name          string `gorm:"column:name;type:varchar(45);not null" json:"name"`
}

func (OrderStatus) TableName() string {
	return "order_status"
}

// DefaultOrderStatuses 是 migrate 写入的初始状态
var DefaultOrderStatuses = []OrderStatus{
	{OrderStatusNo: OrderStatusPaid, Name: "결제완료"},
	{OrderStatusNo: OrderStatusPreparing, Name: "상품준비"},
	{OrderStatusNo: OrderStatusShipping, Name: "배송중"},
	{OrderStatusNo: OrderStatusDelivered, Name: "배송완료"},
	{OrderStatusNo: OrderStatusConfirmed, Name: "구매확정"},
}
