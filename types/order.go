package types

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderItemInput struct {
	ProductOptionID uint64 `json:"product_option_id" binding:"required"`
	Quantity        int    `json:"quantity" binding:"required,min=1"`
}

type ShippingInput struct {
	Receiver          string `json:"receiver" binding:"required,max=45"`
	PhoneNumber       string `json:"phone_number" binding:"required,max=45"`
	Address           string `json:"address" binding:"required,max=200"`
	AdditionalAddress string `json:"additional_address" binding:"max=200"`
	DeliveryRequest   string `json:"delivery_request" binding:"max=200"`
}

type PlaceOrderRequest struct {
	Items    []OrderItemInput `json:"items" binding:"required,min=1,dive"`
	Shipping ShippingInput    `json:"shipping" binding:"required"`
}

type PlaceOrderResponse struct {
	OrderNo      uint64   `json:"order_no"`
	OrderNumbers []string `json:"order_numbers"`
}

// OrderLine 订单明细展示，OrderNumber 为对外订单号
type OrderLine struct {
	OrderNumber  string          `json:"order_number"`
	OrderedAt    time.Time       `json:"ordered_at"`
	ImageSmall   string          `json:"image_small"`
	ProductName  string          `json:"product_name"`
	Color        string          `json:"color"`
	Size         string          `json:"size"`
	Quantity     int             `json:"quantity"`
	Price        decimal.Decimal `json:"price"`
	DiscountRate int             `json:"discount_rate"`
	SalePrice    decimal.Decimal `json:"sale_price"`
	TotalPrice   decimal.Decimal `json:"total_price"`
	OrderStatus  string          `json:"order_status"`
}

type Shipping struct {
	Receiver          string `json:"receiver"`
	PhoneNumber       string `json:"phone_number"`
	Address           string `json:"address"`
	AdditionalAddress string `json:"additional_address"`
	DeliveryRequest   string `json:"delivery_request"`
}

type OrderLineDetail struct {
	OrderLine
	Orderer  string   `json:"orderer"`
	Shipping Shipping `json:"shipping"`
}

type AdminOrderListRequest struct {
	Page   int     `form:"page"`
	Limit  int     `form:"limit"`
	Status *uint64 `form:"status"`
}

type AdminOrderLine struct {
	OrderLineDetail
	UserNo        uint64 `json:"user_no"`
	OrderStatusID uint64 `json:"order_status_id"`
}

type AdminOrderListResponse struct {
	Total int64             `json:"total"`
	Data  []*AdminOrderLine `json:"data"`
}
