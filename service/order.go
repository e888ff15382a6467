package service

import (
	"context"
	"sort"
	"time"

	"Brandi/config"
	"Brandi/dao"
	"Brandi/models"
	"Brandi/pkg/clock"
	"Brandi/pkg/database"
	"Brandi/pkg/errs"
	"Brandi/pkg/paginate"
	"Brandi/pkg/pricing"
	"Brandi/pkg/temporal"
	"Brandi/pkg/utils"
	"Brandi/types"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrNotOnSale            = errs.Invalid("NOT_ON_SALE")
	ErrInvalidOrderQuantity = errs.Invalid("INVALID_ORDER_QUANTITY")
	ErrOutOfStock           = errs.Conflict("OUT_OF_STOCK")
)

var _ IOrderService = (*OrderService)(nil)

type IOrderService interface {
	PlaceOrder(ctx context.Context, userNo uint64, req *types.PlaceOrderRequest) (*types.PlaceOrderResponse, error)
	ListUserOrders(ctx context.Context, userNo uint64) ([]*types.OrderLine, error)
	GetUserOrder(ctx context.Context, userNo uint64, orderNumber string) (*types.OrderLineDetail, error)
	AdminListOrders(ctx context.Context, req *types.AdminOrderListRequest) (*types.AdminOrderListResponse, error)
}

type OrderService struct {
	Config      *config.Config
	DB          *gorm.DB
	Clock       clock.Clock
	OrderRepo   *dao.Order
	ProductRepo *dao.Product
	OptionRepo  *dao.ProductOption
}

// mergeItems 同一选项出现多次时合并数量，并按选项号升序，固定加锁顺序
func mergeItems(in []types.OrderItemInput) []types.OrderItemInput {
	sum := make(map[uint64]int, len(in))
	for _, it := range in {
		sum[it.ProductOptionID] += it.Quantity
	}
	out := make([]types.OrderItemInput, 0, len(sum))
	for id, n := range sum {
		out = append(out, types.OrderItemInput{ProductOptionID: id, Quantity: n})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductOptionID < out[j].ProductOptionID })
	return out
}

// PlaceOrder 扣减库存与写入订单在同一事务内完成，任一明细失败整单回滚
func (s *OrderService) PlaceOrder(ctx context.Context, userNo uint64, req *types.PlaceOrderRequest) (*types.PlaceOrderResponse, error) {
	now := s.Clock.Now()
	items := mergeItems(req.Items)

	resp := &types.PlaceOrderResponse{OrderNumbers: make([]string, 0, len(items))}
	err := database.Transaction(ctx, s.DB, func(ctx context.Context) error {
		for _, it := range items {
			if err := s.takeStock(ctx, it, now); err != nil {
				return err
			}
		}

		shipping := &models.UserShippingDetail{
			UserID:            userNo,
			Receiver:          req.Shipping.Receiver,
			PhoneNumber:       req.Shipping.PhoneNumber,
			Address:           req.Shipping.Address,
			AdditionalAddress: req.Shipping.AdditionalAddress,
			DeliveryRequest:   req.Shipping.DeliveryRequest,
		}
		if err := s.OrderRepo.CreateShipping(ctx, shipping); err != nil {
			return err
		}
		order := &models.Order{UserID: userNo}
		if err := s.OrderRepo.Create(ctx, order); err != nil {
			return err
		}
		resp.OrderNo = order.OrderNo

		for _, it := range items {
			detail := &models.OrderDetail{
				OrderID:        order.OrderNo,
				UserShippingID: shipping.UserShippingDetailNo,
				OrderStatusID:  models.OrderStatusPaid,
				StartTime:      now,
			}
			if err := s.OrderRepo.CreateDetail(ctx, detail); err != nil {
				return err
			}
			line := &models.OrderProduct{
				OrderDetailID:   detail.OrderDetailNo,
				ProductOptionID: it.ProductOptionID,
				Quantity:        it.Quantity,
			}
			if err := s.OrderRepo.CreateProduct(ctx, line); err != nil {
				return err
			}
			resp.OrderNumbers = append(resp.OrderNumbers, utils.GenHashID(s.Config.App.HashSalt, detail.OrderDetailNo))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

// takeStock 校验选项可售并生成新的库存版本
func (s *OrderService) takeStock(ctx context.Context, it types.OrderItemInput, now time.Time) error {
	opt, err := s.OptionRepo.LockLive(ctx, it.ProductOptionID)
	if err != nil {
		return err
	}
	if _, err := s.ProductRepo.FindLive(ctx, opt.ProductID); err != nil {
		if errs.KindOf(err) == errs.KindNotFound {
			return ErrNotOnSale.Withf("product_no=%d", opt.ProductID)
		}
		return err
	}

	detail, err := dao.ResolveAt[models.ProductDetail](ctx, s.DB, temporal.ProductDetail, opt.ProductID, now)
	if err != nil {
		if errs.KindOf(err) == errs.KindNotFound {
			return ErrNotOnSale.Withf("product_no=%d", opt.ProductID)
		}
		return err
	}
	if !detail.IsActivated {
		return ErrNotOnSale.Withf("product_no=%d", opt.ProductID)
	}
	if it.Quantity < detail.MinSalesQuantity || it.Quantity > detail.MaxSalesQuantity {
		return ErrInvalidOrderQuantity.Withf("quantity=%d min=%d max=%d", it.Quantity, detail.MinSalesQuantity, detail.MaxSalesQuantity)
	}

	stock, err := dao.ResolveAt[models.Quantity](ctx, s.DB, temporal.Quantity, opt.ProductOptionNo, now)
	if err != nil {
		return asInvariant(err)
	}
	if stock.Quantity < it.Quantity {
		return ErrOutOfStock.Withf("product_option_no=%d stock=%d", opt.ProductOptionNo, stock.Quantity)
	}
	next := &models.Quantity{ProductOptionID: opt.ProductOptionNo, Quantity: stock.Quantity - it.Quantity}
	return dao.Revise[models.Quantity](ctx, s.DB, temporal.Quantity, opt.ProductOptionNo, next, now)
}

func (s *OrderService) line(r *dao.OrderLine) types.OrderLine {
	rate := pricing.Window{Rate: r.DiscountRate, Start: r.DiscountStartDate, End: r.DiscountEndDate}.EffectiveRate(r.StartTime)
	sale := pricing.SalePrice(r.Price, rate)
	line := types.OrderLine{
		OrderNumber:  utils.GenHashID(s.Config.App.HashSalt, r.OrderDetailNo),
		OrderedAt:    r.StartTime,
		Color:        r.Color,
		Size:         r.Size,
		Quantity:     r.Quantity,
		Price:        pricing.ListPrice(r.Price),
		DiscountRate: rate,
		SalePrice:    sale,
		TotalPrice:   sale.Mul(decimal.NewFromInt(int64(r.Quantity))),
		OrderStatus:  r.OrderStatus,
	}
	if r.ImageSmall != nil {
		line.ImageSmall = *r.ImageSmall
	}
	if r.ProductName != nil {
		line.ProductName = *r.ProductName
	}
	return line
}

func (s *OrderService) lineDetail(r *dao.OrderLine) types.OrderLineDetail {
	return types.OrderLineDetail{
		OrderLine: s.line(r),
		Orderer:   r.Orderer,
		Shipping: types.Shipping{
			Receiver:          r.Receiver,
			PhoneNumber:       r.PhoneNumber,
			Address:           r.Address,
			AdditionalAddress: r.AdditionalAddress,
			DeliveryRequest:   r.DeliveryRequest,
		},
	}
}

func (s *OrderService) ListUserOrders(ctx context.Context, userNo uint64) ([]*types.OrderLine, error) {
	rows, err := s.OrderRepo.UserLines(ctx, userNo, s.Clock.Now())
	if err != nil {
		return nil, err
	}
	items := make([]*types.OrderLine, 0, len(rows))
	for _, r := range rows {
		l := s.line(r)
		items = append(items, &l)
	}
	return items, nil
}

// GetUserOrder orderNumber 为对外订单号，解码失败视为订单不存在
func (s *OrderService) GetUserOrder(ctx context.Context, userNo uint64, orderNumber string) (*types.OrderLineDetail, error) {
	detailNo, err := utils.DecodeHashID(s.Config.App.HashSalt, orderNumber)
	if err != nil {
		return nil, dao.ErrInvalidOrderDetail.Withf("order_number=%q", orderNumber)
	}
	r, err := s.OrderRepo.UserLine(ctx, userNo, detailNo, s.Clock.Now())
	if err != nil {
		return nil, err
	}
	d := s.lineDetail(r)
	return &d, nil
}

func (s *OrderService) AdminListOrders(ctx context.Context, req *types.AdminOrderListRequest) (*types.AdminOrderListResponse, error) {
	page := paginate.New(req.Page, req.Limit)
	rows, total, err := s.OrderRepo.AdminLines(ctx, req.Status, s.Clock.Now(), page.Limit, page.Offset())
	if err != nil {
		return nil, err
	}
	items := make([]*types.AdminOrderLine, 0, len(rows))
	for _, r := range rows {
		items = append(items, &types.AdminOrderLine{
			OrderLineDetail: s.lineDetail(r),
			UserNo:          r.UserNo,
			OrderStatusID:   r.OrderStatusID,
		})
	}
	return &types.AdminOrderListResponse{Total: total, Data: items}, nil
}
