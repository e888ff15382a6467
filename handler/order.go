package handler

import (
	"net/http"

	"Brandi/config"
	"Brandi/middleware"
	"Brandi/pkg/context"
	"Brandi/pkg/response"
	"Brandi/service"
	"Brandi/types"

	"github.com/gin-gonic/gin"
)

type Order struct {
	Config       *config.Config
	OrderService service.IOrderService
}

func (o *Order) RegisterRouter(r gin.IRouter) {
	orders := r.Group("/user/orders", middleware.Auth([]byte(o.Config.Jwt.Secret)))
	orders.POST("", context.Wrap(o.Place))              // 下单
	orders.GET("", context.Wrap(o.List))                // 我的订单
	orders.GET("/:orderNumber", context.Wrap(o.Detail)) // 订单详情
}

func (o *Order) Place(c *gin.Context) error {
	userNo, err := context.GetUserNo(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "UNAUTHORIZED")
	}
	var req types.PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	resp, err := o.OrderService.PlaceOrder(c.Request.Context(), userNo, &req)
	if err != nil {
		return err
	}
	c.JSON(http.StatusCreated, response.Response{Data: resp})
	return nil
}

func (o *Order) List(c *gin.Context) error {
	userNo, err := context.GetUserNo(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "UNAUTHORIZED")
	}
	lines, err := o.OrderService.ListUserOrders(c.Request.Context(), userNo)
	if err != nil {
		return err
	}
	response.Success(c, lines)
	return nil
}

func (o *Order) Detail(c *gin.Context) error {
	userNo, err := context.GetUserNo(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "UNAUTHORIZED")
	}
	line, err := o.OrderService.GetUserOrder(c.Request.Context(), userNo, c.Param("orderNumber"))
	if err != nil {
		return err
	}
	response.Success(c, line)
	return nil
}
