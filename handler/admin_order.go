package handler

import (
	"Brandi/config"
	"Brandi/middleware"
	"Brandi/pkg/context"
	"Brandi/pkg/response"
	"Brandi/service"
	"Brandi/types"

	"github.com/gin-gonic/gin"
)

type AdminOrder struct {
	Config       *config.Config
	UserService  service.IUserService
	OrderService service.IOrderService
}

func (a *AdminOrder) RegisterRouter(r gin.IRouter) {
	admin := r.Group("/admin/order",
		middleware.Auth([]byte(a.Config.Jwt.Secret)),
		middleware.RequireAdmin(a.UserService))
	admin.GET("", context.Wrap(a.List))
}

func (a *AdminOrder) List(c *gin.Context) error {
	var req types.AdminOrderListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	resp, err := a.OrderService.AdminListOrders(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	response.Success(c, resp)
	return nil
}
