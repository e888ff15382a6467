package handler

import (
	"net/http"

	"Brandi/config"
	"Brandi/middleware"
	"Brandi/pkg/context"
	"Brandi/service"
	"Brandi/types"

	"github.com/gin-gonic/gin"
)

type AdminUser struct {
	Config      *config.Config
	UserService service.IUserService
}

func (a *AdminUser) RegisterRouter(r gin.IRouter) {
	admin := r.Group("/admin/user",
		middleware.Auth([]byte(a.Config.Jwt.Secret)),
		middleware.RequireAdmin(a.UserService))
	admin.GET("/userlist", context.Wrap(a.UserList)) // 用户列表
}

func (a *AdminUser) UserList(c *gin.Context) error {
	var req types.UserListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		return badRequest(err)
	}
	resp, err := a.UserService.ListUsers(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	c.JSON(http.StatusOK, resp)
	return nil
}
