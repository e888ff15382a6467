package handler

import (
	"net/http"
	"strings"

	"Brandi/config"
	"Brandi/pkg/context"
	"Brandi/pkg/response"
	"Brandi/service"
	"Brandi/types"

	"github.com/gin-gonic/gin"
)

type User struct {
	Config      *config.Config
	UserService service.IUserService
}

func (u *User) RegisterRouter(r gin.IRouter) {
	user := r.Group("/user")
	user.POST("/signup", context.Wrap(u.SignUp))              // 注册
	user.POST("/signin", context.Wrap(u.SignIn))              // 登录
	user.POST("/google-signin", context.Wrap(u.GoogleSignIn)) // Google 登录
}

func (u *User) SignUp(c *gin.Context) error {
	var req types.SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	resp, err := u.UserService.SignUp(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	c.JSON(http.StatusCreated, resp)
	return nil
}

func (u *User) SignIn(c *gin.Context) error {
	var req types.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return badRequest(err)
	}
	resp, err := u.UserService.SignIn(c.Request.Context(), &req)
	if err != nil {
		return err
	}
	c.JSON(http.StatusOK, resp)
	return nil
}

// GoogleSignIn ID token 放在 Authorization 头里，可带 Bearer 前缀
func (u *User) GoogleSignIn(c *gin.Context) error {
	token := strings.TrimSpace(strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer "))
	if token == "" {
		return response.NewError(http.StatusUnauthorized, "FAIL_SOCIAL_LOGIN")
	}
	resp, err := u.UserService.GoogleSignIn(c.Request.Context(), token)
	if err != nil {
		return err
	}
	c.JSON(http.StatusOK, resp)
	return nil
}
