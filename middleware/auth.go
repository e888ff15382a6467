package middleware

import (
	"net/http"
	"strings"

	"Brandi/pkg/context"
	"Brandi/pkg/jwt"
	"Brandi/pkg/log"
	"Brandi/pkg/response"
	"Brandi/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Auth 校验 Bearer access token，成功后把 user_no 写入上下文
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED")
			return
		}

		claims, err := jwt.ParseToken(secret, jwt.TypeAccess, parts[1])
		if err != nil {
			log.L.Debug("token rejected", zap.Error(err))
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN")
			return
		}
		c.Set(context.CtxUserNo, claims.UserNo)

		c.Next()
	}
}

// RequireAdmin 必须挂在 Auth 之后
func RequireAdmin(users service.IUserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userNo, err := context.GetUserNo(c)
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, "UNAUTHORIZED")
			return
		}
		ok, err := users.IsAdmin(c.Request.Context(), userNo)
		if err != nil {
			log.L.Error("admin check failed", zap.Uint64("user_no", userNo), zap.Error(err))
			response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR")
			return
		}
		if !ok {
			response.Abort(c, http.StatusForbidden, "PERMISSION_DENIED")
			return
		}
		c.Next()
	}
}
