package middleware

import (
	"time"

	"Brandi/pkg/context"
	"Brandi/pkg/log"
	"Brandi/pkg/snowflake"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const HeaderRequestID = "X-Request-Id"

// GinZap 访问日志。上游没带请求号时生成一个，并回写到响应头
func GinZap() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		rid := c.GetHeader(HeaderRequestID)
		if rid == "" {
			rid = snowflake.GenRequestID()
		}
		c.Set(context.CtxRequestID, rid)
		c.Header(HeaderRequestID, rid)

		c.Next()

		fields := []zap.Field{
			zap.String("request_id", rid),
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.String("query", c.Request.URL.RawQuery),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", c.ClientIP()),
		}
		if len(c.Errors) > 0 {
			log.L.Error("http", append(fields, zap.String("errors", c.Errors.String()))...)
			return
		}
		log.L.Info("http", fields...)
	}
}
