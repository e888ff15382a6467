package context

import (
	"Brandi/pkg/errs"
	"Brandi/pkg/log"
	"Brandi/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserNo    = "user_no"
	CtxRequestID = "request_id"
)

type HandlerFunc func(*gin.Context) error

// Wrap turns an error-returning handler into a gin handler and writes the
// failure response: handler errors keep their status, tagged service errors
// map by kind and anything else becomes a 500.
func Wrap(h HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := h(c)
		if err == nil {
			return
		}
		// 如果已经写过响应，直接返回
		if c.Writer.Written() {
			return
		}

		var be *response.BizError
		if errors.As(err, &be) {
			response.Fail(c, be.Code, be.Msg)
			return
		}

		var se *errs.Error
		if errors.As(err, &se) {
			status := response.StatusOf(se.Kind)
			if status >= http.StatusInternalServerError {
				log.L.Error("request failed",
					zap.String("path", c.FullPath()),
					zap.String("kind", se.Kind.String()),
					zap.Any("request_id", c.Value(CtxRequestID)),
					zap.Error(err))
			}
			response.Fail(c, status, se.Code)
			return
		}

		log.L.Error("request failed",
			zap.String("path", c.FullPath()),
			zap.Any("request_id", c.Value(CtxRequestID)),
			zap.Error(err))
		response.Fail(c, http.StatusInternalServerError, "INTERNAL_ERROR")
	}
}

func GetUserNo(c *gin.Context) (uint64, error) {
	v, ok := c.Get(CtxUserNo)
	if !ok {
		return 0, errors.New("user_no missing")
	}

	uid, ok := v.(uint64)
	if !ok {
		return 0, errors.New("user_no has wrong type")
	}

	return uid, nil
}
