package handler

import (
	"net/http"
	"strconv"

	"Brandi/pkg/response"

	"github.com/gin-gonic/gin"
)

// paramID 解析路径中的数字编号，非法时返回 400 和给定的错误码
func paramID(c *gin.Context, name, code string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, response.NewError(http.StatusBadRequest, code)
	}
	return id, nil
}

func badRequest(err error) error {
	return response.NewError(http.StatusBadRequest, err.Error())
}
