package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// 业务错误码
const (
	CodeOK             = 0
	CodeBadRequest     = 4001
	CodeUnsupported    = 4002
	CodeTooLarge       = 4003
	CodeUnreadable     = 4220
	CodeNotFound       = 4040
	CodeRunLogDisabled = 5001
	CodeInternal       = 5000
)

// Response 统一响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    CodeOK,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, status, code int, message string) {
	c.JSON(status, Response{
		Code:    code,
		Message: message,
	})
}
