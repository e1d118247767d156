package gintool

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Response struct {
	Code      int    `json:"code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	RequestID string `json:"request_id"`
}

// GinResponse 业务状态放在 Code 中, HTTP 状态码始终为 200
func GinResponse(c *gin.Context, resp *Response) {
	resp.RequestID = RequestID(c)
	c.JSON(http.StatusOK, resp)
}
