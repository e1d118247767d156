package gintool

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/to404hanga/codestudio_arena/constants"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// ContextRequestIDKey gin.Context 中保存请求 id 的键
const ContextRequestIDKey = "request_id"

// RequestID 获取当前请求 id, 未经过 ContextMiddleware 时读取请求头
func RequestID(c *gin.Context) string {
	if id := c.GetString(ContextRequestIDKey); id != "" {
		return id
	}
	return c.GetHeader(constants.HeaderRequestIDKey)
}

// GinContextToLoggerContext 将请求 id 挂到日志上下文
func GinContextToLoggerContext(c *gin.Context) context.Context {
	ctx := c.Request.Context()
	if requestID := RequestID(c); requestID != "" {
		ctx = loggerv2.ContextWithFields(ctx, logger.String("request_id", requestID))
	}
	return ctx
}

// ContextMiddleware 补全请求 id 并回写到响应头
func ContextMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := c.GetHeader(constants.HeaderRequestIDKey)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(ContextRequestIDKey, requestID)
		c.Header(constants.HeaderRequestIDKey, requestID)
		c.Request = c.Request.WithContext(GinContextToLoggerContext(c))
		c.Next()
	}
}
