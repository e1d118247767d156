package gintool

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/codestudio_arena/model"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// Param 参数类型约束: P 为 *T 且实现 CommonParamInterface
type Param[T any] interface {
	*T
	model.CommonParamInterface
}

// WrapHandler 绑定 json 请求体, 失败时直接返回 400
func WrapHandler[T any, P Param[T]](h func(c *gin.Context, param P), log loggerv2.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		param := P(new(T))
		if !bindParam(c, param, true, log) {
			return
		}
		h(c, param)
	}
}

// WrapQueryHandler 绑定 query 参数, 用于 GET 请求
func WrapQueryHandler[T any, P Param[T]](h func(c *gin.Context, param P), log loggerv2.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		param := P(new(T))
		if !bindParam(c, param, false, log) {
			return
		}
		h(c, param)
	}
}

func bindParam(c *gin.Context, param model.CommonParamInterface, withBody bool, log loggerv2.Logger) bool {
	ctx := c.Request.Context()

	// JSON 与 Query 只绑定其一, 避免对同一结构体重复校验
	if withBody {
		if err := c.ShouldBindJSON(param); err != nil {
			badRequest(c, err)
			log.ErrorContext(ctx, "WrapHandler bind json failed", logger.Error(err))
			return false
		}
	} else if err := c.ShouldBindQuery(param); err != nil {
		badRequest(c, err)
		log.ErrorContext(ctx, "WrapHandler bind query failed", logger.Error(err))
		return false
	}

	param.SetRequestID(RequestID(c))
	return true
}

func badRequest(c *gin.Context, err error) {
	GinResponse(c, &Response{
		Code:    http.StatusBadRequest,
		Message: err.Error(),
	})
}
