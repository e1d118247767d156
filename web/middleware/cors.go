package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/to404hanga/codestudio_arena/constants"
)

type CORSMiddlewareBuilder struct {
	cfg cors.Config
}

func NewCORSMiddlewareBuilder(allowOrigins, allowMethods, allowHeaders, exposeHeaders []string, allowCredentials bool, maxAge time.Duration) *CORSMiddlewareBuilder {
	cfg := cors.DefaultConfig()
	if len(allowOrigins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = allowOrigins
	}
	if len(allowMethods) > 0 {
		cfg.AllowMethods = allowMethods
	}
	cfg.AllowHeaders = append(cfg.AllowHeaders, "Authorization", constants.HeaderRequestIDKey)
	cfg.AllowHeaders = append(cfg.AllowHeaders, allowHeaders...)
	cfg.ExposeHeaders = append([]string{constants.HeaderRequestIDKey, "Content-Disposition"}, exposeHeaders...)
	// 允许所有来源时不能携带凭证
	cfg.AllowCredentials = allowCredentials && !cfg.AllowAllOrigins
	if maxAge > 0 {
		cfg.MaxAge = maxAge
	}
	return &CORSMiddlewareBuilder{cfg: cfg}
}

func (b *CORSMiddlewareBuilder) Build() gin.HandlerFunc {
	return cors.New(b.cfg)
}
