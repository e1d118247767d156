package ioc

import (
	"log"
	"os"
	"time"

	"github.com/gin-contrib/pprof"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/to404hanga/codestudio_arena/config"
	"github.com/to404hanga/codestudio_arena/constants"
	"github.com/to404hanga/codestudio_arena/pkg/gintool"
	"github.com/to404hanga/codestudio_arena/web"
	"github.com/to404hanga/codestudio_arena/web/middleware"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

const EnvHostSecret = "ARENA_HOST_SECRET"

func InitGinServer(l loggerv2.Logger, hub *web.NotifyHub, sessionHandler *web.SessionHandler, healthHandler *web.HealthHandler) *web.GinServer {
	var cfg config.GinConfig
	if err := config.Load(&cfg); err != nil {
		log.Panicf("load gin config failed: %v", err)
	}

	// 优先使用环境变量中设置的服务端口与密钥
	if port := os.Getenv("SERVER_PORT"); port != "" {
		cfg.Addr = ":" + port
	}
	if secret := os.Getenv(EnvHostSecret); secret != "" {
		cfg.AuthSecret = secret
	}

	corsBuilder := middleware.NewCORSMiddlewareBuilder(
		cfg.AllowOrigins,
		cfg.AllowMethods,
		cfg.AllowHeaders,
		cfg.ExposeHeaders,
		cfg.AllowCredentials,
		time.Duration(cfg.MaxAge)*time.Second)
	jwtBuilder := middleware.NewJWTMiddlewareBuilder(cfg.AuthSecret, l,
		[]string{constants.HealthPath, constants.MetricsPath, "/debug/pprof"})

	engine := gin.Default()
	engine.Use(
		corsBuilder.Build(),
		gintool.ContextMiddleware(),
		jwtBuilder.Build(),
	)

	sessionHandler.Register(engine)
	hub.Register(engine)
	healthHandler.Register(engine)
	engine.GET(constants.MetricsPath, gin.WrapH(promhttp.Handler()))
	if cfg.EnablePprof {
		pprof.Register(engine)
	}

	return &web.GinServer{
		Engine: engine,
		Addr:   cfg.Addr,
	}
}
