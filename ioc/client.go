package ioc

import (
	"log"
	"os"
	"time"

	"github.com/to404hanga/codestudio_arena/client"
	"github.com/to404hanga/codestudio_arena/config"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

const EnvArenaAPIToken = "ARENA_API_TOKEN"

func InitArenaClient(l loggerv2.Logger) client.ArenaClient {
	var cfg config.ArenaAPIConfig
	if err := config.Load(&cfg); err != nil {
		log.Panicf("load arena api config failed: %v", err)
	}

	// 优先使用环境变量中的 token
	raw := cfg.Token
	if env := os.Getenv(EnvArenaAPIToken); env != "" {
		raw = env
	}
	token := client.NewStaticToken(raw)
	if exp := token.ExpiresAt(); !exp.IsZero() {
		l.Info("arena api token loaded",
			logger.String("subject", token.Subject()),
			logger.String("expires_at", exp.Format(time.RFC3339)))
	}

	return client.NewArenaClient(cfg.BaseURL, time.Duration(cfg.Timeout)*time.Millisecond, token, l)
}
