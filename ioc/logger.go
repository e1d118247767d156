package ioc

import (
	"log"

	"github.com/to404hanga/codestudio_arena/config"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func InitLogger() loggerv2.Logger {
	var cfg config.LoggerConfig
	if err := config.Load(&cfg); err != nil {
		log.Panicf("load logger config failed: %v", err)
	}
	zl, err := cfg.BuildZap()
	if err != nil {
		log.Panicf("build logger failed: %v", err)
	}
	return loggerv2.NewZapLogger(zl)
}
