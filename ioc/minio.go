package ioc

import (
	"log"

	"github.com/to404hanga/codestudio_arena/config"
	"github.com/to404hanga/codestudio_arena/pkg/minio"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func newMinIO(l loggerv2.Logger) *minio.MinIOService {
	var cfg config.MinIOConfig
	if err := config.Load(&cfg); err != nil {
		log.Panicf("load minio config failed: %v", err)
	}
	svc, err := minio.NewMinIOService(l, cfg.Endpoint, cfg.UseSSL)
	if err != nil {
		log.Panicf("init minio failed: %v", err)
	}
	return svc
}
