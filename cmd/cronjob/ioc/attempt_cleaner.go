package ioc

import (
	"log"
	"time"

	"github.com/to404hanga/codestudio_arena/cmd/cronjob/config"
	commonconfig "github.com/to404hanga/codestudio_arena/config"
	"github.com/to404hanga/codestudio_arena/job"
	"github.com/to404hanga/codestudio_arena/job/cleaner"
	"github.com/to404hanga/codestudio_arena/service"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func InitAttemptCleaner(attemptSvc service.AttemptService, l loggerv2.Logger) *job.JobConfig {
	var cfg config.AttemptCleanerConfig
	if err := commonconfig.Load(&cfg); err != nil {
		log.Panicf("load attempt cleaner config failed: %v", err)
	}

	c := cleaner.NewAttemptCleaner(attemptSvc, l, time.Duration(cfg.TimeRange)*24*time.Hour)
	return &job.JobConfig{
		Name:        "运行提交记录清理",
		CronExpr:    cfg.CronExpr,
		JobFunc:     c.RunCleanup,
		Description: "清理过期未通过记录中的代码",
		Enabled:     cfg.Enabled,
		Timeout:     time.Duration(cfg.Timeout) * time.Millisecond,
	}
}
