package ioc

import (
	"context"
	"log"
	"time"

	"github.com/to404hanga/codestudio_arena/cmd/cronjob/config"
	commonconfig "github.com/to404hanga/codestudio_arena/config"
	"github.com/to404hanga/codestudio_arena/draft"
	"github.com/to404hanga/codestudio_arena/job"
	"github.com/to404hanga/codestudio_arena/job/cleaner"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// InitDraftCleaner 当前草稿存储不支持清理时返回 nil
func InitDraftCleaner(pruner draft.Pruner, l loggerv2.Logger) *job.JobConfig {
	var cfg config.DraftCleanerConfig
	if err := commonconfig.Load(&cfg); err != nil {
		log.Panicf("load draft cleaner config failed: %v", err)
	}
	if pruner == nil {
		if cfg.Enabled {
			l.WarnContext(context.Background(), "draft cleaner enabled but draft driver does not support pruning")
		}
		return nil
	}

	c := cleaner.NewDraftCleaner(pruner, l, cfg.RetentionDays)
	return &job.JobConfig{
		Name:        "草稿清理",
		CronExpr:    cfg.CronExpr,
		JobFunc:     c.RunCleanup,
		Description: "删除长时间未更新的草稿",
		Enabled:     cfg.Enabled,
		Timeout:     time.Duration(cfg.Timeout) * time.Millisecond,
	}
}
