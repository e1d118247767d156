package cleaner

import (
	"context"
	"time"

	"github.com/to404hanga/codestudio_arena/draft"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type CleanupStats struct {
	Deleted         int64         `json:"deleted"`
	Cutoff          time.Time     `json:"cutoff"`
	ProcessDuration time.Duration `json:"process_duration"`
}

// DraftCleaner 删除长时间未更新的草稿; 草稿默认永久保留, 只有配置开启时才会注册
type DraftCleaner struct {
	pruner        draft.Pruner
	log           loggerv2.Logger
	retentionDays int
	now           func() time.Time
}

func NewDraftCleaner(pruner draft.Pruner, log loggerv2.Logger, retentionDays int) *DraftCleaner {
	return &DraftCleaner{
		pruner:        pruner,
		log:           log,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

func (c *DraftCleaner) RunCleanup(ctx context.Context) error {
	stats, err := c.cleanup(ctx)
	if err != nil {
		c.log.ErrorContext(ctx, "draft cleanup failed", logger.Error(err))
		return err
	}
	c.log.InfoContext(ctx, "draft cleanup completed", logger.Any("stats", stats))
	return nil
}

func (c *DraftCleaner) cleanup(ctx context.Context) (*CleanupStats, error) {
	start := c.now()
	stats := &CleanupStats{Cutoff: start.AddDate(0, 0, -c.retentionDays)}

	deleted, err := c.pruner.DeleteBefore(ctx, stats.Cutoff)
	if err != nil {
		return nil, err
	}
	stats.Deleted = deleted
	stats.ProcessDuration = c.now().Sub(start)
	return stats, nil
}
