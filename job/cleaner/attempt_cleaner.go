package cleaner

import (
	"context"
	"time"

	"github.com/to404hanga/codestudio_arena/service"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// AttemptCleaner 清理过期的未通过记录中的代码
type AttemptCleaner struct {
	attemptSvc service.AttemptService
	log        loggerv2.Logger
	timeRange  time.Duration
	now        func() time.Time
}

func NewAttemptCleaner(attemptSvc service.AttemptService, log loggerv2.Logger, timeRange time.Duration) *AttemptCleaner {
	return &AttemptCleaner{
		attemptSvc: attemptSvc,
		log:        log,
		timeRange:  timeRange,
		now:        time.Now,
	}
}

func (c *AttemptCleaner) RunCleanup(ctx context.Context) error {
	deadline := c.now().Add(-c.timeRange)
	c.log.InfoContext(ctx, "starting attempt cleanup", logger.String("deadline", deadline.Format(time.RFC3339)))

	cleaned, err := c.attemptSvc.CleanFailedAttempts(ctx, deadline)
	if err != nil {
		return err
	}

	c.log.InfoContext(ctx, "attempt cleanup completed", logger.Int64("cleaned", cleaned))
	return nil
}
