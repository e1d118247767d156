package ioc

import (
	"log"

	"github.com/to404hanga/codestudio_arena/draft"
	"github.com/to404hanga/codestudio_arena/job"
	"github.com/to404hanga/codestudio_arena/service"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func InitScheduler(l loggerv2.Logger, attemptSvc service.AttemptService, pruner draft.Pruner) *job.CronScheduler {
	scheduler := job.NewCronScheduler(l)

	jobs := []*job.JobConfig{
		InitAttemptCleaner(attemptSvc, l),
		InitDraftCleaner(pruner, l),
	}
	for _, cfg := range jobs {
		if cfg == nil || !cfg.Enabled {
			continue
		}
		if err := scheduler.AddJob(cfg); err != nil {
			log.Panicf("add job %s failed: %v", cfg.Name, err)
		}
	}
	return scheduler
}
