//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/to404hanga/codestudio_arena/cmd/cronjob/ioc"
	commonioc "github.com/to404hanga/codestudio_arena/ioc"
	"github.com/to404hanga/codestudio_arena/job"
	"github.com/to404hanga/codestudio_arena/service"
)

func InitScheduler() *job.CronScheduler {
	wire.Build(
		commonioc.InitDB,
		commonioc.InitLogger,
		commonioc.InitDraftPruner,
		service.NewAttemptService,
		ioc.InitScheduler,
	)
	return &job.CronScheduler{}
}
