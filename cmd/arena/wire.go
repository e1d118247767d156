//go:build wireinject

package main

import (
	"github.com/google/wire"
	"github.com/to404hanga/codestudio_arena/cmd/arena/ioc"
	commonioc "github.com/to404hanga/codestudio_arena/ioc"
	"github.com/to404hanga/codestudio_arena/service"
	"github.com/to404hanga/codestudio_arena/web"
)

func BuildDependency() *App {
	wire.Build(
		commonioc.InitLogger,
		commonioc.InitDB,
		commonioc.InitArenaClient,
		commonioc.InitDraftStore,
		commonioc.InitKafkaProducer,
		commonioc.InitSessionPublisher,
		commonioc.InitNotifyHub,
		commonioc.InitSessionManager,

		service.NewAttemptService,

		web.NewSessionHandler,
		web.NewHealthHandler,

		ioc.InitGinServer,
		NewApp,
	)
	return &App{}
}
