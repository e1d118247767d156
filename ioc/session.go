package ioc

import (
	"log"

	"github.com/to404hanga/codestudio_arena/client"
	"github.com/to404hanga/codestudio_arena/config"
	"github.com/to404hanga/codestudio_arena/draft"
	"github.com/to404hanga/codestudio_arena/event"
	"github.com/to404hanga/codestudio_arena/service"
	"github.com/to404hanga/codestudio_arena/session"
	"github.com/to404hanga/codestudio_arena/web"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func InitNotifyHub(l loggerv2.Logger) *web.NotifyHub {
	var cfg config.GinConfig
	if err := config.Load(&cfg); err != nil {
		log.Panicf("load gin config failed: %v", err)
	}
	return web.NewNotifyHub(cfg.AllowOrigins, l)
}

func InitSessionManager(api client.ArenaClient, drafts draft.Repository, hub *web.NotifyHub,
	publisher *event.SessionPublisher, attemptSvc service.AttemptService, l loggerv2.Logger) *session.Manager {
	var cfg config.SessionConfig
	if err := config.Load(&cfg); err != nil {
		log.Panicf("load session config failed: %v", err)
	}
	return session.NewManager(session.Deps{
		API:       api,
		Drafts:    drafts,
		Presenter: hub,
		Publisher: publisher,
		Journal:   attemptSvc,
		Log:       l,
		Config: session.Config{
			ArenaPath:       cfg.ArenaPath,
			DefaultLanguage: cfg.DefaultLanguage,
		},
	})
}
