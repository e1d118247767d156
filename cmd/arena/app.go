package main

import (
	"io"

	"github.com/to404hanga/codestudio_arena/event"
	"github.com/to404hanga/codestudio_arena/session"
	"github.com/to404hanga/codestudio_arena/web"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type App struct {
	Server   *web.GinServer
	Manager  *session.Manager
	Producer event.Producer
	Log      loggerv2.Logger
}

func NewApp(server *web.GinServer, manager *session.Manager, producer event.Producer, l loggerv2.Logger) *App {
	return &App{
		Server:   server,
		Manager:  manager,
		Producer: producer,
		Log:      l,
	}
}

// Close 释放会话与 kafka 连接
func (a *App) Close() {
	a.Manager.CloseAll()
	if closer, ok := a.Producer.(io.Closer); ok {
		if err := closer.Close(); err != nil {
			a.Log.Error("close kafka producer failed", logger.Error(err))
		}
	}
}
