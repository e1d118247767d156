package web

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Handler 所有 http 处理器通过 Register 挂载路由
type Handler interface {
	Register(r *gin.Engine)
}

type GinServer struct {
	Engine *gin.Engine
	Addr   string

	once sync.Once
	srv  *http.Server
}

func (s *GinServer) server() *http.Server {
	s.once.Do(func() {
		s.srv = &http.Server{
			Addr:              s.Addr,
			Handler:           s.Engine,
			ReadHeaderTimeout: 10 * time.Second,
		}
	})
	return s.srv
}

// Start 阻塞直到服务关闭, 正常 Shutdown 时返回 nil
func (s *GinServer) Start() error {
	if err := s.server().ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *GinServer) Shutdown(ctx context.Context) error {
	return s.server().Shutdown(ctx)
}
