package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/to404hanga/codestudio_arena/constants"
	"github.com/to404hanga/codestudio_arena/session"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type HealthHandler struct {
	manager *session.Manager
	log     loggerv2.Logger
}

var _ Handler = (*HealthHandler)(nil)

func NewHealthHandler(manager *session.Manager, log loggerv2.Logger) *HealthHandler {
	return &HealthHandler{
		manager: manager,
		log:     log,
	}
}

func (h *HealthHandler) Register(r *gin.Engine) {
	r.GET(constants.HealthPath, h.HealthCheck)
}

func (h *HealthHandler) HealthCheck(c *gin.Context) {
	h.log.DebugContext(c.Request.Context(), "health check")
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"sessions": h.manager.Len(),
	})
}
