package gintool

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	json "github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/to404hanga/codestudio_arena/constants"
	"github.com/to404hanga/codestudio_arena/model"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type echoParam struct {
	model.SessionCommonParam
	Name string `json:"name" form:"name"`
}

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(ContextMiddleware())
	echo := func(c *gin.Context, p *echoParam) {
		GinResponse(c, &Response{Code: http.StatusOK, Data: gin.H{
			"event_id":   p.EventID,
			"name":       p.Name,
			"request_id": p.RequestID,
		}})
	}
	r.POST("/echo", WrapHandler(echo, loggerv2.NewZapLogger(zap.NewNop())))
	r.GET("/echo", WrapQueryHandler(echo, loggerv2.NewZapLogger(zap.NewNop())))
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code)
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestWrapHandlerJSON(t *testing.T) {
	r := newEngine()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"event_id":"evt1","name":"a"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(constants.HeaderRequestIDKey, "req-1")
	r.ServeHTTP(w, req)

	resp := decode(t, w)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Equal(t, "req-1", resp.RequestID)
	assert.Equal(t, "req-1", w.Header().Get(constants.HeaderRequestIDKey))
	data := resp.Data.(map[string]any)
	assert.Equal(t, "evt1", data["event_id"])
	assert.Equal(t, "a", data["name"])
	assert.Equal(t, "req-1", data["request_id"])
}

func TestWrapQueryHandler(t *testing.T) {
	r := newEngine()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo?event_id=evt2&name=b", nil))

	resp := decode(t, w)
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.NotEmpty(t, resp.RequestID)
	data := resp.Data.(map[string]any)
	assert.Equal(t, "evt2", data["event_id"])
	assert.Equal(t, resp.RequestID, data["request_id"])
}

func TestWrapHandlerBadRequest(t *testing.T) {
	r := newEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo?name=b", nil))
	assert.Equal(t, http.StatusBadRequest, decode(t, w).Code)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", strings.NewReader(`{"name":`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, decode(t, w).Code)
}
