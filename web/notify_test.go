package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/to404hanga/codestudio_arena/constants"
	"github.com/to404hanga/codestudio_arena/session"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
)

func dialHub(t *testing.T, srv *httptest.Server, eventID string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + constants.WebsocketPath + "?event_id=" + eventID
	conn, resp, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	_ = resp.Body.Close()
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func readPush(t *testing.T, conn *websocket.Conn) Push {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	var push Push
	require.NoError(t, json.Unmarshal(data, &push))
	return push
}

func TestNotifyHubPushesPerEvent(t *testing.T) {
	hub := NewNotifyHub(nil, loggerv2.NewZapLogger(zap.NewNop()))
	engine := gin.New()
	hub.Register(engine)
	srv := httptest.NewServer(engine)
	defer srv.Close()

	a := dialHub(t, srv, "evt1")
	b := dialHub(t, srv, "evt2")
	require.Eventually(t, func() bool {
		return hub.Clients("evt1") == 1 && hub.Clients("evt2") == 1
	}, 2*time.Second, 10*time.Millisecond)

	ctx := context.Background()
	hub.Notify(ctx, "evt1", session.Notice{Level: session.NoticeError, Message: "Run failed."})
	hub.Redirect(ctx, "evt2", "/arena")

	push := readPush(t, a)
	assert.Equal(t, PushTypeNotice, push.Type)
	require.NotNil(t, push.Notice)
	assert.Equal(t, "Run failed.", push.Notice.Message)

	push = readPush(t, b)
	assert.Equal(t, PushTypeRedirect, push.Type)
	assert.Equal(t, "/arena", push.Path)

	require.NoError(t, a.Close())
	assert.Eventually(t, func() bool { return hub.Clients("evt1") == 0 }, 2*time.Second, 10*time.Millisecond)
}

func TestNotifyHubRequiresEventID(t *testing.T) {
	hub := NewNotifyHub(nil, loggerv2.NewZapLogger(zap.NewNop()))
	engine := gin.New()
	hub.Register(engine)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, constants.WebsocketPath, nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "event_id is required")
}

func TestOriginChecker(t *testing.T) {
	check := originChecker([]string{"http://localhost:3000"})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.True(t, check(req))
	req.Header.Set("Origin", "http://localhost:3000")
	assert.True(t, check(req))
	req.Header.Set("Origin", "http://evil.example")
	assert.False(t, check(req))

	assert.True(t, originChecker([]string{"*"})(req))
	assert.True(t, originChecker(nil)(req))
}

func TestNotifyWithoutClientsIsNoop(t *testing.T) {
	hub := NewNotifyHub(nil, loggerv2.NewZapLogger(zap.NewNop()))
	hub.Notify(context.Background(), "nobody", session.Notice{Level: session.NoticeInfo, Message: "hi"})
	assert.Zero(t, hub.Clients("nobody"))
}
