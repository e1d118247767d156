package web

import (
	"context"
	"net/http"
	"sync"
	"time"

	json "github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/to404hanga/codestudio_arena/constants"
	"github.com/to404hanga/codestudio_arena/pkg/gintool"
	"github.com/to404hanga/codestudio_arena/session"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

const (
	PushTypeNotice   = "notice"
	PushTypeRedirect = "redirect"

	sendBufferSize = 16
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = pongWait * 9 / 10
)

// Push 推送给页面的消息
type Push struct {
	Type    string          `json:"type"`
	EventID string          `json:"event_id"`
	Notice  *session.Notice `json:"notice,omitempty"`
	Path    string          `json:"path,omitempty"`
}

type notifyClient struct {
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *notifyClient) close() {
	c.once.Do(func() {
		close(c.send)
	})
}

// NotifyHub 按比赛维护 websocket 连接, 把会话的提示与跳转推送给页面
type NotifyHub struct {
	upgrader websocket.Upgrader
	log      loggerv2.Logger

	mu      sync.RWMutex
	clients map[string]map[*notifyClient]struct{}
}

var (
	_ Handler           = (*NotifyHub)(nil)
	_ session.Presenter = (*NotifyHub)(nil)
)

func NewNotifyHub(allowOrigins []string, log loggerv2.Logger) *NotifyHub {
	return &NotifyHub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowOrigins),
		},
		log:     log,
		clients: make(map[string]map[*notifyClient]struct{}),
	}
}

// originChecker 未配置或包含 * 时不限制来源
func originChecker(allowOrigins []string) func(r *http.Request) bool {
	allowed := make(map[string]struct{}, len(allowOrigins))
	for _, o := range allowOrigins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = struct{}{}
	}
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := allowed[origin]
		return ok
	}
}

func (h *NotifyHub) Register(r *gin.Engine) {
	r.GET(constants.WebsocketPath, h.ServeWS)
}

func (h *NotifyHub) ServeWS(c *gin.Context) {
	eventID := c.Query("event_id")
	if eventID == "" {
		gintool.GinResponse(c, &gintool.Response{
			Code:    http.StatusBadRequest,
			Message: "event_id is required",
		})
		return
	}
	ctx := loggerv2.ContextWithFields(c.Request.Context(), logger.String("event_id", eventID))

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.WarnContext(ctx, "websocket upgrade failed", logger.Error(err))
		return
	}

	client := &notifyClient{conn: conn, send: make(chan []byte, sendBufferSize)}
	h.add(eventID, client)
	h.log.InfoContext(ctx, "websocket connected")

	go h.writePump(ctx, client)
	h.readPump(client)

	h.remove(eventID, client)
	h.log.InfoContext(ctx, "websocket disconnected")
}

// readPump 页面只接收消息, 这里读取只为处理 pong 与断开
func (h *NotifyHub) readPump(client *notifyClient) {
	defer client.conn.Close()
	client.conn.SetReadLimit(512)
	_ = client.conn.SetReadDeadline(time.Now().Add(pongWait))
	client.conn.SetPongHandler(func(string) error {
		return client.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := client.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *NotifyHub) writePump(ctx context.Context, client *notifyClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.send:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = client.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				h.log.WarnContext(ctx, "websocket write failed", logger.Error(err))
				return
			}
		case <-ticker.C:
			_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func (h *NotifyHub) add(eventID string, client *notifyClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[eventID]
	if !ok {
		set = make(map[*notifyClient]struct{})
		h.clients[eventID] = set
	}
	set[client] = struct{}{}
	websocketClients.Inc()
}

func (h *NotifyHub) remove(eventID string, client *notifyClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.clients[eventID]
	if !ok {
		return
	}
	if _, ok = set[client]; !ok {
		return
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.clients, eventID)
	}
	client.close()
	websocketClients.Dec()
}

// Clients 当前比赛的连接数
func (h *NotifyHub) Clients(eventID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[eventID])
}

func (h *NotifyHub) Notify(ctx context.Context, eventID string, notice session.Notice) {
	h.broadcast(ctx, &Push{Type: PushTypeNotice, EventID: eventID, Notice: &notice})
}

func (h *NotifyHub) Redirect(ctx context.Context, eventID, path string) {
	h.broadcast(ctx, &Push{Type: PushTypeRedirect, EventID: eventID, Path: path})
}

func (h *NotifyHub) broadcast(ctx context.Context, push *Push) {
	payload, err := json.Marshal(push)
	if err != nil {
		h.log.ErrorContext(ctx, "marshal push failed", logger.Error(err))
		return
	}

	var slow []*notifyClient
	h.mu.RLock()
	for client := range h.clients[push.EventID] {
		select {
		case client.send <- payload:
		default:
			slow = append(slow, client)
		}
	}
	delivered := len(h.clients[push.EventID]) - len(slow)
	h.mu.RUnlock()

	// 缓冲区满的连接直接断开, 页面重连即可
	for _, client := range slow {
		h.remove(push.EventID, client)
	}
	h.log.DebugContext(ctx, "push broadcast",
		logger.String("type", push.Type),
		logger.String("event_id", push.EventID),
		logger.Int("delivered", delivered))
}
