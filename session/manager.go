package session

import (
	"context"
	"errors"
	"sync"

	"github.com/to404hanga/codestudio_arena/constants"
	"github.com/to404hanga/codestudio_arena/draft"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"go.uber.org/zap"
)

// Manager 每场比赛最多一个会话, 重新进入页面时替换旧会话
type Manager struct {
	deps Deps

	mu       sync.Mutex
	sessions map[string]*Controller
}

func NewManager(deps Deps) *Manager {
	if deps.Log == nil {
		deps.Log = loggerv2.NewZapLogger(zap.NewNop())
	}
	// 所有会话共用同一份草稿存储, 重新进入页面时可以恢复
	if deps.Drafts == nil {
		deps.Drafts = draft.NewMemoryRepository()
	}
	if deps.Config.ArenaPath == "" {
		deps.Config.ArenaPath = constants.DefaultArenaPath
	}
	return &Manager{
		deps:     deps,
		sessions: make(map[string]*Controller),
	}
}

// Open 创建并打开会话, 打开失败时不保留; 无访问权限时同时关闭该比赛已有的会话
func (m *Manager) Open(ctx context.Context, eventID, language string) (*Controller, error) {
	c := NewController(eventID, m.deps)
	if err := c.Open(ctx, language); err != nil {
		if errors.Is(err, ErrAccessDenied) {
			m.evict(eventID)
		}
		return nil, err
	}

	m.mu.Lock()
	old := m.sessions[eventID]
	m.sessions[eventID] = c
	m.mu.Unlock()

	if old != nil {
		old.Close()
	}
	return c, nil
}

// Get 获取会话, 已关闭的会话会被移除
func (m *Manager) Get(eventID string) (*Controller, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.sessions[eventID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if c.Closed() {
		delete(m.sessions, eventID)
		return nil, ErrSessionNotFound
	}
	return c, nil
}

// Remove 移除会话; 只在会话仍是 c 时移除, 避免误删重新打开的会话
func (m *Manager) Remove(c *Controller) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.sessions[c.EventID()] == c {
		delete(m.sessions, c.EventID())
	}
	c.Close()
}

func (m *Manager) evict(eventID string) {
	m.mu.Lock()
	old := m.sessions[eventID]
	delete(m.sessions, eventID)
	m.mu.Unlock()

	if old != nil {
		old.Close()
	}
}

// ArenaPath 退出或无权限时跳转的比赛列表页
func (m *Manager) ArenaPath() string {
	return m.deps.Config.ArenaPath
}

func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// CloseAll 进程退出时关闭所有会话
func (m *Manager) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, c := range m.sessions {
		c.Close()
		delete(m.sessions, id)
	}
}
