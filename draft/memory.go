package draft

import (
	"context"
	"sync"
)

// MemoryRepository 进程内草稿存储, 进程退出即丢失
type MemoryRepository struct {
	mu     sync.RWMutex
	drafts map[string]string
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{drafts: make(map[string]string)}
}

func (r *MemoryRepository) Load(_ context.Context, eventID, problemID string) (string, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	text, ok := r.drafts[Key(eventID, problemID)]
	return text, ok, nil
}

func (r *MemoryRepository) Save(_ context.Context, eventID, problemID, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drafts[Key(eventID, problemID)] = text
	return nil
}

// Len 当前草稿数量
func (r *MemoryRepository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.drafts)
}
