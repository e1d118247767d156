package draft

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/blake2b"
)

const (
	// KeyFormat 草稿存储键 contest_{eventId}_{problemId}
	KeyFormat = "contest_%s_%s"
	KeyPrefix = "contest_"
)

func Key(eventID, problemID string) string {
	return fmt.Sprintf(KeyFormat, eventID, problemID)
}

// Repository 草稿持久化, 没有淘汰策略, 写入后一直保留直到被覆盖
type Repository interface {
	// Load 读取草稿, 不存在时 ok 为 false
	Load(ctx context.Context, eventID, problemID string) (text string, ok bool, err error)
	// Save 覆盖写入草稿
	Save(ctx context.Context, eventID, problemID, text string) error
}

// Pruner 支持按时间清理的草稿存储, 只由显式开启的清理任务调用
type Pruner interface {
	DeleteBefore(ctx context.Context, before time.Time) (int64, error)
}

// DedupRepository 记录每个键最近一次读写内容的 BLAKE2b 摘要, 内容未变时跳过写入;
// 读取不到草稿时清除摘要, 清理任务删除的草稿可以重新写入
type DedupRepository struct {
	Repository

	mu     sync.Mutex
	hashes map[string][blake2b.Size256]byte
}

var _ Repository = (*DedupRepository)(nil)

func NewDedupRepository(repo Repository) *DedupRepository {
	return &DedupRepository{
		Repository: repo,
		hashes:     make(map[string][blake2b.Size256]byte),
	}
}

func (r *DedupRepository) Load(ctx context.Context, eventID, problemID string) (string, bool, error) {
	text, ok, err := r.Repository.Load(ctx, eventID, problemID)
	if err != nil {
		return text, ok, err
	}
	key := Key(eventID, problemID)
	if !ok {
		r.forget(key)
		return text, ok, nil
	}
	r.remember(key, blake2b.Sum256([]byte(text)))
	return text, ok, nil
}

func (r *DedupRepository) Save(ctx context.Context, eventID, problemID, text string) error {
	key := Key(eventID, problemID)
	sum := blake2b.Sum256([]byte(text))

	r.mu.Lock()
	last, seen := r.hashes[key]
	r.mu.Unlock()
	if seen && last == sum {
		return nil
	}

	if err := r.Repository.Save(ctx, eventID, problemID, text); err != nil {
		return err
	}
	r.remember(key, sum)
	return nil
}

func (r *DedupRepository) remember(key string, sum [blake2b.Size256]byte) {
	r.mu.Lock()
	r.hashes[key] = sum
	r.mu.Unlock()
}

func (r *DedupRepository) forget(key string) {
	r.mu.Lock()
	delete(r.hashes, key)
	r.mu.Unlock()
}
