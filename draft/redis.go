package draft

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisRepository 草稿以纯文本保存在 redis, 不设置过期时间
type RedisRepository struct {
	rdb redis.Cmdable
}

var _ Repository = (*RedisRepository)(nil)

func NewRedisRepository(rdb redis.Cmdable) *RedisRepository {
	return &RedisRepository{rdb: rdb}
}

func (r *RedisRepository) Load(ctx context.Context, eventID, problemID string) (string, bool, error) {
	text, err := r.rdb.Get(ctx, Key(eventID, problemID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("Load draft failed: %w", err)
	}
	return text, true, nil
}

func (r *RedisRepository) Save(ctx context.Context, eventID, problemID, text string) error {
	if err := r.rdb.Set(ctx, Key(eventID, problemID), text, 0).Err(); err != nil {
		return fmt.Errorf("Save draft failed: %w", err)
	}
	return nil
}
