package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/to404hanga/codestudio_arena/pkg/minio"
)

// ObjectStore 草稿使用到的对象存储能力
type ObjectStore interface {
	PutText(ctx context.Context, bucketName, objectKey, text string) error
	GetText(ctx context.Context, bucketName, objectKey string) (string, error)
	ListObjectsWithPrefix(ctx context.Context, bucketName, prefix string) ([]minio.ObjectInfo, error)
	DeleteObjects(ctx context.Context, bucketName string, objectKeys []string) error
}

var _ ObjectStore = (*minio.MinIOService)(nil)

// MinIORepository 每份草稿对应 bucket 中的一个对象
type MinIORepository struct {
	store  ObjectStore
	bucket string
}

var (
	_ Repository = (*MinIORepository)(nil)
	_ Pruner     = (*MinIORepository)(nil)
)

func NewMinIORepository(store ObjectStore, bucket string) *MinIORepository {
	return &MinIORepository{store: store, bucket: bucket}
}

func (r *MinIORepository) Load(ctx context.Context, eventID, problemID string) (string, bool, error) {
	text, err := r.store.GetText(ctx, r.bucket, Key(eventID, problemID))
	if errors.Is(err, minio.ErrObjectNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("Load draft failed: %w", err)
	}
	return text, true, nil
}

func (r *MinIORepository) Save(ctx context.Context, eventID, problemID, text string) error {
	if err := r.store.PutText(ctx, r.bucket, Key(eventID, problemID), text); err != nil {
		return fmt.Errorf("Save draft failed: %w", err)
	}
	return nil
}

// DeleteBefore 删除最后修改时间早于 before 的草稿对象
func (r *MinIORepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	objects, err := r.store.ListObjectsWithPrefix(ctx, r.bucket, KeyPrefix)
	if err != nil {
		return 0, fmt.Errorf("DeleteBefore failed at list: %w", err)
	}
	keys := make([]string, 0, len(objects))
	for _, obj := range objects {
		if obj.LastModified.Before(before) {
			keys = append(keys, obj.Key)
		}
	}
	if err = r.store.DeleteObjects(ctx, r.bucket, keys); err != nil {
		return 0, fmt.Errorf("DeleteBefore failed at delete: %w", err)
	}
	return int64(len(keys)), nil
}
