package minio

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

const (
	EnvMinIOAccessKeyID     = "MINIO_ACCESS_KEY_ID"
	EnvMinIOSecretAccessKey = "MINIO_SECRET_ACCESS_KEY"
)

// ErrObjectNotFound 对象不存在
var ErrObjectNotFound = errors.New("object not found")

type MinIOService struct {
	client   *minio.Client
	log      loggerv2.Logger
	endpoint string
	useSSL   bool
}

func NewMinIOService(log loggerv2.Logger, endpoint string, useSSL bool) (*MinIOService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv(EnvMinIOAccessKeyID), os.Getenv(EnvMinIOSecretAccessKey), ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("NewMinIOService failed: %w", err)
	}

	return &MinIOService{
		client:   client,
		log:      log,
		endpoint: endpoint,
		useSSL:   useSSL,
	}, nil
}

// EnsureBucket bucket 不存在时创建
func (s *MinIOService) EnsureBucket(ctx context.Context, bucketName string) error {
	exists, err := s.client.BucketExists(ctx, bucketName)
	if err != nil {
		return fmt.Errorf("EnsureBucket failed at check: %w", err)
	}
	if exists {
		return nil
	}
	if err = s.client.MakeBucket(ctx, bucketName, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("EnsureBucket failed at make: %w", err)
	}
	s.log.InfoContext(ctx, "bucket created", logger.String("bucketName", bucketName))
	return nil
}

// PutText 以纯文本对象写入
func (s *MinIOService) PutText(ctx context.Context, bucketName, objectKey, text string) error {
	_, err := s.client.PutObject(ctx, bucketName, objectKey, bytes.NewReader([]byte(text)), int64(len(text)),
		minio.PutObjectOptions{ContentType: "text/plain; charset=utf-8"})
	if err != nil {
		return fmt.Errorf("failed to put object %s: %w", objectKey, err)
	}
	return nil
}

// GetText 读取纯文本对象, 不存在时返回 ErrObjectNotFound
func (s *MinIOService) GetText(ctx context.Context, bucketName, objectKey string) (string, error) {
	obj, err := s.client.GetObject(ctx, bucketName, objectKey, minio.GetObjectOptions{})
	if err != nil {
		return "", s.mapError(objectKey, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return "", s.mapError(objectKey, err)
	}
	return string(data), nil
}

func (s *MinIOService) mapError(objectKey string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", ErrObjectNotFound, objectKey)
	}
	return fmt.Errorf("failed to get object %s: %w", objectKey, err)
}

// ObjectInfo 对象信息
type ObjectInfo struct {
	Key          string    `json:"key"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"lastModified"`
}

// ListObjectsWithPrefix 获取指定前缀的对象列表
func (s *MinIOService) ListObjectsWithPrefix(ctx context.Context, bucketName, prefix string) ([]ObjectInfo, error) {
	var objects []ObjectInfo

	objectCh := s.client.ListObjects(ctx, bucketName, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	})
	for object := range objectCh {
		if object.Err != nil {
			return nil, fmt.Errorf("failed to list objects with prefix: %w", object.Err)
		}
		objects = append(objects, ObjectInfo{
			Key:          object.Key,
			Size:         object.Size,
			LastModified: object.LastModified,
		})
	}
	return objects, nil
}

// DeleteObjects 批量删除对象
func (s *MinIOService) DeleteObjects(ctx context.Context, bucketName string, objectKeys []string) error {
	if len(objectKeys) == 0 {
		return nil
	}

	objectsCh := make(chan minio.ObjectInfo, len(objectKeys))
	go func() {
		defer close(objectsCh)
		for _, key := range objectKeys {
			objectsCh <- minio.ObjectInfo{Key: key}
		}
	}()

	// RemoveObjects 只回传失败的对象
	var errs []error
	for removeErr := range s.client.RemoveObjects(ctx, bucketName, objectsCh, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("failed to delete object %s: %w", removeErr.ObjectName, removeErr.Err))
	}

	s.log.InfoContext(ctx, "batch delete completed",
		logger.String("bucketName", bucketName),
		logger.Int("totalObjects", len(objectKeys)),
		logger.Int("deletedCount", len(objectKeys)-len(errs)),
		logger.Int("errorCount", len(errs)),
	)
	return errors.Join(errs...)
}
