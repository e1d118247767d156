package ioc

import (
	"context"
	"log"
	"time"

	"github.com/to404hanga/codestudio_arena/config"
	"github.com/to404hanga/codestudio_arena/draft"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"gorm.io/gorm"
)

// InitDraftStore 按配置选择草稿存储; redis / minio 只在被选中时才建立连接
func InitDraftStore(db *gorm.DB, l loggerv2.Logger) draft.Repository {
	var cfg config.DraftConfig
	if err := config.Load(&cfg); err != nil {
		log.Panicf("load draft config failed: %v", err)
	}

	var repo draft.Repository
	switch cfg.Driver {
	case config.DraftDriverRedis:
		repo = draft.NewRedisRepository(newRedis())
	case config.DraftDriverGorm:
		repo = draft.NewGormRepository(db)
	case config.DraftDriverMinIO:
		svc := newMinIO(l)
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svc.EnsureBucket(ctx, cfg.Bucket); err != nil {
			log.Panicf("ensure draft bucket failed: %v", err)
		}
		repo = draft.NewMinIORepository(svc, cfg.Bucket)
	default:
		repo = draft.NewMemoryRepository()
	}

	l.Info("draft store ready", logger.String("driver", cfg.Driver))
	return draft.NewDedupRepository(repo)
}

// InitDraftPruner 清理任务使用, 不支持清理的存储返回 nil
func InitDraftPruner(db *gorm.DB, l loggerv2.Logger) draft.Pruner {
	var cfg config.DraftConfig
	if err := config.Load(&cfg); err != nil {
		log.Panicf("load draft config failed: %v", err)
	}
	switch cfg.Driver {
	case config.DraftDriverGorm:
		return draft.NewGormRepository(db)
	case config.DraftDriverMinIO:
		return draft.NewMinIORepository(newMinIO(l), cfg.Bucket)
	}
	return nil
}
