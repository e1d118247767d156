package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/to404hanga/codestudio_arena/model"
	"github.com/to404hanga/codestudio_arena/service/exporter/factory"
	"github.com/to404hanga/codestudio_arena/session"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"gorm.io/gorm"
)

// CleanedCodePlaceholder 被清理记录的代码占位
const CleanedCodePlaceholder = "**代码已被清理**"

type AttemptService interface {
	// Record 记录一次 run / submit
	Record(ctx context.Context, attempt *model.Attempt) error
	// GetAttemptList 分页获取比赛的记录, 按时间倒序
	GetAttemptList(ctx context.Context, eventID string, page, pageSize int) ([]model.Attempt, int, error)
	// ExportAttempts 导出比赛记录
	ExportAttempts(ctx context.Context, eventID string, exporterType factory.AttemptExporterType, writer io.Writer) error
	// CleanFailedAttempts 清理给定截止时间之前未通过记录的代码
	CleanFailedAttempts(ctx context.Context, timeDeadline time.Time) (int64, error)
}

type AttemptServiceImpl struct {
	db      *gorm.DB
	factory *factory.AttemptExporterFactory
	log     loggerv2.Logger
}

var (
	_ AttemptService  = (*AttemptServiceImpl)(nil)
	_ session.Journal = (*AttemptServiceImpl)(nil)
)

func NewAttemptService(db *gorm.DB, log loggerv2.Logger) AttemptService {
	return &AttemptServiceImpl{
		db:      db,
		factory: factory.NewAttemptExporterFactory(db, log),
		log:     log,
	}
}

func (s *AttemptServiceImpl) Record(ctx context.Context, attempt *model.Attempt) error {
	if attempt.CreatedAt.IsZero() {
		attempt.CreatedAt = time.Now()
	}
	if err := s.db.WithContext(ctx).Create(attempt).Error; err != nil {
		return fmt.Errorf("Record failed at create attempt: %w", err)
	}
	return nil
}

func (s *AttemptServiceImpl) GetAttemptList(ctx context.Context, eventID string, page, pageSize int) ([]model.Attempt, int, error) {
	var (
		attempts []model.Attempt
		total    int64
	)
	query := s.db.WithContext(ctx).Model(&model.Attempt{}).Where("event_id = ?", eventID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("GetAttemptList failed at count: %w", err)
	}
	err := query.Order("created_at DESC, id DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&attempts).Error
	if err != nil {
		return nil, 0, fmt.Errorf("GetAttemptList failed at find: %w", err)
	}
	return attempts, int(total), nil
}

func (s *AttemptServiceImpl) ExportAttempts(ctx context.Context, eventID string, exporterType factory.AttemptExporterType, writer io.Writer) error {
	exp := s.factory.GetExporter(exporterType)
	if exp == nil {
		return fmt.Errorf("ExportAttempts failed: unsupported exporter type %q", exporterType)
	}
	if err := exp.Export(ctx, eventID, writer); err != nil {
		return fmt.Errorf("ExportAttempts failed: %w", err)
	}
	return nil
}

func (s *AttemptServiceImpl) CleanFailedAttempts(ctx context.Context, timeDeadline time.Time) (int64, error) {
	result := s.db.WithContext(ctx).Model(&model.Attempt{}).
		Where("accepted = ?", false).
		Where("created_at < ?", timeDeadline).
		Where("code <> ?", CleanedCodePlaceholder).
		UpdateColumn("code", CleanedCodePlaceholder)
	if result.Error != nil {
		return 0, fmt.Errorf("CleanFailedAttempts failed at update attempt: %w", result.Error)
	}
	return result.RowsAffected, nil
}
