package common

import (
	"context"
	"fmt"
	"strconv"

	"github.com/to404hanga/codestudio_arena/model"
	"github.com/to404hanga/pkg404/gotools/transform"
	"gorm.io/gorm"
)

const BatchSize = 1000

var AttemptHeaders = []string{
	"时间",
	"题目",
	"类型",
	"语言",
	"结果",
	"通过用例数",
	"总用例数",
}

// FetchAttempts 按时间顺序分页获取记录
func FetchAttempts(db *gorm.DB, ctx context.Context, eventID string, page, limit int) ([]model.Attempt, error) {
	var attempts []model.Attempt
	if err := db.WithContext(ctx).
		Model(&model.Attempt{}).
		Where("event_id = ?", eventID).
		Order("created_at ASC, id ASC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&attempts).Error; err != nil {
		return nil, fmt.Errorf("fetch attempts failed: %w", err)
	}
	return attempts, nil
}

// StreamAttempts 后台分页拉取, 通过 channel 按批返回; 批次读完后从 errCh 读取拉取错误
func StreamAttempts(db *gorm.DB, ctx context.Context, eventID string) (<-chan []model.Attempt, <-chan error) {
	attemptCh := make(chan []model.Attempt, 3)
	errCh := make(chan error, 1)

	go func() {
		defer close(attemptCh)
		defer close(errCh)
		for page := 1; ; page++ {
			if err := ctx.Err(); err != nil {
				errCh <- err
				return
			}
			attempts, err := FetchAttempts(db, ctx, eventID, page, BatchSize)
			if err != nil {
				errCh <- err
				return
			}
			if len(attempts) == 0 {
				return
			}
			select {
			case attemptCh <- attempts:
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
			if len(attempts) < BatchSize {
				return
			}
		}
	}()
	return attemptCh, errCh
}

// AttemptRecord 单条记录对应的一行
func AttemptRecord(a *model.Attempt) []string {
	return []string{
		a.CreatedAt.Format("2006-01-02 15:04:05"),
		a.ProblemID,
		string(a.Type),
		a.Language,
		a.Status,
		strconv.Itoa(a.Passed),
		strconv.Itoa(a.Total),
	}
}

// AttemptRecords 一批记录对应的行
func AttemptRecords(attempts []model.Attempt) [][]string {
	return transform.SliceFromSlice(attempts, func(_ int, a model.Attempt) []string {
		return AttemptRecord(&a)
	})
}
