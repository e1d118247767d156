package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/to404hanga/codestudio_arena/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type GormRepository struct {
	db *gorm.DB
}

var (
	_ Repository = (*GormRepository)(nil)
	_ Pruner     = (*GormRepository)(nil)
)

func NewGormRepository(db *gorm.DB) *GormRepository {
	return &GormRepository{db: db}
}

func (r *GormRepository) Load(ctx context.Context, eventID, problemID string) (string, bool, error) {
	var d model.Draft
	err := r.db.WithContext(ctx).
		Where("draft_key = ?", Key(eventID, problemID)).
		Take(&d).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("Load draft failed: %w", err)
	}
	return d.Code, true, nil
}

func (r *GormRepository) Save(ctx context.Context, eventID, problemID, text string) error {
	d := model.Draft{
		DraftKey:  Key(eventID, problemID),
		EventID:   eventID,
		ProblemID: problemID,
		Code:      text,
		UpdatedAt: time.Now(),
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "draft_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"code", "updated_at"}),
	}).Create(&d).Error
	if err != nil {
		return fmt.Errorf("Save draft failed: %w", err)
	}
	return nil
}

// DeleteBefore 删除 updated_at 早于 before 的草稿, 仅供显式开启的清理任务使用
func (r *GormRepository) DeleteBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("updated_at < ?", before).
		Delete(&model.Draft{})
	if result.Error != nil {
		return 0, fmt.Errorf("DeleteBefore failed: %w", result.Error)
	}
	return result.RowsAffected, nil
}
