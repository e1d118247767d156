package model

import "time"

// Draft gorm 草稿存储的表结构, DraftKey 即 contest_{eventId}_{problemId}
type Draft struct {
	DraftKey  string    `gorm:"column:draft_key;type:varchar(191);primaryKey"`
	EventID   string    `gorm:"column:event_id;type:varchar(64);index"`
	ProblemID string    `gorm:"column:problem_id;type:varchar(64)"`
	Code      string    `gorm:"column:code;type:mediumtext"`
	UpdatedAt time.Time `gorm:"column:updated_at;index"`
}

func (Draft) TableName() string {
	return "arena_draft"
}
