package model

import (
	"fmt"
	"time"

	"github.com/araddon/dateparse"
	json "github.com/bytedance/sonic"
)

type EventStatus string

const (
	EventStatusDraft    EventStatus = "DRAFT"
	EventStatusUpcoming EventStatus = "UPCOMING"
	EventStatusLive     EventStatus = "LIVE"
	EventStatusFrozen   EventStatus = "FROZEN"
	EventStatusEnded    EventStatus = "ENDED"
)

// Event 比赛元信息, 对应 GET /events/:id
type Event struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	StartTime   time.Time   `json:"startTime"`
	EndTime     time.Time   `json:"endTime"`
	Status      EventStatus `json:"status"`
}

type eventWire struct {
	ID          string      `json:"id"`
	Title       string      `json:"title"`
	Slug        string      `json:"slug"`
	Description string      `json:"description"`
	StartTime   string      `json:"startTime"`
	EndTime     string      `json:"endTime"`
	Status      EventStatus `json:"status"`
}

// UnmarshalJSON 后端时间格式不统一(RFC3339 / 带时区偏移 / 纯日期), 统一交给 dateparse 解析
func (e *Event) UnmarshalJSON(data []byte) error {
	var w eventWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	start, err := parseEventTime(w.StartTime)
	if err != nil {
		return fmt.Errorf("parse startTime %q failed: %w", w.StartTime, err)
	}
	end, err := parseEventTime(w.EndTime)
	if err != nil {
		return fmt.Errorf("parse endTime %q failed: %w", w.EndTime, err)
	}
	*e = Event{
		ID:          w.ID,
		Title:       w.Title,
		Slug:        w.Slug,
		Description: w.Description,
		StartTime:   start,
		EndTime:     end,
		Status:      w.Status,
	}
	return nil
}

func parseEventTime(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return dateparse.ParseAny(s)
}

// IsRunning 当前时间是否处于比赛时间内
func (e *Event) IsRunning(now time.Time) bool {
	if e.StartTime.IsZero() || e.EndTime.IsZero() {
		return false
	}
	return !now.Before(e.StartTime) && now.Before(e.EndTime)
}
