package event

import (
	"time"

	json "github.com/bytedance/sonic"
)

const SessionTopic = "arena_session_topic"

type SessionEventType string

const (
	SessionOpened          SessionEventType = "opened"
	SessionProblemSelected SessionEventType = "problem_selected"
	SessionAccessDenied    SessionEventType = "access_denied"
	SessionRun             SessionEventType = "run"
	SessionSubmit          SessionEventType = "submit"
	SessionExit            SessionEventType = "exit"
)

// SessionMessage 会话审计事件, 以 event_id 作为 kafka 分区键
type SessionMessage struct {
	Type      SessionEventType `json:"type"`
	EventID   string           `json:"event_id"`
	ProblemID string           `json:"problem_id,omitempty"`
	Language  string           `json:"language,omitempty"`
	Status    string           `json:"status,omitempty"`
	Passed    int              `json:"passed,omitempty"`
	Total     int              `json:"total,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

func (s *SessionMessage) Marshal() ([]byte, error) {
	return json.Marshal(s)
}
