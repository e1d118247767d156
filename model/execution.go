package model

import (
	"strings"
	"time"
)

// ExecutionRequest run / submit 的请求体
type ExecutionRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

// CaseResult run 接口返回的单个用例结果
type CaseResult struct {
	Input    string `json:"input"`
	Expected string `json:"expected"`
	Actual   string `json:"actual"`
	Status   string `json:"status"`
	Stderr   string `json:"stderr"`
}

// Passed 用例是否通过
func (r CaseResult) Passed() bool {
	switch strings.ToUpper(strings.TrimSpace(r.Status)) {
	case "PASSED", "PASS", "ACCEPTED", "AC", "OK", "SUCCESS":
		return true
	}
	return false
}

// SubmitResponse submit 接口返回
type SubmitResponse struct {
	Status          string `json:"status"`
	Verdict         string `json:"verdict"`
	TestCasesPassed int    `json:"testCasesPassed"`
	TotalTestCases  int    `json:"totalTestCases"`
}

type ResultType string

const (
	ResultTypeRun    ResultType = "run"
	ResultTypeSubmit ResultType = "submit"
)

// ExecutionResult 最近一次 run / submit 的结果, 每次整体替换
type ExecutionResult struct {
	Type   ResultType    `json:"type"`
	Run    *RunResult    `json:"run,omitempty"`
	Submit *SubmitResult `json:"submit,omitempty"`
}

type RunResult struct {
	Stdout   string `json:"stdout"`
	Stderr   string `json:"stderr"`
	ExitCode int    `json:"exitCode"`
}

type VerdictClass string

const (
	VerdictClassAccepted    VerdictClass = "accepted"
	VerdictClassWrongAnswer VerdictClass = "wrong_answer"
	VerdictClassOther       VerdictClass = "other"
)

type SubmitResult struct {
	Status  string       `json:"status"`
	Verdict string       `json:"verdict"`
	Class   VerdictClass `json:"class"`
	Caption string       `json:"caption"`
	Passed  int          `json:"passed"`
	Total   int          `json:"total"`

	// 仅 Accepted 时有效: 下一题 id, 或者已经是最后一题
	NextProblemID string `json:"nextProblemId,omitempty"`
	Completed     bool   `json:"completed"`
}

// Success 是否按成功样式展示
func (r *SubmitResult) Success() bool {
	return r.Class == VerdictClassAccepted
}

// Attempt 本地记录的一次 run / submit
type Attempt struct {
	ID        uint64     `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	EventID   string     `json:"event_id" gorm:"column:event_id;type:varchar(64);index:idx_attempt_event_problem"`
	ProblemID string     `json:"problem_id" gorm:"column:problem_id;type:varchar(64);index:idx_attempt_event_problem"`
	Type      ResultType `json:"type" gorm:"column:type;type:varchar(16)"`
	Language  string     `json:"language" gorm:"column:language;type:varchar(32)"`
	Code      string     `json:"code" gorm:"column:code;type:text"`
	Status    string     `json:"status" gorm:"column:status;type:varchar(64)"`
	Passed    int        `json:"passed" gorm:"column:passed"`
	Total     int        `json:"total" gorm:"column:total"`
	Accepted  bool       `json:"accepted" gorm:"column:accepted"`
	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at;index"`
}

func (Attempt) TableName() string {
	return "arena_attempt"
}
